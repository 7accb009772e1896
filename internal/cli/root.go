// Package cli contains the cobra command tree for the vocare binary.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/vocare/internal/config"
	"github.com/example/vocare/internal/ctxutil"
	"github.com/example/vocare/internal/db"
	"github.com/example/vocare/internal/logging"
	"github.com/example/vocare/internal/version"
	"github.com/example/vocare/internal/wire"
)

var (
	configPath string
	userFlag   string
	verbose    bool
)

// RootCmd builds the vocare command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "vocare",
		Short:   "Vocare - small missions where your gladness meets the world's hunger",
		Version: version.String(),
		Long: `Vocare recommends short, personal missions from your mood, your gifts and
the open needs around you, then tracks how each one felt.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := db.Close(); err != nil {
				wire.Logger().Warn("close database", zap.Error(err))
			}
			_ = wire.Logger().Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.vocare/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Act as this user (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(MissionCmd())
	rootCmd.AddCommand(ProfileCmd())
	rootCmd.AddCommand(NeedCmd())
	rootCmd.AddCommand(ServeCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if userFlag != "" {
		cfg.User = userFlag
	}

	logger, err := logging.New(cfg.Log.Level, verbose)
	if err != nil {
		return err
	}
	wire.Configure(cfg, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxutil.WithUserID(ctx, cfg.User))
	logger.Debug("configured", zap.String("user", cfg.User), zap.String("llm", cfg.LLM.Provider), zap.String("needs", cfg.Needs.Source))
	return nil
}

// userContext returns the command context carrying the acting user.
func userContext(cmd *cobra.Command) (context.Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("command context not initialized")
	}
	return ctx, nil
}
