package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/vocare/internal/wire"
)

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Generate and track missions",
	Long:  "Generate a mission for how you feel, then accept, complete, skip or reflect on it.",
}

var missionGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new mission",
	Long: `Generate a new mission from your mood, profile and the open needs board.

A pending mission is replaced. An accepted or completed-but-unreflected
mission must be finished first.

Examples:
  vocare mission generate --mood anxious
  vocare mission generate --mood other --feeling "my grandmother passed away"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		mood, _ := cmd.Flags().GetString("mood")
		feeling, _ := cmd.Flags().GetString("feeling")
		return wire.MissionAdapter().Generate(ctx, mood, feeling)
	},
}

var missionAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept the current mission",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Accept(ctx)
	},
}

var missionCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark the current mission as done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Complete(ctx)
	},
}

var missionSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current pending mission",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Skip(ctx)
	},
}

var missionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current mission",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Show(ctx)
	},
}

var missionReflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Record how the completed mission felt",
	Long: `Record whether the completed mission left you feeling alive.

Examples:
  vocare mission reflect --alive
  vocare mission reflect --not-alive --journal "Hard to focus today"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		alive, _ := cmd.Flags().GetBool("alive")
		journal, _ := cmd.Flags().GetString("journal")
		return wire.MissionAdapter().Reflect(ctx, alive, journal)
	},
}

var missionHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past missions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.MissionAdapter().History(ctx, limit)
	},
}

var missionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show consolation and desolation counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.MissionAdapter().Stats(ctx)
	},
}

var missionJournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List reflection journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.MissionAdapter().Journal(ctx, limit)
	},
}

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	// Add flags
	missionGenerateCmd.Flags().StringP("mood", "m", "", "Mood: anxious, bored, energized, content or other")
	missionGenerateCmd.Flags().StringP("feeling", "f", "", "Describe how you feel (required with --mood other, max 100 chars)")
	_ = missionGenerateCmd.MarkFlagRequired("mood")
	missionReflectCmd.Flags().Bool("alive", false, "The mission left you feeling alive")
	missionReflectCmd.Flags().Bool("not-alive", false, "The mission did not leave you feeling alive")
	missionReflectCmd.Flags().StringP("journal", "j", "", "Optional journal entry")
	missionReflectCmd.MarkFlagsMutuallyExclusive("alive", "not-alive")
	missionReflectCmd.MarkFlagsOneRequired("alive", "not-alive")
	missionHistoryCmd.Flags().IntP("limit", "n", 20, "Maximum missions to show (0 for all)")
	missionJournalCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 for all)")

	// Add subcommands
	missionCmd.AddCommand(missionGenerateCmd)
	missionCmd.AddCommand(missionAcceptCmd)
	missionCmd.AddCommand(missionCompleteCmd)
	missionCmd.AddCommand(missionSkipCmd)
	missionCmd.AddCommand(missionShowCmd)
	missionCmd.AddCommand(missionReflectCmd)
	missionCmd.AddCommand(missionHistoryCmd)
	missionCmd.AddCommand(missionStatsCmd)
	missionCmd.AddCommand(missionJournalCmd)

	return missionCmd
}
