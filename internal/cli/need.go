package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/vocare/internal/config"
	"github.com/example/vocare/internal/core/need"
	"github.com/example/vocare/internal/db"
	"github.com/example/vocare/internal/ports/primary"
	"github.com/example/vocare/internal/wire"
)

var needCmd = &cobra.Command{
	Use:   "need",
	Short: "Browse and answer the community needs board",
}

var needListCmd = &cobra.Command{
	Use:   "list",
	Short: "List needs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		category, _ := cmd.Flags().GetString("category")
		return wire.NeedAdapter().List(ctx, all, category)
	},
}

var needSubmitCmd = &cobra.Command{
	Use:   "submit [description]",
	Short: "Post a new need",
	Long: `Post a need to the board.

Examples:
  vocare need submit "Food pantry needs sorters" --location "Campus Ministry" --category service
  vocare need submit "CS tutor for intro course" -l "O'Neill Library" -c support --people 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		location, _ := cmd.Flags().GetString("location")
		category, _ := cmd.Flags().GetString("category")
		req := primary.SubmitNeedRequest{
			Description: args[0],
			Location:    location,
			Category:    need.Category(category),
		}
		if cmd.Flags().Changed("people") {
			people, _ := cmd.Flags().GetInt("people")
			req.PeopleNeeded = &people
		}
		return wire.NeedAdapter().Submit(ctx, req)
	},
}

var needAcceptCmd = &cobra.Command{
	Use:   "accept [need-id]",
	Short: "Sign up for a need",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.NeedAdapter().Accept(ctx, args[0])
	},
}

var needWithdrawCmd = &cobra.Command{
	Use:   "withdraw [need-id]",
	Short: "Withdraw from a need you accepted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.NeedAdapter().Withdraw(ctx, args[0])
	},
}

var needFillCmd = &cobra.Command{
	Use:   "fill [need-id]",
	Short: "Mark a need you posted as filled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.NeedAdapter().Fill(ctx, args[0])
	},
}

var needSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample needs into the local board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if wire.Config().Needs.Source != config.NeedsSQLite {
			return fmt.Errorf("seed only applies to the local sqlite board")
		}
		n, err := db.SeedFixtures(wire.Database())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Seeded %d sample needs\n", n)
		return nil
	},
}

// NeedCmd returns the need command
func NeedCmd() *cobra.Command {
	needListCmd.Flags().BoolP("all", "a", false, "Include filled and cancelled needs")
	needListCmd.Flags().StringP("category", "c", "", "Filter by category (service, organization, support)")
	needSubmitCmd.Flags().StringP("location", "l", "", "Where the need is")
	needSubmitCmd.Flags().StringP("category", "c", "", "Category: service, organization or support")
	needSubmitCmd.Flags().Int("people", 0, "How many people are needed")
	_ = needSubmitCmd.MarkFlagRequired("location")
	_ = needSubmitCmd.MarkFlagRequired("category")

	needCmd.AddCommand(needListCmd)
	needCmd.AddCommand(needSubmitCmd)
	needCmd.AddCommand(needAcceptCmd)
	needCmd.AddCommand(needWithdrawCmd)
	needCmd.AddCommand(needFillCmd)
	needCmd.AddCommand(needSeedCmd)

	return needCmd
}
