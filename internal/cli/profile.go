package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/vocare/internal/core/profile"
	"github.com/example/vocare/internal/wire"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your onboarding profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.ProfileAdapter().Show(ctx)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update any subset of profile fields. Unset flags are left alone.

Examples:
  vocare profile set --gifts teaching,listening --traits calm,curious
  vocare profile set --limitations wheelchair-user --resistance 30
  vocare profile set --vocation "Help first-years find their people"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.ProfileAdapter().Set(ctx, patchFromFlags(cmd.Flags()))
	},
}

var profileCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Validate and finish onboarding",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext(cmd)
		if err != nil {
			return err
		}
		return wire.ProfileAdapter().Complete(ctx)
	},
}

// patchFromFlags builds a patch from the flags the user actually set.
func patchFromFlags(flags *pflag.FlagSet) profile.Patch {
	var patch profile.Patch
	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		patch.DisplayName = &v
	}
	if flags.Changed("gifts") {
		patch.GladnessDrivers, _ = flags.GetStringSlice("gifts")
	}
	if flags.Changed("traits") {
		patch.PersonalityTraits, _ = flags.GetStringSlice("traits")
	}
	if flags.Changed("limitations") {
		patch.PhysicalLimitations, _ = flags.GetStringSlice("limitations")
	}
	if flags.Changed("recharge") {
		patch.RechargeActivities, _ = flags.GetStringSlice("recharge")
	}
	if flags.Changed("hunger") {
		v, _ := flags.GetString("hunger")
		patch.Hunger = &v
	}
	if flags.Changed("resistance") {
		v, _ := flags.GetInt("resistance")
		patch.Resistance = &v
	}
	if flags.Changed("vocation") {
		v, _ := flags.GetString("vocation")
		patch.Vocation = &v
	}
	return patch
}

func addProfileFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Display name")
	flags.StringSlice("gifts", nil, "Gladness drivers (e.g. teaching,listening)")
	flags.StringSlice("traits", nil, "Personality traits (pick 2-3)")
	flags.StringSlice("limitations", nil, "Physical limitations, or no-limitations")
	flags.StringSlice("recharge", nil, "Recharge activities (pick 2-5)")
	flags.String("hunger", "", "The problem that breaks your heart (empty to clear)")
	flags.Int("resistance", 50, "0 (fear) to 100 (exhaustion)")
	flags.String("vocation", "", "Your sense of calling, 10-500 characters")
}

// ProfileCmd returns the profile command
func ProfileCmd() *cobra.Command {
	addProfileFlags(profileSetCmd.Flags())

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileCompleteCmd)

	return profileCmd
}
