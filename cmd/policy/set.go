package policy

import (
	"fmt"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var (
	modeFlag        string
	profileFlag     string
	lowRpmLimitFlag int
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the policy of a fan header",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := getAdapter()

		ctx := cmd.Context()
		policies, err := adapter.ListPolicies(ctx)
		if err != nil {
			return err
		}
		policy, err := getPolicy(policies, hwio.HeaderID(headerId))
		if err != nil {
			return err
		}

		if modeFlag != "" {
			mode, err := hwio.ParseControlMode(modeFlag)
			if err != nil {
				return err
			}
			policy.Mode = mode
		}
		if profileFlag != "" {
			switch hwio.Profile(profileFlag) {
			case hwio.ProfileStandard, hwio.ProfileManual:
				policy.Profile = hwio.Profile(profileFlag)
			default:
				return fmt.Errorf("unknown profile: %s, use one of: standard | manual", profileFlag)
			}
		}
		if cmd.Flags().Changed("low-rpm-limit") {
			policy.LowRpmLimit = lowRpmLimitFlag
		}

		if err := adapter.SetPolicy(ctx, policy); err != nil {
			return err
		}

		ui.Printfln("Header %d: mode=%s profile=%s lowRpmLimit=%d",
			policy.HeaderID, policy.Mode, policy.Profile, policy.LowRpmLimit)
		return nil
	},
}

func init() {
	setCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Control mode: dc | pwm | auto")
	setCmd.Flags().StringVarP(&profileFlag, "profile", "p", "", "Thermal profile: standard | manual")
	setCmd.Flags().IntVarP(&lowRpmLimitFlag, "low-rpm-limit", "l", 0, "RPM below which the fan counts as stalled")

	Command.AddCommand(setCmd)
}
