package curve

import (
	"errors"

	"github.com/fansync/fansync/internal/exchange"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/store"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current policies and fan curves to a portable file",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := getAdapter()

		ctx := cmd.Context()
		policies := store.NewPolicyStore()
		curves := store.NewCurveStore()

		backendPolicies, err := adapter.ListPolicies(ctx)
		if err != nil {
			return err
		}
		policies.ReplaceAll(backendPolicies)

		headers, err := adapter.Headers(ctx)
		if err != nil {
			return err
		}
		for _, header := range headers {
			modes, err := adapter.SupportedModes(ctx, header.ID)
			if err != nil {
				return err
			}
			for _, mode := range modes {
				c, err := adapter.Curve(ctx, header.ID, mode)
				if errors.Is(err, hwio.ErrUnsupportedMode) {
					continue
				}
				if err != nil {
					return err
				}
				curves.Put(c)
			}
		}

		document := exchange.Export(policies, curves)
		if err := exchange.WriteFile(exportPath, document); err != nil {
			return err
		}

		ui.Info("Exported %d policies and %d curves to %s",
			len(document.Policies), len(document.Curves), exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "fansync-export.json", "Path of the export file")

	Command.AddCommand(exportCmd)
}
