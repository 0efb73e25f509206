package curve

import (
	"github.com/fansync/fansync/internal/exchange"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var importPath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replay fan curves from an export file onto the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := getAdapter()

		document, err := exchange.ReadFile(importPath)
		if err != nil {
			return err
		}

		imported, err := exchange.Import(cmd.Context(), adapter, document)
		if err != nil {
			return err
		}

		ui.Info("Imported %d curve(s) from %s", imported, importPath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importPath, "input", "f", "fansync-export.json", "Path of the export file")

	Command.AddCommand(importCmd)
}
