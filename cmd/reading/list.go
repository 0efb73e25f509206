package reading

import (
	"bytes"
	"fmt"

	"github.com/fansync/fansync/cmd/global"
	"github.com/fansync/fansync/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print a snapshot of all sensor readings to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		adapter := getAdapter()

		readings, err := adapter.Readings(cmd.Context())
		if err != nil {
			return err
		}

		rows := [][]string{}
		for _, reading := range readings {
			rows = append(rows, []string{
				reading.Identifier,
				reading.Name,
				reading.Type,
				fmt.Sprintf("%.1f %s", reading.Value, reading.Unit),
			})
		}

		tab := table.Table{
			Headers: []string{"Id", "Name", "Type", "Value"},
			Rows:    rows,
		}
		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			panic(tableErr)
		}
		ui.Printfln(buf.String())

		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
