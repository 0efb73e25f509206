package policy

import (
	"bytes"
	"strconv"

	"github.com/fansync/fansync/cmd/global"
	"github.com/fansync/fansync/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current policy of all fan headers to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		adapter := getAdapter()

		ctx := cmd.Context()
		headers, err := adapter.Headers(ctx)
		if err != nil {
			return err
		}
		policies, err := adapter.ListPolicies(ctx)
		if err != nil {
			return err
		}

		names := map[int]string{}
		for _, header := range headers {
			names[int(header.ID)] = header.DisplayName
		}

		rows := [][]string{}
		for _, policy := range policies {
			rows = append(rows, []string{
				strconv.Itoa(int(policy.HeaderID)),
				names[int(policy.HeaderID)],
				string(policy.Mode),
				string(policy.Profile),
				policy.TemperatureSource,
				strconv.Itoa(policy.LowRpmLimit),
			})
		}

		tab := table.Table{
			Headers: []string{"Header", "Name", "Mode", "Profile", "Temp Source", "Low RPM Limit"},
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
