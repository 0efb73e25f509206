package curve

import (
	"bytes"
	"errors"
	"sort"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/fansync/fansync/cmd/global"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	"github.com/fansync/fansync/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"golang.org/x/exp/maps"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the fan curve(s) to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		adapter := getAdapter()

		ctx := cmd.Context()
		headers, err := adapter.Headers(ctx)
		if err != nil {
			return err
		}

		printed := 0
		for _, header := range headers {
			if headerId != "" && strconv.Itoa(int(header.ID)) != headerId {
				continue
			}

			modes, err := adapter.SupportedModes(ctx, header.ID)
			if err != nil {
				return err
			}
			for _, mode := range modes {
				if modeFlag != "" && string(mode) != modeFlag {
					continue
				}

				c, err := adapter.Curve(ctx, header.ID, mode)
				if errors.Is(err, hwio.ErrUnsupportedMode) {
					continue
				}
				if err != nil {
					return err
				}

				if printed > 0 {
					ui.Printfln("")
					ui.Printfln("")
				}
				printed++

				printCurve(header, c)
			}
		}

		return nil
	},
}

func printCurve(header hwio.Header, c hwio.Curve) {
	ui.Printfln("%s (%s)", header.DisplayName, c.Mode)

	rows := [][]string{}
	for _, point := range c.Points {
		rows = append(rows, []string{
			strconv.Itoa(point.TemperatureC),
			strconv.Itoa(point.DutyPct),
		})
	}

	// print table
	tab := table.Table{
		Headers: []string{"Temp °C", "Duty %"},
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

	// print graph
	steps := map[int]float64{}
	for _, point := range c.Points {
		steps[point.TemperatureC] = float64(point.DutyPct)
	}
	temps := maps.Keys(steps)
	sort.Ints(temps)
	graphValues := util.InterpolateLinearly(&steps, temps[0], temps[len(temps)-1])

	keys := make([]int, 0, len(graphValues))
	for k := range graphValues {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	values := make([]float64, 0, len(keys))
	for _, k := range keys {
		values = append(values, graphValues[k])
	}

	caption := "Duty % / Temp °C"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
}

func init() {
	Command.AddCommand(listCmd)
}
