package curve

import (
	"github.com/fansync/fansync/internal/configuration"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var (
	headerId string
	modeFlag string
)

var Command = &cobra.Command{
	Use:              "curve",
	Short:            "Fan curve related commands",
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&headerId,
		"header", "i",
		"",
		"Fan header id",
	)
	Command.PersistentFlags().StringVarP(
		&modeFlag,
		"mode", "m",
		"",
		"Control mode: dc | pwm | auto",
	)
}

func getAdapter() hwio.Adapter {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate()
	if err != nil {
		ui.Fatal(err.Error())
	}

	config := configuration.CurrentConfig.Backend
	switch config.Adapter {
	case configuration.BackendAdapterSimulated:
		return hwio.NewSimulatedAdapter(config.Headers)
	default:
		ui.Fatal("Unknown backend adapter: %s", config.Adapter)
		return nil
	}
}
