package reading

import (
	"github.com/fansync/fansync/internal/configuration"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "reading",
	Short:            "Sensor reading related commands",
	TraverseChildren: true,
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
