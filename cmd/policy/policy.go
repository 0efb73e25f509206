package policy

import (
	"fmt"

	"github.com/fansync/fansync/internal/configuration"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/ui"
	"github.com/spf13/cobra"
)

var headerId int

var Command = &cobra.Command{
	Use:              "policy",
	Short:            "Fan policy related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().IntVarP(
		&headerId,
		"header", "i",
		0,
		"Fan header id",
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

func getPolicy(policies []hwio.Policy, header hwio.HeaderID) (hwio.Policy, error) {
	for _, policy := range policies {
		if policy.HeaderID == header {
			return policy, nil
		}
	}
	return hwio.Policy{}, fmt.Errorf("no fan header with id found: %d", header)
}
