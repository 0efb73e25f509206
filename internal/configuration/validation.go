package configuration

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.PollingRate < 100*time.Millisecond {
		return fmt.Errorf("PollingRate must be at least 100ms, got %s", config.PollingRate)
	}
	if config.ReadingsWindowSize <= 0 {
		return fmt.Errorf("ReadingsWindowSize must be >= 1, got %d", config.ReadingsWindowSize)
	}

	if config.CurveTempMin < 0 || config.CurveTempMax > 100 || config.CurveTempMin >= config.CurveTempMax {
		return fmt.Errorf("invalid curve temperature domain [%d, %d]", config.CurveTempMin, config.CurveTempMax)
	}

	supportedAdapters := []string{BackendAdapterSimulated}
	if !slices.Contains(supportedAdapters, config.Backend.Adapter) {
		return fmt.Errorf("unknown backend adapter '%s', use one of: sim", config.Backend.Adapter)
	}
	if config.Backend.Headers < 1 || config.Backend.Headers > 16 {
		return fmt.Errorf("Backend.Headers must be in [1, 16], got %d", config.Backend.Headers)
	}
	if !config.Backend.DefaultMode.Valid() {
		return fmt.Errorf("unknown default control mode '%s'", config.Backend.DefaultMode)
	}

	if config.Api.Enabled {
		if err := validatePort("Api.Port", config.Api.Port); err != nil {
			return err
		}
	}
	if config.Statistics.Enabled {
		if err := validatePort("Statistics.Port", config.Statistics.Port); err != nil {
			return err
		}
		if config.Statistics.Enabled && config.Api.Enabled && config.Statistics.Port == config.Api.Port {
			return fmt.Errorf("Api.Port and Statistics.Port must differ, both are %d", config.Api.Port)
		}
	}

	return nil
}

func validatePort(name string, port int) error {
	if port <= 0 || port >= 65535 {
		return fmt.Errorf("%s must be in (0, 65535), got %d", name, port)
	}
	return nil
}
