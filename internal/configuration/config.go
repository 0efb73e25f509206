package configuration

import (
	"os"
	"time"

	"github.com/fansync/fansync/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// PollingRate is the cadence of the policy+readings refresh
	PollingRate time.Duration `json:"pollingRate"`

	// ReadingsWindowSize is the rolling window used to smooth sensor readings
	ReadingsWindowSize int `json:"readingsWindowSize"`

	CurveTempMin int `json:"curveTempMin"`
	CurveTempMax int `json:"curveTempMax"`

	Backend    BackendConfig    `json:"backend"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("fansync")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fansync/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/fansync/fansync.db")
	viper.SetDefault("PollingRate", 2000*time.Millisecond)
	viper.SetDefault("ReadingsWindowSize", 10)
	viper.SetDefault("CurveTempMin", 20)
	viper.SetDefault("CurveTempMax", 100)

	viper.SetDefault("Backend.Adapter", BackendAdapterSimulated)
	viper.SetDefault("Backend.Headers", 3)
	viper.SetDefault("Backend.DefaultMode", "pwm")

	viper.SetDefault("Api.Enabled", true)
	viper.SetDefault("Api.Host", "localhost")
	viper.SetDefault("Api.Port", 9440)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9441)
}

// DetectAndReadConfigFile reads the detected config file (if any) and
// returns its path. A missing config file is fine, defaults apply.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			ui.Fatal("Error reading config file, %s", err)
		}
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
