package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/benchtick/benchtick/pkg/clock"
	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/units"
)

var (
	cfgFile      string
	outputFormat string
	clockName    string
	unitName     string
	verbosity    string
	logJSON      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "benchtick",
	Short: "Interval timing for ad-hoc benchmarking",
	Long: `benchtick measures named start/stop intervals against a selectable OS
clock (wall, monotonic, CPU-time and their variants) and reports elapsed
time in seconds, milliseconds, microseconds or nanoseconds.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.benchtick/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "human", "output format: human, csv, table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&clockName, "clock", "", "clock kind (default from config or monotonic)")
	rootCmd.PersistentFlags().StringVar(&unitName, "unit", "", "time unit (default from config or seconds)")
	rootCmd.PersistentFlags().StringVar(&verbosity, "verbosity", "", "diagnostic verbosity: off, errors or debug (default from config or errors)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit diagnostics as JSON lines")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".benchtick")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("benchtick")
	viper.AutomaticEnv()

	viper.SetDefault("clock", "monotonic")
	viper.SetDefault("unit", "seconds")
	viper.SetDefault("verbosity", "errors")

	// Config file is optional; flags and env still apply without one.
	_ = viper.ReadInConfig()

	if clockName == "" {
		clockName = viper.GetString("clock")
	}
	if unitName == "" {
		unitName = viper.GetString("unit")
	}
	if verbosity == "" {
		verbosity = viper.GetString("verbosity")
	}
}

// newLogger builds the diagnostic logger from the resolved verbosity.
func newLogger() *logging.Logger {
	level := logging.ParseLevel(verbosity)
	if logJSON {
		return logging.NewJSONLogger(level, os.Stderr)
	}
	return logging.NewLogger(level)
}

// resolveClock parses the configured clock kind, falling back to realtime
// with a diagnostic on unknown values.
func resolveClock(log *logging.Logger) clock.Kind {
	k, err := clock.Parse(clockName)
	if err != nil {
		log.Error("invalid clock, using realtime", map[string]interface{}{
			"clock": clockName,
		})
		return clock.Realtime
	}
	return k
}

// resolveUnit parses the configured unit, falling back to seconds with a
// diagnostic on unknown values.
func resolveUnit(log *logging.Logger) units.Unit {
	u, err := units.Parse(unitName)
	if err != nil {
		log.Error("invalid unit, using seconds", map[string]interface{}{
			"unit": unitName,
		})
		return units.Seconds
	}
	return u
}
