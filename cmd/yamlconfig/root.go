package yamlconfig

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactyl/yamlconfig/internal/logging"
)

var (
	flagLogLevel string
	flagNoColor  bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the yamlconfig CLI.
var rootCmd = &cobra.Command{
	Use:               "yamlconfig",
	Short:             "Load, link and merge YAML configuration files",
	Long:              "yamlconfig resolves rootdir-relative paths, follows config_files links and merges several YAML files into one configuration.",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the yamlconfig CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error|off")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	s := loadSettings()
	level := flagLogLevel
	if level == "" {
		level = os.Getenv(logging.EnvLevel)
	}
	level = pickString(level, s.local.LogLevel, s.global.LogLevel)
	logging.Setup(level, s.noColor(flagNoColor))
	return nil
}
