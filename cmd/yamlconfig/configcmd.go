package yamlconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactyl/yamlconfig/internal/config"
	"github.com/redactyl/yamlconfig/internal/rootdir"
)

type configInitOptions struct {
	output      string
	joinRootdir bool
	noMerge     bool
	roundTrip   bool
	withRegex   bool
	exclude     []string
	logLevel    string
	noColor     bool
	force       bool
}

var cfgInit configInitOptions

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Settings helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .yamlconfig.yml with the selected defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSettings(cmd.OutOrStdout(), cfgInit)
		},
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgInit.output, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgInit.joinRootdir, "join-rootdir", false, "resolve path-like values by default")
	initCmd.Flags().BoolVar(&cfgInit.noMerge, "no-merge-linked", false, "do not merge config_files by default")
	initCmd.Flags().BoolVar(&cfgInit.roundTrip, "round-trip", false, "keep comments by default")
	initCmd.Flags().BoolVar(&cfgInit.withRegex, "with-key-regex", false, "write the default path-key patterns so they can be edited")
	initCmd.Flags().StringSliceVar(&cfgInit.exclude, "exclude", nil, "keys or globs never treated as paths")
	initCmd.Flags().StringVar(&cfgInit.logLevel, "log-level", "warn", "default log level")
	initCmd.Flags().BoolVar(&cfgInit.noColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgInit.force, "force", false, "overwrite an existing file")
}

func writeSettings(w io.Writer, o configInitOptions) error {
	if !o.force {
		if _, err := os.Stat(o.output); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", o.output)
		}
	}
	fc := config.FileConfig{
		JoinRootdir:      boolPtr(o.joinRootdir),
		MergeLinkedFiles: boolPtr(!o.noMerge),
		RoundTrip:        boolPtr(o.roundTrip),
		Exclude:          splitList(o.exclude),
		LogLevel:         strPtr(o.logLevel),
		NoColor:          boolPtr(o.noColor),
	}
	if o.withRegex {
		fc.KeyRegex = append([]string(nil), rootdir.DefaultKeyRegex...)
	}
	b, err := config.Marshal(fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.output, b, 0o644); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, "Wrote", o.output)
	return err
}

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }
