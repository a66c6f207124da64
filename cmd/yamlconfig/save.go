package yamlconfig

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/yamlconfig/internal/logging"
	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/yamlio"
)

type saveOptions struct {
	load       loadFlags
	output     string
	setRootdir bool
}

var saveFlags saveOptions

func init() {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Merge configuration files and write the result",
		Long:  "save writes the resolved configuration as YAML. Absolute paths below rootdir are written back relative to it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return saveConfig(cmd.OutOrStdout(), saveFlags, loadSettings())
		},
	}
	rootCmd.AddCommand(cmd)

	addLoadFlags(cmd.Flags(), &saveFlags.load)
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().StringVarP(&saveFlags.output, "output", "o", "", "output file path")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().BoolVar(&saveFlags.setRootdir, "set-rootdir", false, "record rootdir as the first config file's directory when absent")
}

func saveConfig(w io.Writer, o saveOptions, s settings) error {
	if o.output == "" {
		return fmt.Errorf("--output is required")
	}
	m, opts, err := loadConfig(o.load, s)
	if err != nil {
		return err
	}
	if o.setRootdir {
		first, err := filepath.Abs(o.load.configs[0])
		if err != nil {
			return err
		}
		rootdir.SetRootdir(m, first)
	}
	if err := yamlio.Save(o.output, m, resolverOptions(opts)); err != nil {
		return err
	}
	logging.Info().Str("path", o.output).Int("keys", m.Len()).Msg("saved configuration")
	_, err = fmt.Fprintln(w, "Wrote", o.output)
	return err
}
