package yamlconfig

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/redactyl/yamlconfig/internal/postproc"
	"github.com/redactyl/yamlconfig/internal/tree"
	"github.com/redactyl/yamlconfig/internal/yamlio"
)

type showOptions struct {
	load         loadFlags
	json         bool
	keys         []string
	allowMissing bool
	drop         []string
	squeeze      bool
	fingerprint  bool
	color        bool
}

var showFlags showOptions

func init() {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Example: `
# merge two files, the second wins
yamlconfig show -c base.yml -c local.yml

# only two keys, port falls back to 8080
yamlconfig show -c app.yml --keys name,port=8080 --json`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}
	rootCmd.AddCommand(cmd)

	addLoadFlags(cmd.Flags(), &showFlags.load)
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().BoolVar(&showFlags.json, "json", false, "emit JSON instead of YAML")
	cmd.Flags().StringSliceVar(&showFlags.keys, "keys", nil, "top-level keys to keep; name=default makes a key optional")
	cmd.Flags().BoolVar(&showFlags.allowMissing, "allow-missing", false, "skip missing keys listed in --keys")
	cmd.Flags().StringSliceVar(&showFlags.drop, "drop", nil, "top-level keys to remove from the output")
	cmd.Flags().BoolVar(&showFlags.squeeze, "squeeze", false, "unwrap a configuration with a single top-level mapping")
	cmd.Flags().BoolVar(&showFlags.fingerprint, "fingerprint", false, "print a stable hash of the configuration instead")
}

func runShow(cmd *cobra.Command, _ []string) error {
	s := loadSettings()
	o := showFlags
	o.color = useColor(cmd.OutOrStdout(), s)
	return showConfig(cmd.OutOrStdout(), o, s)
}

func showConfig(w io.Writer, o showOptions, s settings) error {
	m, _, err := loadConfig(o.load, s)
	if err != nil {
		return err
	}
	if o.squeeze {
		m = postproc.Squeeze(m)
	}
	sel := postproc.SelectOptions{AllowMissing: o.allowMissing, DropKeys: splitList(o.drop)}
	if specs := splitList(o.keys); len(specs) > 0 {
		sel.Keys, sel.Defaults = postproc.ParseKeySpecs(specs)
	}
	m, err = postproc.Select(m, sel)
	if err != nil {
		return err
	}

	if o.fingerprint {
		fp, err := tree.Fingerprint(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, fp)
		return err
	}

	var out []byte
	lang := "yaml"
	if o.json {
		lang = "json"
		out, err = json.MarshalIndent(m, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yamlio.Marshal(m)
	}
	if err != nil {
		return err
	}
	text := string(out)
	if o.color {
		text = highlight(text, lang)
	}
	_, err = io.WriteString(w, text)
	return err
}
