package yamlconfig

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/tree"
)

var explainFlags loadFlags

func init() {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "List every leaf key, whether it is treated as a path, and its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return explainConfig(cmd.OutOrStdout(), explainFlags, loadSettings())
		},
	}
	rootCmd.AddCommand(cmd)

	addLoadFlags(cmd.Flags(), &explainFlags)
	_ = cmd.MarkFlagRequired("config")
}

func explainConfig(w io.Writer, f loadFlags, s settings) error {
	m, opts, err := loadConfig(f, s)
	if err != nil {
		return err
	}
	rows := explainRows(m, "", resolverOptions(opts))

	table := tablewriter.NewWriter(w)
	table.Header("Key", "Path", "Value")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// explainRows flattens m into dotted key paths in document order.
func explainRows(m *tree.Map, prefix string, ro rootdir.Options) [][]string {
	var rows [][]string
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if inner, ok := tree.AsMap(v); ok {
			rows = append(rows, explainRows(inner, name, ro)...)
			continue
		}
		path := ""
		if ro.IsPathKey(k) {
			path = "yes"
		}
		rows = append(rows, []string{name, path, renderValue(v)})
	}
	return rows
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}
