// Package core provides a small, stable facade over yamlconfig's internal
// packages for programs that want to load configuration themselves. It
// re-exports a narrow API surface so callers can depend on a stable import
// path without reaching into internal implementation packages.
//
// Example:
//
//	m, err := core.ParseMergeMultiple([]string{"base.yml", "local.yml"}, core.DefaultOptions())
//	if err != nil { /* handle */ }
//	_ = core.MarshalJSON(os.Stdout, m)
package core
