// Package yamlconfig provides the command-line interface for the yamlconfig
// tool. It wires subcommands (show, save, explain, config, completion),
// parses flags and settings files, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/yamlconfig/cmd/yamlconfig"
//	func main() { yamlconfig.Execute() }
package yamlconfig
