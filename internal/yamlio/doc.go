// Package yamlio reads YAML configuration files into tree.Map values and
// writes them back. Plain loads keep structure and key order; round-trip
// loads also keep comments so that Save reproduces them.
package yamlio
