// Package config loads yamlconfig's own settings from local and global YAML
// files. The CLI merges them with flags: flag, then local, then global.
package config
