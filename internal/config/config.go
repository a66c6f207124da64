package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoLocal  = errors.New("no local config")
	ErrNoGlobal = errors.New("no global config")
)

// LocalNames are searched in order in the working directory.
var LocalNames = []string{".yamlconfig.yml", ".yamlconfig.yaml", "yamlconfig.yml", "yamlconfig.yaml"}

// FileConfig is the on-disk shape of the tool settings. Nil fields were
// not set in the file.
type FileConfig struct {
	JoinRootdir      *bool    `yaml:"join_rootdir,omitempty"`
	MergeLinkedFiles *bool    `yaml:"merge_linked_files,omitempty"`
	RoundTrip        *bool    `yaml:"round_trip,omitempty"`
	KeyRegex         []string `yaml:"key_regex,omitempty"`
	Exclude          []string `yaml:"exclude,omitempty"`
	LogLevel         *string  `yaml:"log_level,omitempty"`
	NoColor          *bool    `yaml:"no_color,omitempty"`
}

// LoadFile reads a settings file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches dir for one of LocalNames.
func LoadLocal(dir string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNoLocal
}

// GlobalPath returns $XDG_CONFIG_HOME/yamlconfig/config.yml, falling back
// to ~/.config. It is empty when neither base directory is known.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "yamlconfig", "config.yml")
}

// LoadGlobal loads the global settings file.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, ErrNoGlobal
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNoGlobal
	}
	return LoadFile(p)
}

// Defaults returns the settings the tool uses when nothing is configured.
func Defaults() FileConfig {
	f, t := false, true
	level := "warn"
	return FileConfig{
		JoinRootdir:      &f,
		MergeLinkedFiles: &t,
		RoundTrip:        &f,
		LogLevel:         &level,
		NoColor:          &f,
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg FileConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
