package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		" INFO ":  InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"off":     Disabled,
		"bogus":   WarnLevel,
		"":        WarnLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInit_FiltersByLevel(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})
	Debug().Msg("hidden")
	Info().Str("path", "a.yaml").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"path":"a.yaml"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestSetup_AppliesLevel(t *testing.T) {
	defer Init(DefaultConfig())

	Setup("debug", true)
	assert.Equal(t, DebugLevel, Logger.GetLevel())

	Setup("", false)
	assert.Equal(t, WarnLevel, Logger.GetLevel())

	Setup("off", false)
	assert.Equal(t, Disabled, Logger.GetLevel())
}

func TestInit_PrettyWithoutColor(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf, Pretty: true, NoColor: true})
	Warn().Str("file", "a.yaml").Msg("linked file")

	out := buf.String()
	assert.Contains(t, out, "linked file")
	assert.Contains(t, out, "file=a.yaml")
	assert.NotContains(t, out, "\x1b[")
	assert.NotContains(t, out, "{")
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
