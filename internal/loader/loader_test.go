package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/yamlconfig/internal/merge"
	"github.com/redactyl/yamlconfig/internal/rootdir"
	"github.com/redactyl/yamlconfig/internal/yamlio"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestParseConfigFile_RequestingFileWins(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", `
config_files: [a.yaml, b.yaml]
x: 1
nested:
  keep: main
`)
	writeTemp(t, dir, "a.yaml", `
x: 2
y: a
nested:
  keep: a
  from_a: true
`)
	writeTemp(t, dir, "b.yaml", `
x: 3
y: b
z: b
nested:
  from_b: true
`)

	m, err := ParseConfigFile(main, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"x": 1,
		"y": "a",
		"z": "b",
		"nested": map[string]any{
			"keep":   "main",
			"from_a": true,
			"from_b": true,
		},
	}, m.ToPlain())
	assert.False(t, m.Has(ConfigFilesKey))
}

func TestParseConfigFile_NestedLinks(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "config_files: [mid/mid.yaml]\nlevel: main\n")
	writeTemp(t, dir, "mid/mid.yaml", "config_files: [leaf.yaml]\nlevel: mid\nmid: true\n")
	writeTemp(t, dir, "mid/leaf.yaml", "level: leaf\nleaf: true\nmid: false\n")

	m, err := ParseConfigFile(main, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": "main", "mid": true, "leaf": true}, m.ToPlain())
}

func TestParseConfigFile_NoMergeStillPops(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "config_files: [missing.yaml]\nx: 1\n")

	m, err := ParseConfigFile(main, Options{MergeLinkedFiles: false})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1}, m.ToPlain())
}

func TestParseConfigFile_JoinRootdir(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", `
relative_dir: some/where
absolute_dir: /abs/where
no_diir: some/where
config_files: [sub/linked.yaml]
`)
	writeTemp(t, dir, "sub/linked.yaml", "linked_file: here.txt\n")

	m, err := ParseConfigFile(main, Options{JoinRootdir: true, MergeLinkedFiles: true})
	require.NoError(t, err)
	plain := m.ToPlain()
	assert.Equal(t, filepath.Join(dir, "some", "where"), plain["relative_dir"])
	assert.Equal(t, filepath.Clean("/abs/where"), plain["absolute_dir"])
	assert.Equal(t, "some/where", plain["no_diir"])
	assert.Equal(t, filepath.Join(dir, "sub", "here.txt"), plain["linked_file"])
	assert.NotContains(t, plain, "rootdir")
}

func TestParseConfigFile_DeclaredRootdirResolvesLinks(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base")
	main := writeTemp(t, dir, "conf/main.yaml", "rootdir: "+base+"\nconfig_files: [linked.yaml]\ndata_dir: data\n")
	writeTemp(t, base, "linked.yaml", "rootdir: /ignored\nextra: 1\n")

	m, err := ParseConfigFile(main, Options{JoinRootdir: true, MergeLinkedFiles: true})
	require.NoError(t, err)
	plain := m.ToPlain()
	assert.Equal(t, base, plain["rootdir"], "linked rootdir must not leak into the result")
	assert.Equal(t, filepath.Join(base, "data"), plain["data_dir"])
	assert.Equal(t, 1, plain["extra"])
}

func TestParseConfigFile_CustomRulesEnableJoin(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "cache_location: c\ndata_dir: d\n")
	rules, err := rootdir.NewRegexRules(`cache_.*`)
	require.NoError(t, err)

	m, err := ParseConfigFile(main, Options{Rules: rules})
	require.NoError(t, err)
	plain := m.ToPlain()
	assert.Equal(t, filepath.Join(dir, "c"), plain["cache_location"])
	assert.Equal(t, "d", plain["data_dir"])
}

func TestParseConfigFile_Cycle(t *testing.T) {
	dir := t.TempDir()
	one := writeTemp(t, dir, "one.yaml", "config_files: [two.yaml]\n")
	writeTemp(t, dir, "two.yaml", "config_files: [one.yaml]\n")

	_, err := ParseConfigFile(one, DefaultOptions())
	var ce *CycleError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Len(t, ce.Chain, 3)
}

func TestParseConfigFile_SelfLink(t *testing.T) {
	dir := t.TempDir()
	self := writeTemp(t, dir, "self.yaml", "config_files: [./self.yaml]\n")
	_, err := ParseConfigFile(self, DefaultOptions())
	var ce *CycleError
	require.True(t, errors.As(err, &ce))
}

func TestParseConfigFile_DiamondIsNotACycle(t *testing.T) {
	dir := t.TempDir()
	top := writeTemp(t, dir, "top.yaml", "config_files: [left.yaml, right.yaml]\n")
	writeTemp(t, dir, "left.yaml", "config_files: [shared.yaml]\nside: left\n")
	writeTemp(t, dir, "right.yaml", "config_files: [shared.yaml]\nside: right\n")
	writeTemp(t, dir, "shared.yaml", "shared: true\n")

	m, err := ParseConfigFile(top, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"side": "left", "shared": true}, m.ToPlain())
}

func TestParseConfigFile_LinkedFailureAborts(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "config_files: [gone.yaml]\nx: 1\n")

	m, err := ParseConfigFile(main, DefaultOptions())
	assert.Nil(t, m)
	var fe *yamlio.FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, filepath.Join(dir, "gone.yaml"), fe.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseConfigFile_MalformedLinked(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "config_files: [bad.yaml]\n")
	bad := writeTemp(t, dir, "bad.yaml", "x: [\n")

	_, err := ParseConfigFile(main, DefaultOptions())
	var pe *yamlio.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, bad, pe.Path)
}

func TestParseConfigFile_BadConfigFilesValue(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "config_files: {a: b}\n")
	_, err := ParseConfigFile(main, DefaultOptions())
	var pe *yamlio.ParseError
	require.True(t, errors.As(err, &pe))

	single := writeTemp(t, dir, "single.yaml", "config_files: other.yaml\nx: 1\n")
	writeTemp(t, dir, "other.yaml", "y: 2\n")
	m, err := ParseConfigFile(single, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, m.ToPlain())
}

func TestParseConfigFile_RoundTripKeepsComments(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "name: world\n# the greeting\ngreeting: hi\n")

	m, err := ParseConfigFile(main, Options{RoundTrip: true})
	require.NoError(t, err)
	assert.Equal(t, "# the greeting", m.Note("greeting").Head)

	m, err = ParseConfigFile(main, Options{})
	require.NoError(t, err)
	assert.True(t, m.Note("greeting").IsZero())
}

func TestParseMergeMultiple_HelloWorld(t *testing.T) {
	dir := t.TempDir()
	hello := writeTemp(t, dir, "hello.yaml", "name: world\ngreeting: hello\n")
	world := writeTemp(t, dir, "world.yaml", "name: world\n")

	m, err := ParseMergeMultiple([]string{hello, world}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "world", "greeting": "hello"}, m.ToPlain())
}

func TestParseMergeMultiple_LastWinsAndEmpty(t *testing.T) {
	dir := t.TempDir()
	one := writeTemp(t, dir, "1.yaml", "a: 1\nn: {p: 1, q: 1}\n")
	two := writeTemp(t, dir, "2.yaml", "a: 2\nn: {q: 2}\n")

	m, err := ParseMergeMultiple([]string{one, two}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 2, "n": map[string]any{"p": 1, "q": 2}}, m.ToPlain())

	_, err = ParseMergeMultiple(nil, DefaultOptions())
	assert.True(t, errors.Is(err, merge.ErrNoInput))
}

func TestParseThenSave_RestoresRelativePaths(t *testing.T) {
	dir := t.TempDir()
	main := writeTemp(t, dir, "main.yaml", "rootdir: "+dir+"\ndata_dir: data\n")
	m, err := ParseConfigFile(main, Options{JoinRootdir: true})
	require.NoError(t, err)

	out := filepath.Join(dir, "out.yaml")
	require.NoError(t, yamlio.Save(out, m, rootdir.Options{}))
	saved, err := yamlio.Load(out, yamlio.Plain)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"rootdir": dir, "data_dir": "data"}, saved.ToPlain())

	v, _ := m.Get("data_dir")
	assert.Equal(t, filepath.Join(dir, "data"), v)
}
