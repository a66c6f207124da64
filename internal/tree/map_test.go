package tree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesInsertionOrder(t *testing.T) {
	m := New()
	m.Set("zeta", 1)
	m.Set("alpha", 2)
	m.Set("mid", 3)
	m.Set("zeta", 4) // overwrite keeps position

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	v, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestMap_DeleteDropsNote(t *testing.T) {
	m := New()
	m.Set("a", 1)
	m.SetNote("a", Note{Head: "# about a"})
	v, ok := m.Delete("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.False(t, m.Has("a"))
	assert.True(t, m.Note("a").IsZero())

	_, ok = m.Delete("a")
	assert.False(t, ok)
}

func TestMap_String(t *testing.T) {
	m := New()
	m.Set("s", "x")
	m.Set("empty", "")
	m.Set("n", 3)
	s, ok := m.String("s")
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	_, ok = m.String("empty")
	assert.False(t, ok)
	_, ok = m.String("n")
	assert.False(t, ok)
	_, ok = m.String("missing")
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	inner := New()
	inner.Set("k", "v")
	m := New()
	m.Set("inner", inner)
	m.Set("list", []any{"a", New()})
	m.SetNote("inner", Note{Line: "# kept"})
	m.SetFlow(true)

	c := m.Clone()
	inner.Set("k", "changed")

	ci, _ := c.Get("inner")
	cm, ok := AsMap(ci)
	require.True(t, ok)
	v, _ := cm.Get("k")
	assert.Equal(t, "v", v)
	assert.Equal(t, "# kept", c.Note("inner").Line)
	assert.True(t, c.Flow())

	orig, _ := m.Get("list")
	cl, _ := c.Get("list")
	orig.([]any)[0] = "z"
	assert.Equal(t, "a", cl.([]any)[0])
}

func TestToPlainAndFromPlain(t *testing.T) {
	plain := map[string]any{
		"b": map[string]any{"x": 1},
		"a": []any{"one", map[string]any{"y": true}},
		"c": nil,
	}
	m := FromPlain(plain)
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, plain, m.ToPlain())
}

func TestMarshalJSON_Ordered(t *testing.T) {
	inner := New()
	inner.Set("z", 1)
	inner.Set("a", 2)
	m := New()
	m.Set("second", "s")
	m.Set("first", inner)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"second":"s","first":{"z":1,"a":2}}`, string(b))
}

func TestFingerprint(t *testing.T) {
	a := New()
	a.Set("x", 1)
	a.Set("y", "two")
	b := a.Clone()
	b.SetNote("x", Note{Head: "# comments do not count"})

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 16)

	b.Set("y", "three")
	fc, err := Fingerprint(b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}
