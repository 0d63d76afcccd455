package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEnumAddAndLookup(t *testing.T) {
	e := NewEnum("Test", 0xff)
	require.NoError(t, e.Add("Alpha", 1))
	require.NoError(t, e.Add("Beta", 2))

	m := e.Lookup(1)
	assert.Equal(t, "Alpha", m.Name)
	assert.False(t, m.IsUnknown())

	unk := e.Lookup(99)
	assert.True(t, unk.IsUnknown())
	assert.Equal(t, uint64(99), unk.Value)
}

func TestEnumAddRejectsDuplicates(t *testing.T) {
	e := NewEnum("Test", 0xff)
	require.NoError(t, e.Add("Alpha", 1))
	assert.Error(t, e.Add("Alpha", 2))
	assert.Error(t, e.Add("Gamma", 1))
}

func TestEnumMustAddPanics(t *testing.T) {
	e := NewEnum("Test", 0xff)
	e.MustAdd("Alpha", 1)
	assert.Panics(t, func() { e.MustAdd("Alpha", 2) })
}

func TestEnumByName(t *testing.T) {
	e := NewEnum("Test", 0xff)
	e.MustAdd("Alpha", 1)
	m, ok := e.ByName("Alpha")
	require.True(t, ok)
	assert.Equal(t, uint64(1), m.Value)
	_, ok = e.ByName("Missing")
	assert.False(t, ok)
}

// TestEnumExtendMergesDisjointMembers exercises spec.md §3.4's addin-time
// enum extension for the ordinary, non-colliding case.
func TestEnumExtendMergesDisjointMembers(t *testing.T) {
	base := NewEnum("Base", 0xff)
	base.MustAdd("Alpha", 1)
	ext := NewEnum("Ext", 0xff)
	ext.MustAdd("VendorX", 100)

	require.NoError(t, base.Extend(ext))
	m := base.Lookup(100)
	assert.Equal(t, "VendorX", m.Name)
	m = base.Lookup(1)
	assert.Equal(t, "Alpha", m.Name)
}

func TestEnumExtendIsIdempotentForIdenticalMember(t *testing.T) {
	base := NewEnum("Base", 0xff)
	base.MustAdd("Alpha", 1)
	ext := NewEnum("Ext", 0xff)
	ext.MustAdd("Alpha", 1)
	assert.NoError(t, base.Extend(ext))
}

// TestEnumExtendCollisionLeavesOriginalUnchanged is spec.md §8.1 property 6:
// a name or value collision against a *different* member is rejected and
// leaves every existing name/value in the original enum untouched.
func TestEnumExtendCollisionLeavesOriginalUnchanged(t *testing.T) {
	base := NewEnum("Base", 0xff)
	base.MustAdd("Alpha", 1)
	base.MustAdd("Beta", 2)

	nameCollision := NewEnum("Ext", 0xff)
	nameCollision.MustAdd("Alpha", 50)
	assert.Error(t, base.Extend(nameCollision))
	assertMembersUnchanged(t, base)

	valueCollision := NewEnum("Ext2", 0xff)
	valueCollision.MustAdd("Gamma", 1)
	assert.Error(t, base.Extend(valueCollision))
	assertMembersUnchanged(t, base)
}

func assertMembersUnchanged(t *testing.T, base *Enum) {
	t.Helper()
	m, ok := base.ByName("Alpha")
	require.True(t, ok)
	assert.Equal(t, uint64(1), m.Value)
	m, ok = base.ByName("Beta")
	require.True(t, ok)
	assert.Equal(t, uint64(2), m.Value)
	assert.Len(t, base.Members(), 2)
}

// TestEnumOpennessProperty is spec.md §8.1 property 6 in its general form:
// extending an enum with an arbitrary set of disjoint members always
// succeeds and leaves every pre-existing member resolvable afterward.
func TestEnumOpennessProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 10).Draw(t, "n")
		base := NewEnum("Base", 0xffff)
		baseNames := map[string]uint64{}
		for i := 0; i < n; i++ {
			name := rapid.StringMatching(`[A-Z][a-z]{2,8}`).Draw(t, "name")
			val := uint64(i) * 2 // even values reserved for base
			if _, exists := baseNames[name]; exists {
				continue
			}
			if err := base.Add(name, val); err == nil {
				baseNames[name] = val
			}
		}

		ext := NewEnum("Ext", 0xffff)
		m := rapid.IntRange(0, 10).Draw(t, "m")
		for i := 0; i < m; i++ {
			name := rapid.StringMatching(`[a-z][a-z0-9]{2,8}`).Draw(t, "extname")
			val := uint64(i)*2 + 1 // odd values, disjoint from base
			ext.Add(name, val)
		}

		require.NoError(t, base.Extend(ext))
		for name, val := range baseNames {
			got, ok := base.ByName(name)
			require.True(t, ok)
			assert.Equal(t, val, got.Value)
		}
	})
}
