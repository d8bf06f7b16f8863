package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/config"
)

func testGroupSet(t *testing.T) *GroupSet {
	t.Helper()
	gs, err := CompileGroups(&config.GroupConfig{
		Groups: []config.GroupEntry{
			{BaseName: "Wings", Suffix: "wings"},
			{BaseName: "Coffee", Keywords: []string{"espresso", "latte", "cappuccino"}},
			{BaseName: "Ice Cream", Suffix: "ice cream"},
		},
	})
	require.NoError(t, err)
	return gs
}

func TestGroupMatchSuffix(t *testing.T) {
	gs := testGroupSet(t)

	t.Run("exact suffix with variation remainder", func(t *testing.T) {
		m := gs.Match("Buffalo Wings")
		require.NotNil(t, m)
		assert.Equal(t, "Wings", m.BaseName)
		assert.True(t, m.VariationOK)
		assert.Equal(t, "Buffalo", m.Variation)
	})

	t.Run("bare suffix yields no variation", func(t *testing.T) {
		m := gs.Match("Wings")
		require.NotNil(t, m)
		assert.Equal(t, "Wings", m.BaseName)
		assert.False(t, m.VariationOK)
	})

	t.Run("fuzzy suffix typo", func(t *testing.T) {
		m := gs.Match("Buffalo Wngs")
		require.NotNil(t, m)
		assert.Equal(t, "Wings", m.BaseName)
		assert.Equal(t, "Buffalo", m.Variation)
	})

	t.Run("same-length short-word veto", func(t *testing.T) {
		// rings/wings are both length 5 and one edit apart: distinct
		// words, not a typo.
		assert.Nil(t, gs.Match("Onion Rings"))
	})

	t.Run("multi-word suffix", func(t *testing.T) {
		m := gs.Match("Vanilla Ice Cream")
		require.NotNil(t, m)
		assert.Equal(t, "Ice Cream", m.BaseName)
		assert.Equal(t, "Vanilla", m.Variation)
	})

	t.Run("suffix inside word does not match", func(t *testing.T) {
		assert.Nil(t, gs.Match("Wingspan Platter"))
	})
}

func TestGroupMatchKeyword(t *testing.T) {
	gs := testGroupSet(t)

	t.Run("exact keyword", func(t *testing.T) {
		m := gs.Match("Iced Latte")
		require.NotNil(t, m)
		assert.Equal(t, "Coffee", m.BaseName)
		assert.True(t, m.VariationOK)
		assert.Equal(t, "Iced Latte", m.Variation)
	})

	t.Run("fuzzy keyword common misspelling", func(t *testing.T) {
		m := gs.Match("Expresso")
		require.NotNil(t, m)
		assert.Equal(t, "Coffee", m.BaseName)
		assert.Equal(t, "Expresso", m.Variation)
	})

	t.Run("keyword equal to base name yields no variation", func(t *testing.T) {
		gs2, err := CompileGroups(&config.GroupConfig{
			Groups: []config.GroupEntry{
				{BaseName: "Latte", Keywords: []string{"latte"}},
			},
		})
		require.NoError(t, err)
		m := gs2.Match("Latte")
		require.NotNil(t, m)
		assert.False(t, m.VariationOK)
	})
}

func TestGroupMatchOrder(t *testing.T) {
	gs, err := CompileGroups(&config.GroupConfig{
		Groups: []config.GroupEntry{
			{BaseName: "First", Keywords: []string{"combo"}},
			{BaseName: "Second", Keywords: []string{"combo"}},
		},
	})
	require.NoError(t, err)

	m := gs.Match("Family Combo")
	require.NotNil(t, m)
	assert.Equal(t, "First", m.BaseName, "groups are tried in configured order; first match wins")
}

func TestGroupMatchNoHit(t *testing.T) {
	gs := testGroupSet(t)
	assert.Nil(t, gs.Match("Hamburger"))
}

func TestGroupMatchBeforeCompilePanics(t *testing.T) {
	var gs *GroupSet
	assert.Panics(t, func() { gs.Match("anything") })

	var zero GroupSet
	assert.Panics(t, func() { zero.Match("anything") })
}

func TestTrimSuffixWord(t *testing.T) {
	assert.Equal(t, "Buffalo ", trimSuffixWord("Buffalo Wings", "wings"))
	assert.Equal(t, "Vanilla ", trimSuffixWord("Vanilla Ice Cream", "ice cream"))
	assert.Equal(t, "Wings Buffalo", trimSuffixWord("Wings Buffalo", "wings"))
	assert.Equal(t, "", trimSuffixWord("Wings", "wings"))
}
