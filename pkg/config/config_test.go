package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/errors"
)

func TestParseLocations(t *testing.T) {
	t.Run("valid yaml", func(t *testing.T) {
		cfg, err := ParseLocations([]byte(`
locations:
  - name: Downtown
    toast_id: t-1
    doordash_id: dd-1
    square_id: sq-1
`))
		require.NoError(t, err)
		require.Len(t, cfg.Locations, 1)
		assert.Equal(t, "Downtown", cfg.Locations[0].Name)
		assert.Equal(t, "sq-1", cfg.Locations[0].SquareID)
	})

	t.Run("valid json", func(t *testing.T) {
		cfg, err := ParseLocations([]byte(`{"locations":[{"name":"Uptown","square_id":"sq-2"}]}`))
		require.NoError(t, err)
		assert.Equal(t, "Uptown", cfg.Locations[0].Name)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := ParseLocations([]byte(`locations: []`))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "locations")
	})

	t.Run("missing name rejected with index", func(t *testing.T) {
		_, err := ParseLocations([]byte(`
locations:
  - name: Downtown
  - toast_id: t-2
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locations[1].name")
	})
}

func TestParsePatterns(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := ParsePatterns([]byte(`
patterns:
  - name: size-suffix
    regex: '\s*\((lg|sm|med)\)$'
    type: size
    format: '{1|size_expand}'
abbreviations:
  pc: piece
`))
		require.NoError(t, err)
		require.Len(t, cfg.Patterns, 1)
		assert.Equal(t, "size", cfg.Patterns[0].Type)
		assert.Equal(t, "piece", cfg.Abbreviations["pc"])
	})

	t.Run("bad type rejected", func(t *testing.T) {
		_, err := ParsePatterns([]byte(`
patterns:
  - name: bad
    regex: 'x'
    type: flavor
    format: '{1}'
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "patterns[0].type")
	})

	t.Run("missing format rejected", func(t *testing.T) {
		_, err := ParsePatterns([]byte(`
patterns:
  - name: bad
    regex: 'x'
    type: size
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "patterns[0].format")
	})
}

func TestParseGroups(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := ParseGroups([]byte(`
groups:
  - base_name: Wings
    suffix: wings
  - base_name: Coffee
    keywords: [espresso, latte]
`))
		require.NoError(t, err)
		require.Len(t, cfg.Groups, 2)
		assert.Equal(t, "wings", cfg.Groups[0].Suffix)
		assert.Equal(t, []string{"espresso", "latte"}, cfg.Groups[1].Keywords)
	})

	t.Run("group without suffix or keywords rejected", func(t *testing.T) {
		_, err := ParseGroups([]byte(`
groups:
  - base_name: Wings
    suffix: wings
  - base_name: Orphan
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "groups[1]")
		assert.Contains(t, err.Error(), "suffix or keywords")
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := ParseGroups([]byte(`groups: [`))
		require.Error(t, err)
	})
}
