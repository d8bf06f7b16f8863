package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "buffalo wings", Fold("  Buffalo Wings "))
	assert.Equal(t, "", Fold("   "))
}

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accented", "Bogotá", "Bogota"},
		{"mixed", "Crème Brûlée", "Creme Brulee"},
		{"plain ascii unchanged", "Hamburger", "Hamburger"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDiacritics(tt.input))
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"punctuation collapsed", "Wings - Buffalo", "wings buffalo"},
		{"diacritics stripped", "Café au Lait", "cafe au lait"},
		{"multiple separators", "Mac & Cheese!!", "mac cheese"},
		{"leading trailing junk", "--Fries--", "fries"},
		{"already clean", "hamburger", "hamburger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.input))
		})
	}
}

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"emoji stripped", "🍔 Burgers", "burgers"},
		{"punctuation stripped", "Sides!", "sides"},
		{"spaces collapsed", "  Hot   Drinks ", "hot drinks"},
		{"digits kept", "Combo 2", "combo 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryKey(tt.input))
		})
	}
}
