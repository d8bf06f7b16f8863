package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCentsFromDollars(t *testing.T) {
	tests := []struct {
		name    string
		dollars float64
		want    int64
	}{
		{"exact", 12.34, 1234},
		{"zero", 0, 0},
		{"rounds up", 0.005, 1},
		{"float drift", 19.99, 1999},
		{"three decimals", 1.005, 101},
		{"negative", -4.25, -425},
		{"negative rounds away from zero", -0.005, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CentsFromDollars(tt.dollars))
		})
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestSourceValid(t *testing.T) {
	assert.True(t, SourceToast.Valid())
	assert.True(t, SourceDoorDash.Valid())
	assert.True(t, SourceSquare.Valid())
	assert.False(t, Source("grubhub").Valid())
}

func TestBundleCounts(t *testing.T) {
	b := &Bundle{
		Products: []Product{{ID: "p1"}, {ID: "p2"}},
		Orders:   []Order{{ID: "o1"}},
	}
	counts := b.Counts()
	assert.Equal(t, 2, counts["products"])
	assert.Equal(t, 1, counts["orders"])
	assert.Equal(t, 0, counts["payments"])
}
