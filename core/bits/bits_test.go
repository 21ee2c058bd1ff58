package bits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tt := []struct {
		name  string
		r     rune
		valid bool
		value int
	}{
		{"zero", '0', true, 0},
		{"one", '1', true, 1},
		{"nine", '9', true, 9},
		{"letter", 'x', false, 0},
		{"space", ' ', false, 0},
		{"non-ascii digit", '٣', false, 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d := Parse(tc.r)
			assert.Equal(t, tc.valid, d.Valid())
			assert.Equal(t, tc.value, d.Value())
			assert.Equal(t, tc.r, d.Rune())
			if tc.valid {
				assert.Equal(t, float64(tc.value), d.Float())
			} else {
				assert.True(t, math.IsNaN(d.Float()))
			}
		})
	}
}

func TestParseStream(t *testing.T) {
	s := ParseStream("10a1")

	assert.Len(t, s, 4)
	assert.Equal(t, "10a1", s.String())
	assert.Equal(t, 2, s.FirstInvalid())

	d, ok := s.At(1)
	assert.True(t, ok)
	assert.Equal(t, 0, d.Value())

	_, ok = s.At(4)
	assert.False(t, ok)
	_, ok = s.At(-1)
	assert.False(t, ok)
}

func TestParseStreamCountsRunes(t *testing.T) {
	s := ParseStream("1é0")

	assert.Len(t, s, 3)
	assert.Equal(t, 'é', s[1].Rune())
}

func TestEmptyStream(t *testing.T) {
	s := ParseStream("")

	assert.Empty(t, s)
	assert.Equal(t, -1, s.FirstInvalid())
}
