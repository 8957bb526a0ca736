package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Location
		want int
	}{
		{"same cell", Location{1, 2}, Location{1, 2}, 0},
		{"one column", Location{1, 2}, Location{1, 3}, 1},
		{"both axes", Location{0, 0}, Location{3, 4}, 7},
		{"negative coordinates", Location{-2, 5}, Location{1, -1}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ManhattanDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, ManhattanDistance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestLocation_String(t *testing.T) {
	assert.Equal(t, "1,2", Location{Row: 1, Column: 2}.String())
	assert.Equal(t, "-3,0", Location{Row: -3, Column: 0}.String())
}

func TestParseLocation_RoundTrip(t *testing.T) {
	for _, loc := range []Location{
		{0, 0}, {1, 2}, {-7, 12}, {math.MaxInt, math.MinInt},
	} {
		got, err := ParseLocation(loc.String())
		require.NoError(t, err)
		assert.Equal(t, loc, got)
	}
}

func TestParseLocation_Rejects(t *testing.T) {
	for _, in := range []string{"", "1", "1,2,3", "a,2", "1,b", "1, 2", " 1,2"} {
		_, err := ParseLocation(in)
		assert.Error(t, err, "input %q", in)
	}
}
