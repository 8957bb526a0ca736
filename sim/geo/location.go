// Package geo holds the integer grid the simulation moves on.
// Locations are plain values; two locations are equal iff both coordinates match.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a cell on the simulation grid.
type Location struct {
	Row    int
	Column int
}

// String renders the location in its serialized "row,column" form.
func (l Location) String() string {
	return fmt.Sprintf("%d,%d", l.Row, l.Column)
}

// ManhattanDistance returns |Δrow| + |Δcolumn| between origin and destination.
func ManhattanDistance(origin, destination Location) int {
	return abs(origin.Row-destination.Row) + abs(origin.Column-destination.Column)
}

// ParseLocation is the inverse of Location.String.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("location %q: want \"row,column\"", s)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return Location{}, fmt.Errorf("location %q: bad row: %w", s, err)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return Location{}, fmt.Errorf("location %q: bad column: %w", s, err)
	}
	return Location{Row: row, Column: col}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
