// Package keyboard provides the virtual keyboard layout, its screen geometry
// and hit-testing.
package keyboard

import (
	"errors"
	"fmt"
)

// Special key labels.
const (
	KeySpace = "SPACE"
	KeyEnter = "ENTER"
	KeyClear = "CLEAR"
)

// Layout validation errors.
var (
	ErrEmptyLayout    = errors.New("layout has no rows")
	ErrEmptyRow       = errors.New("layout row has no keys")
	ErrEmptyLabel     = errors.New("key label is empty")
	ErrDuplicateLabel = errors.New("duplicate key label")
)

// Layout is an ordered set of key rows, top to bottom, each left to right.
type Layout struct {
	Rows [][]string
}

// QWERTY is the default layout.
var QWERTY = Layout{
	Rows: [][]string{
		{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
		{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
		{"Z", "X", "C", "V", "B", "N", "M"},
		{KeySpace, KeyEnter, KeyClear},
	},
}

// WidthUnits returns how many base widths a key with the given label spans.
func WidthUnits(label string) int {
	switch label {
	case KeySpace:
		return 4
	case KeyEnter, KeyClear:
		return 2
	default:
		return 1
	}
}

// Validate checks that the layout is drawable and that every label is unique.
func (l Layout) Validate() error {
	if len(l.Rows) == 0 {
		return ErrEmptyLayout
	}

	seen := make(map[string]struct{})
	for i, row := range l.Rows {
		if len(row) == 0 {
			return fmt.Errorf("row %d: %w", i, ErrEmptyRow)
		}
		for j, label := range row {
			if label == "" {
				return fmt.Errorf("row %d key %d: %w", i, j, ErrEmptyLabel)
			}
			if _, ok := seen[label]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
			}
			seen[label] = struct{}{}
		}
	}

	return nil
}

// Len returns the total number of keys in the layout.
func (l Layout) Len() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}
