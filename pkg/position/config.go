package position

import (
	"errors"
	"fmt"
)

// Align selects which edge of a column's stacked block sits on the base
// line.
type Align string

const (
	AlignTop    Align = "top"
	AlignCenter Align = "center"
	AlignBottom Align = "bottom"
)

// Aligns lists the accepted alignment modes.
var Aligns = []Align{AlignTop, AlignCenter, AlignBottom}

// ParseAlign converts a flag or config value to an [Align].
func ParseAlign(s string) (Align, error) {
	switch a := Align(s); a {
	case AlignTop, AlignCenter, AlignBottom:
		return a, nil
	}
	return "", fmt.Errorf("unknown alignment %q (want top, center or bottom)", s)
}

// Defaults for [Config].
const (
	DefaultGapX             = 100
	DefaultGapY             = 50
	DefaultAdjoinDistance   = 2
	DefaultOutlierTopN      = 2
	DefaultOutlierThreshold = 2
	DefaultMinWidth         = 150
	DefaultMaxWidth         = 450
)

// Config holds every tunable of the position stage. It is passed by value
// to each call; there is no package-level state.
type Config struct {
	GapX float64 // Horizontal gap between columns
	GapY float64 // Vertical gap between stacked nodes

	// AdjoinDistance bounds which predecessors pull on a node: only those
	// whose column is fewer than AdjoinDistance columns to the left.
	AdjoinDistance int

	Align Align
	BaseX float64 // x of the first column
	BaseY float64 // Line the column block is aligned on

	// ExcludeOutliers drops up to OutlierTopN unusually wide nodes before
	// the column width is taken.
	ExcludeOutliers  bool
	OutlierTopN      int
	OutlierThreshold float64

	// SizeAlign forces every node in a column to the column width, clamped
	// to [MinWidth, MaxWidth].
	SizeAlign bool
	MinWidth  float64
	MaxWidth  float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		GapX:             DefaultGapX,
		GapY:             DefaultGapY,
		AdjoinDistance:   DefaultAdjoinDistance,
		Align:            AlignCenter,
		ExcludeOutliers:  true,
		OutlierTopN:      DefaultOutlierTopN,
		OutlierThreshold: DefaultOutlierThreshold,
		SizeAlign:        true,
		MinWidth:         DefaultMinWidth,
		MaxWidth:         DefaultMaxWidth,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.GapX < 0 || c.GapY < 0:
		return errors.New("gaps must not be negative")
	case c.AdjoinDistance < 1:
		return fmt.Errorf("adjoin distance must be at least 1, got %d", c.AdjoinDistance)
	case c.OutlierTopN < 0:
		return fmt.Errorf("outlier top-n must not be negative, got %d", c.OutlierTopN)
	case c.ExcludeOutliers && c.OutlierThreshold <= 0:
		return fmt.Errorf("outlier threshold must be positive, got %g", c.OutlierThreshold)
	case c.SizeAlign && c.MinWidth > c.MaxWidth:
		return fmt.Errorf("min width %g exceeds max width %g", c.MinWidth, c.MaxWidth)
	}
	if _, err := ParseAlign(string(c.Align)); err != nil {
		return err
	}
	return nil
}
