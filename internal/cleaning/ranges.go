package cleaning

import "math"

// Bounds is the physically plausible interval for one measurement channel.
// Either side may be infinite for channels bounded in only one direction.
type Bounds struct {
	Lower float64
	Upper float64
}

// Contains reports whether v lies inside the closed interval.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Lower && v <= b.Upper
}

// IsValid reports whether the bounds are ordered.
func (b Bounds) IsValid() bool {
	return b.Lower <= b.Upper
}

// RangeTable maps a channel name to its valid range. Channels absent from
// the table pass through the filter unchanged.
type RangeTable map[string]Bounds

// DefaultRangeTable returns the valid ranges for the standard channels of a
// Kansas Geological Survey well log. Resistivity channels are bounded above
// only.
func DefaultRangeTable() RangeTable {
	return RangeTable{
		"CNPOR": {Lower: -15, Upper: 50},
		"GR":    {Lower: 0, Upper: 250},
		"RHOB":  {Lower: 1, Upper: 3},
		"DT":    {Lower: 30, Upper: 140},
		"SPOR":  {Lower: -10, Upper: 50},
		"RILM":  {Lower: math.Inf(-1), Upper: 1000},
		"RILD":  {Lower: math.Inf(-1), Upper: 1000},
		"RLL3":  {Lower: math.Inf(-1), Upper: 1000},
	}
}
