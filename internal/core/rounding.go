package core

import (
	"fmt"
	"math"
	"strings"
)

// Rounding selects how boundary geometry is snapped before clamping.
// Pointer coordinates are never rounded.
type Rounding int

const (
	RoundNone    Rounding = iota // keep fractional edges
	RoundCeil                    // round every edge up
	RoundFloor                   // round every edge down
	RoundNearest                 // round half away from zero
)

// String returns the configuration name of the policy.
func (r Rounding) String() string {
	switch r {
	case RoundNone:
		return "none"
	case RoundCeil:
		return "ceil"
	case RoundFloor:
		return "floor"
	case RoundNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// Apply rounds v according to the policy.
func (r Rounding) Apply(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	switch r {
	case RoundCeil:
		return math.Ceil(v)
	case RoundFloor:
		return math.Floor(v)
	case RoundNearest:
		return math.Round(v)
	default:
		return v
	}
}

// ParseRounding maps a configuration name to a policy.
// An empty name selects RoundNone.
func ParseRounding(name string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return RoundNone, nil
	case "ceil":
		return RoundCeil, nil
	case "floor":
		return RoundFloor, nil
	case "nearest", "round":
		return RoundNearest, nil
	default:
		return RoundNone, fmt.Errorf("core: unknown rounding policy %q", name)
	}
}
