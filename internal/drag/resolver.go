package drag

import "github.com/vovakirdan/tui-drag/internal/core"

// ResolverOptions selects between the resolver's two algorithms.
//
// With BoundaryClamping enabled and a boundary supplied, each move is clamped
// so the element's box stays inside the boundary. OffsetCorrection makes the
// clamp use the element's real top-left corner (pointer minus the press
// offset); without it the pointer itself is treated as the top-left corner.
// With clamping disabled, moves are plain delta accumulation.
type ResolverOptions struct {
	BoundaryClamping bool
	OffsetCorrection bool

	// Rounding is applied to boundary geometry only.
	Rounding core.Rounding
}

// DefaultResolverOptions enables clamping and offset correction.
func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{
		BoundaryClamping: true,
		OffsetCorrection: true,
		Rounding:         core.RoundNone,
	}
}

// Resolver turns pointer samples into a cumulative element translation.
// It holds the state of one drag session at a time; the translation carries
// over from one session to the next.
type Resolver struct {
	opts ResolverOptions

	active    bool
	clamp     bool
	pickup    core.Point
	offset    core.Point
	size      core.Dimension
	bounds    core.Bounds
	transform core.Point
}

// NewResolver creates a resolver with a zero translation.
func NewResolver(opts ResolverOptions) *Resolver {
	return &Resolver{opts: opts, bounds: core.Unbounded()}
}

// Options returns the options the next session will use.
func (r *Resolver) Options() ResolverOptions {
	return r.opts
}

// SetOptions replaces the options. A session in progress keeps the
// behaviour it started with.
func (r *Resolver) SetOptions(opts ResolverOptions) {
	r.opts = opts
}

// Active reports whether a session is in progress.
func (r *Resolver) Active() bool {
	return r.active
}

// Transform returns the cumulative translation.
func (r *Resolver) Transform() core.Point {
	return r.transform
}

// Clamping reports whether the current, or most recent, session clamps to
// a boundary.
func (r *Resolver) Clamping() bool {
	return r.clamp
}

// Begin starts a session at the press. bounds is nil when no boundary is
// available for this gesture.
func (r *Resolver) Begin(press PointerEvent, size core.Dimension, bounds *core.Bounds) {
	r.active = true
	r.pickup = press.Page
	r.clamp = r.opts.BoundaryClamping && bounds != nil

	r.offset = core.Point{}
	r.size = core.Dimension{}
	r.bounds = core.Unbounded()
	if !r.clamp {
		return
	}
	if r.opts.OffsetCorrection {
		r.offset = press.Offset
	}
	r.size = size
	r.bounds = bounds.Round(r.opts.Rounding)
}

// Move advances the session to pointer position p and returns the new
// cumulative translation. It does nothing outside a session.
func (r *Resolver) Move(p core.Point) core.Point {
	if !r.active {
		return r.transform
	}
	if r.clamp {
		p = r.clampPoint(p)
	}
	r.transform = r.transform.Add(p.Sub(r.pickup))
	r.pickup = p
	return r.transform
}

// clampPoint adjusts p so the element box lands exactly on any boundary edge
// it would otherwise cross. Left and right are checked before top and bottom;
// when the element is larger than the boundary the left and top edges win.
func (r *Resolver) clampPoint(p core.Point) core.Point {
	left := p.X - r.offset.X
	top := p.Y - r.offset.Y
	right := left + r.size.Width
	bottom := top + r.size.Height

	if left < r.bounds.Left {
		p.X = r.bounds.Left + r.offset.X
	} else if right > r.bounds.Right {
		p.X = r.bounds.Right - r.size.Width + r.offset.X
	}

	if top < r.bounds.Top {
		p.Y = r.bounds.Top + r.offset.Y
	} else if bottom > r.bounds.Bottom {
		p.Y = r.bounds.Bottom - r.size.Height + r.offset.Y
	}
	return p
}

// End closes the session. The translation is kept.
func (r *Resolver) End() {
	r.active = false
}
