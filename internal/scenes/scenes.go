// Package scenes registers the built-in playground scenes.
package scenes

import (
	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/registry"
)

func init() {
	registry.Register("boxed", func() registry.Scene { return Boxed{} })
	registry.Register("free", func() registry.Scene { return Free{} })
	registry.Register("classic", func() registry.Scene { return Classic{} })
}

// Boxed confines the box to the frame using its real corner.
type Boxed struct{}

func (Boxed) ID() string    { return "boxed" }
func (Boxed) Title() string { return "Boxed (clamped to frame)" }

func (Boxed) Apply(cfg *config.DragConfig) {
	cfg.Playground.Boundary.Enabled = true
	cfg.Resolver.BoundaryClamping = true
	cfg.Resolver.OffsetCorrection = true
}

// Free has no frame; the box can be dragged off screen.
type Free struct{}

func (Free) ID() string    { return "free" }
func (Free) Title() string { return "Free (no boundary)" }

func (Free) Apply(cfg *config.DragConfig) {
	cfg.Playground.Boundary.Enabled = false
}

// Classic draws the frame but only accumulates pointer deltas.
type Classic struct{}

func (Classic) ID() string    { return "classic" }
func (Classic) Title() string { return "Classic (delta only, no clamp)" }

func (Classic) Apply(cfg *config.DragConfig) {
	cfg.Playground.Boundary.Enabled = true
	cfg.Resolver.BoundaryClamping = false
	cfg.Resolver.OffsetCorrection = false
}
