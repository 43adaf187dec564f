// Package config provides YAML-based configuration loading for the drag
// directive and the terminal playground that hosts it.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/drag"
)

// DragConfig contains all configuration for a playground session.
type DragConfig struct {
	Resolver   ResolverConfig   `yaml:"resolver"`
	Markers    MarkerConfig     `yaml:"markers"`
	Playground PlaygroundConfig `yaml:"playground"`
}

// ResolverConfig selects the position resolver's behaviour.
type ResolverConfig struct {
	BoundaryClamping bool   `yaml:"boundary_clamping"`
	OffsetCorrection bool   `yaml:"offset_correction"`
	BoundaryRounding string `yaml:"boundary_rounding"` // "none", "ceil", "floor" or "nearest"
}

// MarkerConfig names the presentation markers toggled during a drag.
type MarkerConfig struct {
	Element string `yaml:"element"`
	Page    string `yaml:"page"` // Empty disables the page marker
}

// PlaygroundConfig lays out the playground screen.
type PlaygroundConfig struct {
	Element      ElementConfig  `yaml:"element"`
	Boundary     BoundaryConfig `yaml:"boundary"`
	FlashSeconds float64        `yaml:"flash_seconds"` // How long the drag-end message stays up
}

// ElementConfig places the draggable box before any drag.
type ElementConfig struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Label  string `yaml:"label"`
}

// BoundaryConfig describes the frame the box is confined to.
// The frame fills the screen above the status lines, inset by Margin.
type BoundaryConfig struct {
	Enabled bool `yaml:"enabled"`
	Margin  int  `yaml:"margin"`
}

// Validate reports configuration values the playground cannot use.
func (c DragConfig) Validate() error {
	var errs []error
	if _, err := core.ParseRounding(c.Resolver.BoundaryRounding); err != nil {
		errs = append(errs, err)
	}
	if c.Playground.Element.Width < 1 || c.Playground.Element.Height < 1 {
		errs = append(errs, fmt.Errorf("config: element size %dx%d must be at least 1x1",
			c.Playground.Element.Width, c.Playground.Element.Height))
	}
	if c.Playground.Boundary.Margin < 0 {
		errs = append(errs, fmt.Errorf("config: boundary margin %d is negative", c.Playground.Boundary.Margin))
	}
	if c.Playground.FlashSeconds < 0 {
		errs = append(errs, fmt.Errorf("config: flash_seconds %v is negative", c.Playground.FlashSeconds))
	}
	return errors.Join(errs...)
}

// ResolverOptions converts the resolver section for the drag package.
func (c DragConfig) ResolverOptions() (drag.ResolverOptions, error) {
	rounding, err := core.ParseRounding(c.Resolver.BoundaryRounding)
	if err != nil {
		return drag.ResolverOptions{}, err
	}
	return drag.ResolverOptions{
		BoundaryClamping: c.Resolver.BoundaryClamping,
		OffsetCorrection: c.Resolver.OffsetCorrection,
		Rounding:         rounding,
	}, nil
}

// Directive converts the configuration into a drag.Config.
func (c DragConfig) Directive() (drag.Config, error) {
	opts, err := c.ResolverOptions()
	if err != nil {
		return drag.Config{}, err
	}
	return drag.Config{
		Resolver:      opts,
		ElementMarker: c.Markers.Element,
		PageMarker:    c.Markers.Page,
	}, nil
}
