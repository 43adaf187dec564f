package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-drag/internal/drag"
)

//go:embed defaults/drag.yaml
var defaultDragYAML []byte

// DefaultDragConfig returns the default configuration. It matches the
// embedded defaults/drag.yaml and is used when that cannot be parsed.
func DefaultDragConfig() DragConfig {
	return DragConfig{
		Resolver: ResolverConfig{
			BoundaryClamping: true,
			OffsetCorrection: true,
			BoundaryRounding: "none",
		},
		Markers: MarkerConfig{
			Element: drag.ElementMarker,
			Page:    drag.PageMarker,
		},
		Playground: PlaygroundConfig{
			Element: ElementConfig{
				X:      4,
				Y:      3,
				Width:  14,
				Height: 5,
				Label:  "drag me",
			},
			Boundary: BoundaryConfig{
				Enabled: true,
				Margin:  1,
			},
			FlashSeconds: 2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDragYAML
}
