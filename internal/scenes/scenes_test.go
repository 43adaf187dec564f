package scenes

import (
	"testing"

	"github.com/vovakirdan/tui-drag/internal/config"
	"github.com/vovakirdan/tui-drag/internal/registry"
)

func TestBuiltinScenes(t *testing.T) {
	tests := []struct {
		id        string
		boundary  bool
		clamping  bool
		offsetFix bool
	}{
		{"boxed", true, true, true},
		{"free", false, true, true},
		{"classic", true, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			scene, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tc.id, err)
			}
			if scene.ID() != tc.id || scene.Title() == "" {
				t.Errorf("scene metadata = %q/%q", scene.ID(), scene.Title())
			}

			cfg := config.DefaultDragConfig()
			scene.Apply(&cfg)
			if cfg.Playground.Boundary.Enabled != tc.boundary {
				t.Errorf("boundary enabled = %v, expected %v", cfg.Playground.Boundary.Enabled, tc.boundary)
			}
			if cfg.Resolver.BoundaryClamping != tc.clamping {
				t.Errorf("clamping = %v, expected %v", cfg.Resolver.BoundaryClamping, tc.clamping)
			}
			if cfg.Resolver.OffsetCorrection != tc.offsetFix {
				t.Errorf("offset correction = %v, expected %v", cfg.Resolver.OffsetCorrection, tc.offsetFix)
			}
		})
	}
}
