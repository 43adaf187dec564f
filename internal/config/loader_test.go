package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-drag/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg DragConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultDragConfig() {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, DefaultDragConfig())
	}
}

func TestLoadDragCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.yaml")
	data := []byte("resolver:\n  offset_correction: false\n  boundary_rounding: ceil\nplayground:\n  element:\n    label: hi\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDrag(path)
	if err != nil {
		t.Fatalf("LoadDrag() failed: %v", err)
	}
	if cfg.Resolver.OffsetCorrection {
		t.Error("offset_correction override was not applied")
	}
	if !cfg.Resolver.BoundaryClamping {
		t.Error("unspecified boundary_clamping should keep its default")
	}
	if cfg.Playground.Element.Label != "hi" || cfg.Playground.Element.Width != 14 {
		t.Errorf("element = %+v", cfg.Playground.Element)
	}

	opts, err := cfg.ResolverOptions()
	if err != nil {
		t.Fatalf("ResolverOptions() failed: %v", err)
	}
	if opts.Rounding != core.RoundCeil || opts.OffsetCorrection {
		t.Errorf("ResolverOptions() = %+v", opts)
	}
}

func TestLoadDragCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDrag(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("resolver:\n  boundary_rounding: sideways\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDrag(bad)
	if err == nil || !strings.Contains(err.Error(), "sideways") {
		t.Errorf("LoadDrag() error = %v, expected rounding error", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultDragConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg.Playground.Element.Width = 0
	cfg.Playground.Boundary.Margin = -2
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"element size", "margin"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDirectiveConfig(t *testing.T) {
	cfg := DefaultDragConfig()
	cfg.Markers.Page = ""
	dc, err := cfg.Directive()
	if err != nil {
		t.Fatalf("Directive() failed: %v", err)
	}
	if dc.ElementMarker != "nui-drag-active" || dc.PageMarker != "" {
		t.Errorf("markers = %q/%q", dc.ElementMarker, dc.PageMarker)
	}
	if !dc.Resolver.BoundaryClamping || !dc.Resolver.OffsetCorrection {
		t.Errorf("resolver = %+v", dc.Resolver)
	}
}
