package drag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drag/internal/core"
)

type fakeElement struct {
	Listeners
	size      core.Dimension
	transform core.Translation
	markers   map[string]bool
	applied   int
}

func newFakeElement(w, h float64) *fakeElement {
	return &fakeElement{size: core.Dimension{Width: w, Height: h}, markers: map[string]bool{}}
}

func (e *fakeElement) Size() core.Dimension            { return e.size }
func (e *fakeElement) AddMarker(name string)           { e.markers[name] = true }
func (e *fakeElement) RemoveMarker(name string)        { delete(e.markers, name) }
func (e *fakeElement) SetTransform(t core.Translation) { e.transform = t; e.applied++ }

type fakeDocument struct {
	Listeners
	markers map[string]bool
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{markers: map[string]bool{}}
}

func (d *fakeDocument) AddMarker(name string)    { d.markers[name] = true }
func (d *fakeDocument) RemoveMarker(name string) { delete(d.markers, name) }

type fakeBoundary struct {
	bounds core.Bounds
	err    error
	reads  int
}

func (b *fakeBoundary) Bounds() (core.Bounds, error) {
	b.reads++
	return b.bounds, b.err
}

// harness wires a directive to fakes and records drag-end notifications.
type harness struct {
	el    *fakeElement
	doc   *fakeDocument
	d     *Directive
	ended []PointerEvent
}

func newHarness(t *testing.T, cfg Config, opts ...Option) *harness {
	t.Helper()
	h := &harness{el: newFakeElement(50, 50), doc: newFakeDocument()}
	opts = append(opts, OnDragEnd(func(evt PointerEvent) {
		h.ended = append(h.ended, evt)
	}))
	h.d = New(h.el, h.doc, cfg, opts...)
	if err := h.d.Attach(); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	return h
}

func (h *harness) press(x, y, ox, oy float64) {
	h.el.Emit(PointerEvent{Kind: PointerDown, Page: pt(x, y), Offset: pt(ox, oy), Button: ButtonLeft})
	h.doc.Emit(PointerEvent{Kind: PointerDown, Page: pt(x, y), Button: ButtonLeft})
}

func (h *harness) move(x, y float64) {
	h.doc.Emit(PointerEvent{Kind: PointerMove, Page: pt(x, y), Button: ButtonLeft})
}

func (h *harness) release(x, y float64) {
	h.doc.Emit(PointerEvent{Kind: PointerUp, Page: pt(x, y), Button: ButtonLeft, Shift: true})
}

func TestAttachPreconditions(t *testing.T) {
	el := newFakeElement(1, 1)
	doc := newFakeDocument()

	tests := []struct {
		name    string
		d       *Directive
		wantErr error
	}{
		{"no host", New(nil, doc, DefaultConfig()), ErrNoHost},
		{"no document", New(el, nil, DefaultConfig()), ErrNoDocument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.d.Attach(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Attach() = %v, expected %v", err, tc.wantErr)
			}
			if tc.d.Attached() {
				t.Error("Attached() = true after failed Attach")
			}
		})
	}

	d := New(el, doc, DefaultConfig())
	if err := d.Attach(); err != nil {
		t.Fatalf("Attach() failed: %v", err)
	}
	if err := d.Attach(); !errors.Is(err, ErrAttached) {
		t.Errorf("second Attach() = %v, expected ErrAttached", err)
	}
	if n := el.Count(PointerDown); n != 1 {
		t.Errorf("press listeners = %d, expected 1", n)
	}
}

func TestNoOpDrag(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(10, 10, 2, 2)
	h.release(10, 10)

	if got := h.d.Transform(); got != (core.Point{}) {
		t.Errorf("Transform() = %v, expected zero", got)
	}
	if len(h.ended) != 1 {
		t.Fatalf("drag-end notifications = %d, expected 1", len(h.ended))
	}
	if !h.ended[0].Shift || h.ended[0].Page != pt(10, 10) {
		t.Errorf("drag-end event = %+v, expected the release event", h.ended[0])
	}
}

func TestGestureAppliesTransformAndMarkers(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(10, 10, 2, 2)
	if !h.el.markers[ElementMarker] || !h.doc.markers[PageMarker] {
		t.Fatalf("markers after press: element=%v page=%v", h.el.markers, h.doc.markers)
	}
	if h.doc.Count(PointerMove) != 1 || h.doc.Count(PointerUp) != 1 {
		t.Fatalf("document listeners during gesture: move=%d up=%d",
			h.doc.Count(PointerMove), h.doc.Count(PointerUp))
	}

	h.move(13, 11)
	h.move(20, 5)
	want := core.Translation{X: 10, Y: -5}
	if h.el.transform != want {
		t.Errorf("element transform = %v, expected %v", h.el.transform, want)
	}
	if len(h.ended) != 0 {
		t.Error("drag-end emitted before release")
	}

	h.release(20, 5)
	if len(h.el.markers) != 0 || len(h.doc.markers) != 0 {
		t.Errorf("markers after release: element=%v page=%v", h.el.markers, h.doc.markers)
	}
	if h.doc.Count(PointerMove) != 0 || h.doc.Count(PointerUp) != 0 {
		t.Error("document listeners left after release")
	}
	if h.el.Count(PointerDown) != 1 {
		t.Error("press listener removed after release")
	}

	// Moves after release are ignored.
	applied := h.el.applied
	h.move(99, 99)
	if h.el.applied != applied {
		t.Error("transform applied after release")
	}
}

func TestDeltaAccumulationUnbounded(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(0, 0, 0, 0)
	path := []core.Point{pt(3, 4), pt(-7, 8), pt(100, -250), pt(42, 17)}
	for _, p := range path {
		h.move(p.X, p.Y)
	}
	h.release(42, 17)

	if got := h.d.Transform(); got != pt(42, 17) {
		t.Errorf("Transform() = %v, expected (42, 17)", got)
	}
}

func TestCrossGestureAccumulation(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(0, 0, 0, 0)
	h.move(10, 10)
	h.release(10, 10)

	h.press(100, 100, 0, 0)
	h.move(110, 110)
	h.release(110, 110)

	if got := h.d.Transform(); got != pt(20, 20) {
		t.Errorf("Transform() = %v, expected (20, 20)", got)
	}
	if len(h.ended) != 2 {
		t.Errorf("drag-end notifications = %d, expected 2", len(h.ended))
	}
}

func TestDetachMidGesture(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := newHarness(t, DefaultConfig(), WithLogger(logger))

	h.press(0, 0, 0, 0)
	h.move(5, 5)
	h.d.Detach()

	if h.doc.Count(PointerMove) != 0 || h.doc.Count(PointerUp) != 0 || h.el.Count(PointerDown) != 0 {
		t.Fatal("listeners left after Detach")
	}

	h.move(50, 50)
	h.release(50, 50)
	h.press(1, 1, 0, 0)

	if len(h.ended) != 0 {
		t.Errorf("drag-end notifications = %d, expected 0", len(h.ended))
	}
	if got := h.d.Transform(); got != pt(5, 5) {
		t.Errorf("Transform() = %v, expected (5, 5)", got)
	}
	if h.d.Dragging() || h.d.Attached() {
		t.Error("directive still dragging or attached after Detach")
	}
	if len(h.el.markers) != 0 || len(h.doc.markers) != 0 {
		t.Error("markers left after Detach")
	}
	if !strings.Contains(buf.String(), "drag detached") {
		t.Errorf("expected detach to be logged, got %q", buf.String())
	}

	// Detach is idempotent.
	h.d.Detach()
}

func TestReattachKeepsTransform(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.press(0, 0, 0, 0)
	h.move(3, 3)
	h.release(3, 3)
	h.d.Detach()

	if err := h.d.Attach(); err != nil {
		t.Fatalf("re-Attach() failed: %v", err)
	}
	h.press(0, 0, 0, 0)
	h.move(1, 2)
	h.release(1, 2)

	if got := h.d.Transform(); got != pt(4, 5) {
		t.Errorf("Transform() = %v, expected (4, 5)", got)
	}
}

func TestBoundaryClampThroughDirective(t *testing.T) {
	b := &fakeBoundary{bounds: core.Bounds{Left: 0, Top: 0, Right: 200, Bottom: 200}}
	h := newHarness(t, DefaultConfig(), WithBoundary(b))

	// Element of 50x50 at (0,0), pressed at its centre.
	h.press(25, 25, 25, 25)
	h.move(15, 25)
	if got := h.d.Transform(); got != (core.Point{}) {
		t.Errorf("Transform() = %v, expected left edge pinned at 0", got)
	}
	h.release(15, 25)

	if b.reads != 1 {
		t.Errorf("boundary reads = %d, expected 1", b.reads)
	}
}

func TestBoundaryReadFreshEachGesture(t *testing.T) {
	b := &fakeBoundary{bounds: core.Bounds{Left: 0, Top: 0, Right: 100, Bottom: 100}}
	h := newHarness(t, DefaultConfig(), WithBoundary(b))

	h.press(25, 25, 25, 25)
	h.move(500, 25)
	h.release(500, 25)
	if got := h.d.Transform(); got != pt(50, 0) {
		t.Fatalf("Transform() = %v, expected (50, 0)", got)
	}

	// Grow the boundary between gestures. Element now sits at x=50.
	b.bounds.Right = 300
	h.press(75, 25, 25, 25)
	h.move(1000, 25)
	h.release(1000, 25)
	if got := h.d.Transform(); got != pt(250, 0) {
		t.Errorf("Transform() = %v, expected (250, 0)", got)
	}
	if b.reads != 2 {
		t.Errorf("boundary reads = %d, expected 2", b.reads)
	}
}

func TestBoundaryFailureMeansUnconstrained(t *testing.T) {
	b := &fakeBoundary{
		bounds: core.Bounds{Left: 0, Top: 0, Right: 10, Bottom: 10},
		err:    errors.New("detached"),
	}
	h := newHarness(t, DefaultConfig(), WithBoundary(b))

	h.press(5, 5, 0, 0)
	h.move(500, 500)
	h.release(500, 500)

	if got := h.d.Transform(); got != pt(495, 495) {
		t.Errorf("Transform() = %v, expected unclamped (495, 495)", got)
	}
	if len(h.ended) != 1 {
		t.Errorf("drag-end notifications = %d, expected 1", len(h.ended))
	}
}

func TestSetBoundaryTakesEffectNextGesture(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(25, 25, 25, 25)
	h.d.SetBoundary(&fakeBoundary{bounds: core.Bounds{Left: 0, Top: 0, Right: 60, Bottom: 60}})
	h.move(125, 25)
	h.release(125, 25)
	if got := h.d.Transform(); got != pt(100, 0) {
		t.Fatalf("Transform() = %v, expected unclamped (100, 0)", got)
	}

	// Element now spans x 100..150, outside the new boundary; dragging
	// left pins it at the right edge.
	h.press(125, 25, 25, 25)
	h.move(120, 25)
	h.release(120, 25)
	if got := h.d.Transform(); got != pt(10, 0) {
		t.Errorf("Transform() = %v, expected (10, 0)", got)
	}

	h.d.SetBoundary(nil)
	h.press(35, 25, 25, 25)
	h.move(-1000, 25)
	h.release(-1000, 25)
	if got := h.d.Transform(); got != pt(-1025, 0) {
		t.Errorf("Transform() = %v, expected (-1025, 0)", got)
	}
}

func TestPressWhileActiveIgnored(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	h.press(0, 0, 0, 0)
	h.move(5, 0)
	h.press(50, 50, 0, 0)
	h.move(6, 0)
	h.release(6, 0)

	if got := h.d.Transform(); got != pt(6, 0) {
		t.Errorf("Transform() = %v, expected (6, 0)", got)
	}
	if len(h.ended) != 1 {
		t.Errorf("drag-end notifications = %d, expected 1", len(h.ended))
	}
}

func TestCustomMarkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ElementMarker = "lifted"
	cfg.PageMarker = ""
	h := newHarness(t, cfg)

	h.press(0, 0, 0, 0)
	if !h.el.markers["lifted"] {
		t.Error("custom element marker missing")
	}
	if len(h.doc.markers) != 0 {
		t.Errorf("page markers = %v, expected none", h.doc.markers)
	}
	h.release(0, 0)
	if h.el.markers["lifted"] {
		t.Error("custom element marker left after release")
	}
}
