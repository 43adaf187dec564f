package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-drag/internal/core"
	"github.com/vovakirdan/tui-drag/internal/drag"
)

// ErrDetached is returned by Frame.Bounds when the frame is hidden or has
// no interior on the current screen.
var ErrDetached = errors.New("tui: frame is not laid out")

// Box is a draggable element drawn as a bordered rectangle. Its laid-out
// position never changes; dragging only changes its translation.
type Box struct {
	drag.Listeners

	base        core.Rect
	label       string
	translation core.Translation
	markers     map[string]bool
}

// NewBox creates a box laid out at base.
func NewBox(base core.Rect, label string) *Box {
	return &Box{base: base, label: label, markers: make(map[string]bool)}
}

// Size returns the laid-out size of the box.
func (b *Box) Size() core.Dimension {
	return b.base.Dimension()
}

// SetTransform replaces the box's translation.
func (b *Box) SetTransform(t core.Translation) {
	b.translation = t
}

// Transform returns the box's translation.
func (b *Box) Transform() core.Translation {
	return b.translation
}

// Rect returns the on-screen cells the box covers.
func (b *Box) Rect() core.Rect {
	return b.base.Offset(core.CellIndex(b.translation.X), core.CellIndex(b.translation.Y))
}

// Label returns the text drawn inside the box.
func (b *Box) Label() string {
	return b.label
}

// AddMarker adds a presentation marker.
func (b *Box) AddMarker(name string) {
	b.markers[name] = true
}

// RemoveMarker removes a presentation marker.
func (b *Box) RemoveMarker(name string) {
	delete(b.markers, name)
}

// HasMarker reports whether the marker is present.
func (b *Box) HasMarker(name string) bool {
	return b.markers[name]
}

// Frame is a bordered region whose interior serves as a drag boundary.
type Frame struct {
	rect    core.Rect
	visible bool
}

// NewFrame creates a visible frame covering rect.
func NewFrame(rect core.Rect) *Frame {
	return &Frame{rect: rect, visible: true}
}

// Rect returns the outer rectangle including the border.
func (f *Frame) Rect() core.Rect {
	return f.rect
}

// SetRect lays the frame out again, e.g. after a resize.
func (f *Frame) SetRect(r core.Rect) {
	f.rect = r
}

// Inner returns the area inside the border.
func (f *Frame) Inner() core.Rect {
	return f.rect.Inset(1)
}

// Visible reports whether the frame is drawn.
func (f *Frame) Visible() bool {
	return f.visible
}

// SetVisible shows or hides the frame.
func (f *Frame) SetVisible(v bool) {
	f.visible = v
}

// Bounds returns the frame interior in page coordinates.
func (f *Frame) Bounds() (core.Bounds, error) {
	inner := f.Inner()
	if !f.visible || inner.Empty() {
		return core.Bounds{}, ErrDetached
	}
	return inner.Bounds(), nil
}

// Page is the document of a terminal screen. It turns Bubble Tea mouse
// messages into pointer events: presses go to the topmost box under the
// pointer and then to the page; moves and releases go to the page only.
type Page struct {
	drag.Listeners

	boxes   []*Box
	markers map[string]bool
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{markers: make(map[string]bool)}
}

// Add places a box on top of the page.
func (p *Page) Add(b *Box) {
	p.boxes = append(p.boxes, b)
}

// AddMarker adds a page-level presentation marker.
func (p *Page) AddMarker(name string) {
	p.markers[name] = true
}

// RemoveMarker removes a page-level presentation marker.
func (p *Page) RemoveMarker(name string) {
	delete(p.markers, name)
}

// HasMarker reports whether the page-level marker is present.
func (p *Page) HasMarker(name string) bool {
	return p.markers[name]
}

// HitTest returns the topmost box covering cell (x, y), or nil.
func (p *Page) HitTest(x, y int) *Box {
	for i := len(p.boxes) - 1; i >= 0; i-- {
		if p.boxes[i].Rect().Contains(x, y) {
			return p.boxes[i]
		}
	}
	return nil
}

// Dispatch delivers a mouse message. It returns false for messages that
// are not pointer events (wheel scrolling, unknown actions).
func (p *Page) Dispatch(msg tea.MouseMsg) bool {
	evt, ok := pointerEvent(tea.MouseEvent(msg))
	if !ok {
		return false
	}

	if evt.Kind == drag.PointerDown {
		if hit := p.HitTest(msg.X, msg.Y); hit != nil {
			r := hit.Rect()
			evt.Offset = core.Point{X: float64(msg.X - r.X), Y: float64(msg.Y - r.Y)}
			hit.Emit(evt)
		}
	}
	p.Emit(evt)
	return true
}

// pointerEvent converts a Bubble Tea mouse event.
func pointerEvent(ev tea.MouseEvent) (drag.PointerEvent, bool) {
	if ev.IsWheel() {
		return drag.PointerEvent{}, false
	}

	var kind drag.EventKind
	switch ev.Action {
	case tea.MouseActionPress:
		kind = drag.PointerDown
	case tea.MouseActionMotion:
		kind = drag.PointerMove
	case tea.MouseActionRelease:
		kind = drag.PointerUp
	default:
		return drag.PointerEvent{}, false
	}

	return drag.PointerEvent{
		Kind:   kind,
		Page:   core.Point{X: float64(ev.X), Y: float64(ev.Y)},
		Button: pointerButton(ev.Button),
		Alt:    ev.Alt,
		Ctrl:   ev.Ctrl,
		Shift:  ev.Shift,
	}, true
}

func pointerButton(b tea.MouseButton) drag.Button {
	switch b {
	case tea.MouseButtonLeft:
		return drag.ButtonLeft
	case tea.MouseButtonMiddle:
		return drag.ButtonMiddle
	case tea.MouseButtonRight:
		return drag.ButtonRight
	default:
		return drag.ButtonNone
	}
}
