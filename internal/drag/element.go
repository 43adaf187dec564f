package drag

import (
	"errors"

	"github.com/vovakirdan/tui-drag/internal/core"
)

// Default marker names hosts can target in their presentation layer.
const (
	ElementMarker = "nui-drag-active"
	PageMarker    = "nui-dragging-start"
)

var (
	// ErrNoHost is returned by Attach when the directive has no host element.
	ErrNoHost = errors.New("drag: no host element")

	// ErrNoDocument is returned by Attach when the directive has no document.
	ErrNoDocument = errors.New("drag: no document")

	// ErrAttached is returned by Attach when the directive is already attached.
	ErrAttached = errors.New("drag: already attached")
)

// Marked is anything that carries presentation markers (class names).
type Marked interface {
	AddMarker(name string)
	RemoveMarker(name string)
}

// Element is the host element being dragged.
type Element interface {
	EventTarget
	Marked

	// Size returns the rendered size of the element.
	Size() core.Dimension

	// SetTransform replaces the element's rendered translation. It must not
	// change layout and must not schedule a re-render on its own.
	SetTransform(t core.Translation)
}

// Document is the page-level target. Move and release listeners are
// subscribed here so the gesture survives the pointer leaving the element.
type Document interface {
	EventTarget
	Marked
}

// Boundary is an element whose on-screen box confines the dragged element.
type Boundary interface {
	// Bounds returns the current geometry. An error means the geometry is
	// unavailable and the gesture proceeds unconstrained.
	Bounds() (core.Bounds, error)
}
