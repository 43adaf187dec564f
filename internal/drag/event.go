// Package drag implements a pointer-drag directive: attached to a host element
// it repositions that element by cumulative translation while the pointer is
// pressed, optionally keeping it inside a boundary element.
//
// The package knows nothing about the host environment. Hosts provide an
// Element, a Document and optionally a Boundary, and deliver PointerEvents to
// whatever handlers the directive subscribes.
package drag

import "github.com/vovakirdan/tui-drag/internal/core"

// EventKind identifies a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	default:
		return "unknown"
	}
}

// Button identifies the pointer button involved in an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerEvent is a single pointer sample delivered by the host.
type PointerEvent struct {
	Kind EventKind

	// Page is the pointer position in page space.
	Page core.Point

	// Offset is the pointer position relative to the top-left corner of the
	// element the event was dispatched to. Only meaningful for presses.
	Offset core.Point

	Button Button
	Alt    bool
	Ctrl   bool
	Shift  bool
}

// Handler receives pointer events.
type Handler func(PointerEvent)

// Subscription is returned by EventTarget.On and detaches the handler.
type Subscription interface {
	Remove()
}

// EventTarget is anything handlers can be subscribed to.
type EventTarget interface {
	On(kind EventKind, h Handler) Subscription
}

type listener struct {
	kind    EventKind
	fn      Handler
	removed bool
}

// Listeners is a handler registry that hosts can embed to implement
// EventTarget. The zero value is ready to use.
type Listeners struct {
	entries []*listener
}

// On registers h for events of the given kind.
func (l *Listeners) On(kind EventKind, h Handler) Subscription {
	e := &listener{kind: kind, fn: h}
	l.entries = append(l.entries, e)
	return &subscription{reg: l, entry: e}
}

// Emit delivers evt to every handler registered for its kind, in
// registration order. Handlers may subscribe or unsubscribe during Emit;
// removed handlers are not called and new ones wait for the next event.
func (l *Listeners) Emit(evt PointerEvent) {
	snapshot := make([]*listener, len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if e.removed || e.kind != evt.Kind {
			continue
		}
		e.fn(evt)
	}
}

// Count returns how many handlers are registered for kind.
func (l *Listeners) Count(kind EventKind) int {
	n := 0
	for _, e := range l.entries {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (l *Listeners) remove(e *listener) {
	for i := range l.entries {
		if l.entries[i] == e {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = nil
			l.entries = l.entries[:len(l.entries)-1]
			return
		}
	}
}

type subscription struct {
	reg   *Listeners
	entry *listener
}

// Remove unregisters the handler. Calling it more than once is harmless.
func (s *subscription) Remove() {
	if s.entry.removed {
		return
	}
	s.entry.removed = true
	s.reg.remove(s.entry)
}
