package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drag/internal/drag"
	"github.com/vovakirdan/tui-drag/internal/storage"
)

// gestureLog consumes drag-end notifications: it counts gestures, prepares
// the status flash and appends each gesture to the journal.
type gestureLog struct {
	store     *storage.Store
	logger    *log.Logger
	sceneID   string
	sessionID string
	directive *drag.Directive

	count   int
	last    *drag.PointerEvent
	flash   string
	flashID int
	pending bool // a flash was set and its expiry is not scheduled yet
}

// record is registered with drag.OnDragEnd.
func (g *gestureLog) record(evt drag.PointerEvent) {
	g.count++
	g.last = &evt

	g.flash = fmt.Sprintf("dropped at (%g, %g)%s", evt.Page.X, evt.Page.Y, modifiers(evt))
	g.flashID++
	g.pending = true

	if g.store == nil {
		return
	}
	t := g.directive.Transform()
	_, err := g.store.SaveGesture(storage.Gesture{
		SceneID:    g.sceneID,
		SessionID:  g.sessionID,
		EndX:       evt.Page.X,
		EndY:       evt.Page.Y,
		TranslateX: t.X,
		TranslateY: t.Y,
		Clamped:    g.directive.Clamped(),
		Alt:        evt.Alt,
		Ctrl:       evt.Ctrl,
		Shift:      evt.Shift,
	})
	if err != nil {
		// Best-effort: the playground keeps working without a journal.
		g.logger.Warn("could not journal gesture", "error", err)
	}
}

// expire clears the flash if id is still the current one.
func (g *gestureLog) expire(id int) {
	if id == g.flashID {
		g.flash = ""
	}
}

// modifiers formats the modifier keys held at release.
func modifiers(evt drag.PointerEvent) string {
	var keys []string
	if evt.Ctrl {
		keys = append(keys, "ctrl")
	}
	if evt.Alt {
		keys = append(keys, "alt")
	}
	if evt.Shift {
		keys = append(keys, "shift")
	}
	if len(keys) == 0 {
		return ""
	}
	return " +" + strings.Join(keys, "+")
}
