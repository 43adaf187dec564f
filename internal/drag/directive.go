package drag

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-drag/internal/core"
)

// Config configures a Directive.
type Config struct {
	Resolver ResolverOptions

	// ElementMarker is added to the host element while it is dragged.
	ElementMarker string

	// PageMarker is added to the document while any drag is in progress.
	// Empty disables the page marker.
	PageMarker string
}

// DefaultConfig returns the default directive configuration.
func DefaultConfig() Config {
	return Config{
		Resolver:      DefaultResolverOptions(),
		ElementMarker: ElementMarker,
		PageMarker:    PageMarker,
	}
}

// Option customizes a Directive at construction.
type Option func(*Directive)

// WithBoundary confines the element to b.
func WithBoundary(b Boundary) Option {
	return func(d *Directive) {
		d.boundary = b
	}
}

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(d *Directive) {
		if l != nil {
			d.logger = l
		}
	}
}

// OnDragEnd registers h to be called once per completed gesture with the
// release event.
func OnDragEnd(h Handler) Option {
	return func(d *Directive) {
		if h != nil {
			d.dragEnd = append(d.dragEnd, h)
		}
	}
}

// Directive makes a host element draggable. It is not safe for concurrent
// use; hosts deliver events from a single goroutine.
type Directive struct {
	host     Element
	doc      Document
	boundary Boundary
	cfg      Config
	resolver *Resolver
	logger   *log.Logger
	dragEnd  []Handler

	attached bool
	press    Subscription
	gesture  []Subscription
}

// New creates a directive for host. It does nothing until Attach is called.
func New(host Element, doc Document, cfg Config, opts ...Option) *Directive {
	d := &Directive{
		host:     host,
		doc:      doc,
		cfg:      cfg,
		resolver: NewResolver(cfg.Resolver),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach starts listening for presses on the host element.
func (d *Directive) Attach() error {
	if d.attached {
		return ErrAttached
	}
	if d.host == nil {
		return ErrNoHost
	}
	if d.doc == nil {
		return ErrNoDocument
	}
	d.listen()
	d.attached = true
	d.logger.Debug("drag attached",
		"clamping", d.cfg.Resolver.BoundaryClamping,
		"offset_correction", d.cfg.Resolver.OffsetCorrection,
		"rounding", d.cfg.Resolver.Rounding,
	)
	return nil
}

// Detach releases every listener, including those of a gesture in progress.
// An interrupted gesture produces no drag-end notification. The markers it
// added are removed and the translation reached so far is kept.
func (d *Directive) Detach() {
	if !d.attached {
		return
	}
	interrupted := d.resolver.Active()
	d.releaseAll()
	if interrupted {
		d.resolver.End()
		d.removeMarkers()
	}
	d.attached = false
	d.logger.Debug("drag detached", "interrupted", interrupted)
}

// Attached reports whether the directive is listening.
func (d *Directive) Attached() bool {
	return d.attached
}

// Dragging reports whether a gesture is in progress.
func (d *Directive) Dragging() bool {
	return d.resolver.Active()
}

// Clamped reports whether the current, or most recent, gesture was
// confined to a boundary.
func (d *Directive) Clamped() bool {
	return d.resolver.Clamping()
}

// Transform returns the cumulative translation applied to the host.
func (d *Directive) Transform() core.Point {
	return d.resolver.Transform()
}

// SetBoundary replaces the boundary element. nil removes it. The new
// geometry is read at the next press.
func (d *Directive) SetBoundary(b Boundary) {
	d.boundary = b
}

// Options returns the resolver options used for the next gesture.
func (d *Directive) Options() ResolverOptions {
	return d.resolver.Options()
}

// SetOptions changes the resolver options from the next gesture on.
func (d *Directive) SetOptions(opts ResolverOptions) {
	d.cfg.Resolver = opts
	d.resolver.SetOptions(opts)
}

// start handles a press on the host element.
func (d *Directive) start(evt PointerEvent) {
	if d.resolver.Active() {
		d.logger.Debug("press ignored, gesture already active", "x", evt.Page.X, "y", evt.Page.Y)
		return
	}
	bounds := d.readBoundary()
	d.resolver.Begin(evt, d.host.Size(), bounds)
	d.addMarkers()
	d.beginGesture()
	d.logger.Debug("drag start",
		"x", evt.Page.X, "y", evt.Page.Y,
		"clamped", d.resolver.Clamping(),
	)
}

// move handles a pointer move anywhere on the document.
func (d *Directive) move(evt PointerEvent) {
	if !d.resolver.Active() {
		return
	}
	t := d.resolver.Move(evt.Page)
	d.host.SetTransform(core.TranslationOf(t))
}

// end handles the release that completes a gesture.
func (d *Directive) end(evt PointerEvent) {
	if !d.resolver.Active() {
		return
	}
	d.endGesture()
	d.resolver.End()
	d.removeMarkers()
	t := d.resolver.Transform()
	d.logger.Debug("drag end", "x", evt.Page.X, "y", evt.Page.Y, "tx", t.X, "ty", t.Y)
	for _, h := range d.dragEnd {
		h(evt)
	}
}

// readBoundary returns the boundary geometry for a new gesture, or nil.
func (d *Directive) readBoundary() *core.Bounds {
	if d.boundary == nil {
		return nil
	}
	b, err := d.boundary.Bounds()
	if err != nil {
		d.logger.Debug("boundary unavailable, dragging unconstrained", "error", err)
		return nil
	}
	return &b
}

func (d *Directive) addMarkers() {
	if d.cfg.ElementMarker != "" {
		d.host.AddMarker(d.cfg.ElementMarker)
	}
	if d.cfg.PageMarker != "" {
		d.doc.AddMarker(d.cfg.PageMarker)
	}
}

func (d *Directive) removeMarkers() {
	if d.cfg.ElementMarker != "" {
		d.host.RemoveMarker(d.cfg.ElementMarker)
	}
	if d.cfg.PageMarker != "" {
		d.doc.RemoveMarker(d.cfg.PageMarker)
	}
}
