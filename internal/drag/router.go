package drag

// The press listener lives on the host element for as long as the directive
// is attached. Move and release listeners live on the document for the
// duration of a single gesture.

func (d *Directive) listen() {
	d.press = d.host.On(PointerDown, d.start)
}

func (d *Directive) beginGesture() {
	d.gesture = append(d.gesture,
		d.doc.On(PointerMove, d.move),
		d.doc.On(PointerUp, d.end),
	)
}

func (d *Directive) endGesture() {
	for _, s := range d.gesture {
		s.Remove()
	}
	d.gesture = d.gesture[:0]
}

func (d *Directive) releaseAll() {
	d.endGesture()
	if d.press != nil {
		d.press.Remove()
		d.press = nil
	}
}
