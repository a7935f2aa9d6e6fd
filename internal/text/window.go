package text

// Window is a viewport onto a Buffer (spec.md §3).
type Window struct {
	Buf *Buffer

	Top      LineID // top visible line
	Dot      Pos
	Mark     Pos
	FirstCol int

	TopRow, Rows int
	ForceReframe LineID
	Dirty        bool

	next *Window
}

// WindowList is the ordered list of windows rooted at a global head
// (spec.md §3).
type WindowList struct {
	head *Window
	cur  *Window
}

// NewWindowList returns an empty window list.
func NewWindowList() *WindowList { return &WindowList{} }

// New creates a window over buf and links it at the head of the list.
func (wl *WindowList) New(buf *Buffer) *Window {
	w := &Window{
		Buf:  buf,
		Top:  buf.First(),
		Dot:  Pos{Line: buf.First()},
		Mark: Pos{Line: NoLine},
	}
	w.next = wl.head
	wl.head = w
	if wl.cur == nil {
		wl.cur = w
	}
	buf.AttachWindow()
	return w
}

// Remove unlinks w from the list, detaching it from its buffer. If w was the
// current window, the new head (if any) becomes current.
func (wl *WindowList) Remove(w *Window) {
	w.Buf.DetachWindow()
	if wl.head == w {
		wl.head = w.next
	} else {
		for p := wl.head; p != nil; p = p.next {
			if p.next == w {
				p.next = w.next
				break
			}
		}
	}
	if wl.cur == w {
		wl.cur = wl.head
	}
}

// All returns every window in list order.
func (wl *WindowList) All() []*Window {
	var out []*Window
	for w := wl.head; w != nil; w = w.next {
		out = append(out, w)
	}
	return out
}

// Current returns the current window, or nil if there are none.
func (wl *WindowList) Current() *Window { return wl.cur }

// SetCurrent makes w the current window.
func (wl *WindowList) SetCurrent(w *Window) { wl.cur = w }

// ForEachShowing invokes fn once per window displaying buf, used by line.c's
// lfree-style dot/mark fixup (see adjustForDelete and mergeLineInto in delete.go) and by
// the redisplay-flag propagation on every mutating edit primitive.
func (wl *WindowList) ForEachShowing(buf *Buffer, fn func(*Window)) {
	for w := wl.head; w != nil; w = w.next {
		if w.Buf == buf {
			fn(w)
		}
	}
}
