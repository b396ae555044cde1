package window

// Event is a raw record produced by a backend during a pump. Codes are
// still native; the window manager translates them with the backend's
// Keymap.
type Event interface {
	isEvent()
}

// KeyEvent is a native key transition.
type KeyEvent struct {
	Code    int64
	Pressed bool
	// Repeat marks auto-repeat presses, which are not dispatched.
	Repeat bool
}

// ButtonEvent is a native mouse button transition.
type ButtonEvent struct {
	Code    int32
	Pressed bool
}

// MotionEvent is an absolute cursor position in window coordinates.
type MotionEvent struct {
	X, Y float64
}

// ScrollEvent carries wheel offsets in backend units.
type ScrollEvent struct {
	DX, DY float64
}

// ResizeEvent reports the new window size.
type ResizeEvent struct {
	Width, Height int
}

// FocusEvent reports focus gained or lost.
type FocusEvent struct {
	Focused bool
}

// IconifyEvent reports the window being minimized or restored.
type IconifyEvent struct {
	Iconified bool
}

// CloseEvent reports that the user asked to close the window.
type CloseEvent struct{}

func (KeyEvent) isEvent()     {}
func (ButtonEvent) isEvent()  {}
func (MotionEvent) isEvent()  {}
func (ScrollEvent) isEvent()  {}
func (ResizeEvent) isEvent()  {}
func (FocusEvent) isEvent()   {}
func (IconifyEvent) isEvent() {}
func (CloseEvent) isEvent()   {}

// Queue holds the records collected by a pump until the loop drains them.
// It belongs to the loop goroutine.
type Queue struct {
	events []Event
}

// Push appends ev.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of pending records.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain calls fn for every pending record in arrival order and empties the
// queue. Records pushed by fn are delivered in the same drain.
func (q *Queue) Drain(fn func(Event)) {
	for i := 0; i < len(q.events); i++ {
		fn(q.events[i])
	}
	clear(q.events)
	q.events = q.events[:0]
}
