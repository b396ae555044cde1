package frame

// Flags is the per-frame state shared between the loop, the event
// normalizer and the frame callback.
//
// Resized is an edge: it is cleared at the start of every iteration and set
// again only if a resize arrives during that iteration's drain. Minimized
// and Focused are levels and persist until the next notification.
type Flags struct {
	FrameCounter uint64
	Resized      bool
	Minimized    bool
	Focused      bool

	// DeltaTime is the duration of the previous frame in milliseconds.
	DeltaTime float64
	FPS       float64
}

// NewFlags returns flags for a window that has not run yet.
func NewFlags() *Flags {
	return &Flags{Focused: true}
}

// Reset clears the per-frame edges.
func (f *Flags) Reset() {
	f.Resized = false
}
