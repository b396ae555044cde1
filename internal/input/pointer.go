package input

// Pointer turns absolute cursor samples into positions with deltas.
//
// Until the first sample arrives the pointer is in its bootstrap state:
// that first sample seeds the previous position, so its delta is zero.
// Every later sample yields (current - previous) * sensitivity, with the Y
// axis flipped when invertY is set so that "up" is positive for backends
// whose origin is the top-left corner.
type Pointer struct {
	current     MousePosition
	lastX       float64
	lastY       float64
	first       bool
	sensitivity float64
	invertY     bool
	enabled     bool
}

// NewPointer returns a pointer in the bootstrap state with sensitivity 1
// and the cursor enabled.
func NewPointer(invertY bool) *Pointer {
	return &Pointer{
		first:       true,
		sensitivity: 1.0,
		invertY:     invertY,
		enabled:     true,
	}
}

// Reset returns the pointer to the bootstrap state. The last absolute
// position, sensitivity and cursor mode are kept; only the delta is cleared.
func (p *Pointer) Reset() {
	p.first = true
	p.current.DeltaX, p.current.DeltaY = 0, 0
	p.lastX, p.lastY = 0, 0
}

// Seed records an initial cursor position without leaving the bootstrap
// state; the next Sample still reports a zero delta.
func (p *Pointer) Seed(x, y float64) {
	p.current = MousePosition{X: x, Y: y}
}

// Sample records a new cursor position and returns it with its delta.
func (p *Pointer) Sample(x, y float64) MousePosition {
	if p.first {
		p.lastX, p.lastY = x, y
		p.first = false
	}

	dx := (x - p.lastX) * p.sensitivity
	dy := (y - p.lastY) * p.sensitivity
	if p.invertY {
		dy = -dy
	}

	p.current = MousePosition{X: x, Y: y, DeltaX: dx, DeltaY: dy}
	p.lastX, p.lastY = x, y
	return p.current
}

// Position returns the most recent sample.
func (p *Pointer) Position() MousePosition {
	return p.current
}

// SetSensitivity sets the delta multiplier used by later samples.
func (p *Pointer) SetSensitivity(s float64) {
	p.sensitivity = s
}

// Sensitivity returns the delta multiplier.
func (p *Pointer) Sensitivity() float64 {
	return p.sensitivity
}

// SetEnabled records whether the cursor is visible and free.
func (p *Pointer) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// Enabled reports whether the cursor is visible and free.
func (p *Pointer) Enabled() bool {
	return p.enabled
}
