package input

// Dispatcher routes normalized events to the keyboard or mouse registry.
// It has no state of its own and never fails: an event without a handler
// is simply dropped.
type Dispatcher struct {
	keyboard *Keyboard
	mouse    *Mouse
}

// NewDispatcher returns a dispatcher over the given registries.
func NewDispatcher(kb *Keyboard, m *Mouse) *Dispatcher {
	return &Dispatcher{keyboard: kb, mouse: m}
}

// Dispatch invokes the handler matching ev synchronously.
func (d *Dispatcher) Dispatch(ev Event) {
	switch ev.Source {
	case SourceKey:
		d.keyboard.Dispatch(Key(ev.Code), ev.Phase)
	case SourceMouseButton:
		d.mouse.Dispatch(Button(ev.Code), ev.Phase)
	case SourceMouseMove:
		d.mouse.DispatchMove(ev.Position)
	case SourceMouseScroll:
		d.mouse.DispatchScroll(ev.Scroll)
	}
}
