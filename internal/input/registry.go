package input

// KeyAction bundles the callbacks bound to a key. Either slot may be nil.
type KeyAction struct {
	OnPress   func()
	OnRelease func()
}

// MouseAction bundles the callbacks bound to a mouse button, or to the
// global move and scroll slots. Unused slots stay nil.
type MouseAction struct {
	OnPress   func()
	OnRelease func()
	OnMove    func(MousePosition)
	OnScroll  func(MouseScroll)
}

func (a KeyAction) run(p Phase) {
	fire(a.OnPress, a.OnRelease, p)
}

func (a MouseAction) run(p Phase) {
	fire(a.OnPress, a.OnRelease, p)
}

func fire(onPress, onRelease func(), p Phase) {
	switch p {
	case Press:
		if onPress != nil {
			onPress()
		}
	case Release:
		if onRelease != nil {
			onRelease()
		}
	}
}

// table is the code -> entry map shared by both registries. At most one
// entry exists per code and a later Register replaces the earlier one
// wholesale.
type table[C ~int32, A any] struct {
	entries map[C]A
}

func (t *table[C, A]) set(code C, a A) {
	if t.entries == nil {
		t.entries = make(map[C]A)
	}
	t.entries[code] = a
}

func (t *table[C, A]) get(code C) (A, bool) {
	a, ok := t.entries[code]
	return a, ok
}

func (t *table[C, A]) remove(code C) {
	delete(t.entries, code)
}

func (t *table[C, A]) clear() {
	clear(t.entries)
}

func (t *table[C, A]) len() int {
	return len(t.entries)
}

// Keyboard maps keys to actions.
//
// A Keyboard is owned by a single window and is only touched from that
// window's loop goroutine, so it carries no locking.
type Keyboard struct {
	actions table[Key, KeyAction]
}

// NewKeyboard returns an empty keyboard registry.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Register binds action to key, replacing any previous binding.
func (kb *Keyboard) Register(key Key, action KeyAction) {
	kb.actions.set(key, action)
}

// Unregister removes the binding for key. Unknown keys are ignored.
func (kb *Keyboard) Unregister(key Key) {
	kb.actions.remove(key)
}

// Clear removes every binding.
func (kb *Keyboard) Clear() {
	kb.actions.clear()
}

// Has reports whether key has a binding.
func (kb *Keyboard) Has(key Key) bool {
	_, ok := kb.actions.get(key)
	return ok
}

// Len returns the number of bound keys.
func (kb *Keyboard) Len() int {
	return kb.actions.len()
}

// Dispatch runs the slot of key's action matching phase. A missing binding
// or an empty slot is a no-op.
func (kb *Keyboard) Dispatch(key Key, p Phase) {
	if a, ok := kb.actions.get(key); ok {
		a.run(p)
	}
}

// Mouse maps buttons to actions and holds the single move and scroll
// actions. Like Keyboard it is confined to the loop goroutine.
type Mouse struct {
	buttons table[Button, MouseAction]
	move    func(MousePosition)
	scroll  func(MouseScroll)
}

// NewMouse returns an empty mouse registry.
func NewMouse() *Mouse {
	return &Mouse{}
}

// Register binds action to button, replacing any previous binding.
func (m *Mouse) Register(button Button, action MouseAction) {
	m.buttons.set(button, action)
}

// Unregister removes the binding for button. Unknown buttons are ignored.
func (m *Mouse) Unregister(button Button) {
	m.buttons.remove(button)
}

// Has reports whether button has a binding.
func (m *Mouse) Has(button Button) bool {
	_, ok := m.buttons.get(button)
	return ok
}

// SetMoveAction installs the move handler; nil removes it.
func (m *Mouse) SetMoveAction(fn func(MousePosition)) {
	m.move = fn
}

// SetScrollAction installs the scroll handler; nil removes it.
func (m *Mouse) SetScrollAction(fn func(MouseScroll)) {
	m.scroll = fn
}

// HasMoveAction reports whether a move handler is installed.
func (m *Mouse) HasMoveAction() bool { return m.move != nil }

// HasScrollAction reports whether a scroll handler is installed.
func (m *Mouse) HasScrollAction() bool { return m.scroll != nil }

// Clear removes every button binding and both global handlers.
func (m *Mouse) Clear() {
	m.buttons.clear()
	m.move = nil
	m.scroll = nil
}

// Dispatch runs the slot of button's action matching phase.
func (m *Mouse) Dispatch(button Button, p Phase) {
	if a, ok := m.buttons.get(button); ok {
		a.run(p)
	}
}

// DispatchMove hands pos to the move handler, if any.
func (m *Mouse) DispatchMove(pos MousePosition) {
	if m.move != nil {
		m.move(pos)
	}
}

// DispatchScroll hands s to the scroll handler, if any.
func (m *Mouse) DispatchScroll(s MouseScroll) {
	if m.scroll != nil {
		m.scroll(s)
	}
}
