package input

import "testing"

func TestKeyboard_DispatchPressOnly(t *testing.T) {
	kb := NewKeyboard()

	var pressed, released int
	kb.Register(KeyK, KeyAction{
		OnPress:   func() { pressed++ },
		OnRelease: func() { released++ },
	})

	kb.Dispatch(KeyK, Press)

	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
	if released != 0 {
		t.Errorf("released = %d, want 0", released)
	}
}

func TestKeyboard_DispatchUnregistered(t *testing.T) {
	kb := NewKeyboard()

	var fired bool
	kb.Register(KeyA, KeyAction{OnPress: func() { fired = true }})

	kb.Dispatch(KeyB, Press)
	kb.Dispatch(KeyUnknown, Release)

	if fired {
		t.Error("handler for KeyA fired on unrelated keys")
	}
}

func TestKeyboard_EmptySlot(t *testing.T) {
	kb := NewKeyboard()
	var pressed int
	kb.Register(KeySpace, KeyAction{OnPress: func() { pressed++ }})

	// Release has no slot; must not panic.
	kb.Dispatch(KeySpace, Release)
	kb.Dispatch(KeySpace, Press)

	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
}

func TestKeyboard_ReRegisterReplaces(t *testing.T) {
	kb := NewKeyboard()

	var oldPress, newRelease int
	kb.Register(KeyK, KeyAction{OnPress: func() { oldPress++ }})
	kb.Register(KeyK, KeyAction{OnRelease: func() { newRelease++ }})

	kb.Dispatch(KeyK, Press)
	kb.Dispatch(KeyK, Release)

	if oldPress != 0 {
		t.Errorf("old press callback ran %d times after replacement", oldPress)
	}
	if newRelease != 1 {
		t.Errorf("newRelease = %d, want 1", newRelease)
	}
	if kb.Len() != 1 {
		t.Errorf("Len() = %d, want 1", kb.Len())
	}
}

func TestKeyboard_ReplaceFromInsideHandler(t *testing.T) {
	kb := NewKeyboard()

	var first, second int
	kb.Register(KeyK, KeyAction{OnPress: func() {
		first++
		kb.Register(KeyK, KeyAction{OnPress: func() { second++ }})
	}})

	kb.Dispatch(KeyK, Press)
	kb.Dispatch(KeyK, Press)

	if first != 1 || second != 1 {
		t.Errorf("first = %d, second = %d, want 1, 1", first, second)
	}
}

func TestKeyboard_UnregisterAndClear(t *testing.T) {
	kb := NewKeyboard()
	kb.Register(KeyA, KeyAction{})
	kb.Register(KeyB, KeyAction{})

	kb.Unregister(KeyA)
	kb.Unregister(KeyZ) // absent: no-op

	if kb.Has(KeyA) {
		t.Error("KeyA still registered after Unregister")
	}
	if !kb.Has(KeyB) {
		t.Error("KeyB lost")
	}

	kb.Clear()
	if kb.Has(KeyB) || kb.Len() != 0 {
		t.Error("Clear left entries behind")
	}
}

func TestMouse_ButtonsAndGlobalSlots(t *testing.T) {
	m := NewMouse()

	var left, right int
	m.Register(ButtonLeft, MouseAction{OnPress: func() { left++ }})
	m.Register(ButtonRight, MouseAction{OnRelease: func() { right++ }})

	m.Dispatch(ButtonLeft, Press)
	m.Dispatch(ButtonLeft, Release)
	m.Dispatch(ButtonRight, Release)
	m.Dispatch(ButtonMiddle, Press)

	if left != 1 || right != 1 {
		t.Errorf("left = %d, right = %d, want 1, 1", left, right)
	}

	// No handlers installed yet: no-ops.
	m.DispatchMove(MousePosition{X: 1})
	m.DispatchScroll(MouseScroll{YOffset: 1})

	var moves []MousePosition
	m.SetMoveAction(func(p MousePosition) { moves = append(moves, p) })
	m.SetMoveAction(func(p MousePosition) { moves = append(moves, MousePosition{X: -p.X}) })
	m.DispatchMove(MousePosition{X: 3})

	if len(moves) != 1 || moves[0].X != -3 {
		t.Errorf("moves = %+v, want only the second handler", moves)
	}

	var scrolled MouseScroll
	m.SetScrollAction(func(s MouseScroll) { scrolled = s })
	m.DispatchScroll(MouseScroll{XOffset: 0.5, YOffset: -2})
	if scrolled != (MouseScroll{XOffset: 0.5, YOffset: -2}) {
		t.Errorf("scrolled = %+v", scrolled)
	}

	m.Clear()
	if m.Has(ButtonLeft) || m.HasMoveAction() || m.HasScrollAction() {
		t.Error("Clear left actions behind")
	}
}

func TestDispatcher_Routes(t *testing.T) {
	kb := NewKeyboard()
	m := NewMouse()
	d := NewDispatcher(kb, m)

	var got []string
	kb.Register(KeyW, KeyAction{
		OnPress:   func() { got = append(got, "w+") },
		OnRelease: func() { got = append(got, "w-") },
	})
	m.Register(Button4, MouseAction{OnPress: func() { got = append(got, "b4+") }})
	m.SetMoveAction(func(MousePosition) { got = append(got, "move") })
	m.SetScrollAction(func(MouseScroll) { got = append(got, "scroll") })

	events := []Event{
		KeyEvent(KeyW, Press),
		ButtonEvent(Button4, Press),
		MoveEvent(MousePosition{X: 1, Y: 2}),
		ScrollEvent(MouseScroll{YOffset: 1}),
		KeyEvent(KeyW, Release),
		KeyEvent(KeyUnknown, Press),
		ButtonEvent(Button(42), Press),
	}
	for _, ev := range events {
		d.Dispatch(ev)
	}

	want := []string{"w+", "b4+", "move", "scroll", "w-"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyA, "A"},
		{Key9, "9"},
		{KeyF12, "F12"},
		{KeyEscape, "Escape"},
		{KeyRightSuper, "RightSuper"},
		{KeySlash, "Slash"},
		{KeyKPEnter, "KPEnter"},
		{KeyUnknown, "Unknown"},
		{Key(500), "Key(500)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", int32(tt.key), got, tt.want)
		}
	}
}
