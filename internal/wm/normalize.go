package wm

import (
	"log/slog"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/frame"
	"github.com/tinyrange/wma/internal/input"
	"github.com/tinyrange/wma/internal/window"
)

// normalizer turns one window's native records into unified input events
// and window state.
type normalizer struct {
	keymap   window.Keymap
	pointer  *input.Pointer
	flags    *frame.Flags
	cfg      *config.WindowConfig
	dispatch func(input.Event)
	log      *slog.Logger
}

func newNormalizer(w window.Window, p *input.Pointer, flags *frame.Flags, cfg *config.WindowConfig, dispatch func(input.Event), log *slog.Logger) (*normalizer, error) {
	if w == nil {
		return nil, window.ErrNilWindow
	}
	return &normalizer{
		keymap:   w.Keymap(),
		pointer:  p,
		flags:    flags,
		cfg:      cfg,
		dispatch: dispatch,
		log:      log,
	}, nil
}

func phaseOf(pressed bool) input.Phase {
	if pressed {
		return input.Press
	}
	return input.Release
}

// handle processes one record. It reports whether the record asked the
// window to close.
func (n *normalizer) handle(ev window.Event) (closeRequested bool) {
	switch e := ev.(type) {
	case window.KeyEvent:
		if e.Repeat {
			return false
		}
		key := n.keymap.Key(e.Code)
		if key == input.KeyUnknown {
			n.log.Debug("unmapped key", "keymap", n.keymap.Name, "code", e.Code)
			return false
		}
		n.dispatch(input.KeyEvent(key, phaseOf(e.Pressed)))

	case window.ButtonEvent:
		n.dispatch(input.ButtonEvent(n.keymap.Button(e.Code), phaseOf(e.Pressed)))

	case window.MotionEvent:
		n.dispatch(input.MoveEvent(n.pointer.Sample(e.X, e.Y)))

	case window.ScrollEvent:
		n.dispatch(input.ScrollEvent(input.MouseScroll{XOffset: e.DX, YOffset: e.DY}))

	case window.ResizeEvent:
		n.cfg.Width, n.cfg.Height = e.Width, e.Height
		n.flags.Resized = true

	case window.FocusEvent:
		// The cursor may have moved anywhere while another window had
		// focus.
		if e.Focused && !n.flags.Focused {
			n.pointer.Reset()
		}
		n.flags.Focused = e.Focused

	case window.IconifyEvent:
		n.flags.Minimized = e.Iconified

	case window.CloseEvent:
		return true

	default:
		n.log.Debug("dropped record", "record", ev)
	}
	return false
}
