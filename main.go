package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"golang.org/x/term"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/input"
	"github.com/tinyrange/wma/internal/wm"
)

func init() {
	// Native windowing libraries must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "wma.toml", "settings file (.toml, .yaml or .yml)")
	backendName := fs.String("backend", "", "window backend: glfw, sdl2, x11, terminal or headless (default: first available)")
	apiName := fs.String("api", "", "graphics api: opengl, vulkan or cpu")
	frames := fs.Uint64("frames", 0, "stop after this many frames (0 runs until closed)")
	logPath := fs.String("log", "", "write logs to this file instead of stderr")
	verbose := fs.Bool("v", false, "enable debug logging")
	info := fs.Bool("info", false, "print library information and exit")
	watch := fs.Bool("watch", false, "reload sensitivity and frame cap when the settings file changes")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	if *info {
		fmt.Println(wm.Info())
		return
	}

	settings, err := config.Load(*configPath, config.DefaultSettings(pickBackend()))
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	if *backendName != "" {
		if settings.Backend, err = config.ParseBackend(*backendName); err != nil {
			log.Fatalf("backend: %v", err)
		}
	}
	if *apiName != "" {
		if settings.API, err = config.ParseGraphicsAPI(*apiName); err != nil {
			log.Fatalf("api: %v", err)
		}
	} else if settings.Backend == config.Terminal || settings.Backend == config.Headless {
		settings.API = config.CPU
	}
	if *verbose {
		settings.LogLevel = slog.LevelDebug
	}

	logger, closeLog, err := newLogger(*logPath, settings)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	slog.Info("settings", "settings", settings.String())

	m, err := wm.New(settings.Window, settings.Backend, settings.API, wm.WithLogger(logger))
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer m.Destroy()

	if err := m.CreateWindow(""); err != nil {
		log.Fatalf("create window: %v", err)
	}

	if settings.API == config.Vulkan {
		exts, err := m.VulkanExtensions()
		if err != nil {
			log.Fatalf("vulkan extensions: %v", err)
		}
		slog.Info("vulkan", "extensions", exts)
	}

	bindDemoActions(m)

	var updates <-chan config.Settings
	if *watch {
		w, err := config.Watch(*configPath, config.DefaultSettings(settings.Backend))
		if err != nil {
			log.Fatalf("watch settings: %v", err)
		}
		defer w.Close()
		updates = w.Updates()
		go func() {
			for err := range w.Errors() {
				slog.Warn("reload settings", "err", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = m.Run(ctx, func() {
		select {
		case s, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			m.SetSensitivity(s.Window.Sensitivity)
			m.SetTargetFPS(s.Window.TargetFPS)
			slog.Info("settings reloaded", "sensitivity", s.Window.Sensitivity, "target_fps", s.Window.TargetFPS)
		default:
		}

		flags := m.Flags()
		if flags.Resized {
			cfg := m.Config()
			slog.Info("resized", "width", cfg.Width, "height", cfg.Height)
		}
		if flags.FrameCounter%120 == 0 {
			slog.Debug("frame", "count", flags.FrameCounter, "fps", flags.FPS, "focused", flags.Focused)
		}
		if *frames > 0 && flags.FrameCounter >= *frames {
			m.Close()
		}
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("run loop: %v", err)
	}
}

// pickBackend prefers a native window and falls back to the terminal only
// when stdout is one.
func pickBackend() config.Backend {
	b := wm.DefaultBackend()
	if b == config.Terminal && !term.IsTerminal(int(os.Stdout.Fd())) {
		return config.Headless
	}
	return b
}

// newLogger writes text logs to path, or to stderr. The terminal backend
// owns the screen, so without a log file its logs are dropped.
func newLogger(path string, s config.Settings) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	case s.Backend == config.Terminal:
		w = io.Discard
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel})
	return slog.New(h), closeFn, nil
}

func bindDemoActions(m *wm.Manager) {
	m.RegisterKeyAction(input.KeySpace, func() {
		m.SetCursorEnabled(!m.CursorEnabled())
		slog.Info("cursor", "enabled", m.CursorEnabled())
	}, nil)
	m.RegisterKeyAction(input.KeyEqual, func() {
		m.SetSensitivity(m.Sensitivity() * 2)
		slog.Info("sensitivity", "value", m.Sensitivity())
	}, nil)
	m.RegisterKeyAction(input.KeyMinus, func() {
		m.SetSensitivity(m.Sensitivity() / 2)
		slog.Info("sensitivity", "value", m.Sensitivity())
	}, nil)
	m.RegisterMouseButtonAction(input.ButtonLeft,
		func() { slog.Info("click", "pos", m.MousePosition()) },
		nil)
	m.SetMouseScrollAction(func(s input.MouseScroll) {
		slog.Debug("scroll", "x", s.XOffset, "y", s.YOffset)
	})
}
