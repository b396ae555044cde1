package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "WMA_"

// fileSettings is the on-disk layout. Enumerations stay strings here so a
// typo is reported with its field name instead of a decoder type error.
type fileSettings struct {
	Backend  string       `toml:"backend" yaml:"backend"`
	API      string       `toml:"api" yaml:"api"`
	LogLevel string       `toml:"log_level" yaml:"log_level"`
	Window   WindowConfig `toml:"window" yaml:"window"`
}

// Load layers the file at path and then the environment over base and
// validates the result. An empty path or a missing file only skips the
// file layer.
func Load(path string, base Settings) (Settings, error) {
	s := base

	if path != "" {
		var err error
		s, err = LoadFile(path, s)
		if err != nil {
			return base, err
		}
	}

	s, err := ApplyEnv(s)
	if err != nil {
		return base, err
	}

	if err := s.Window.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

// LoadFile decodes a .toml, .yaml or .yml file over base. Keys absent from
// the file keep base's values.
func LoadFile(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML(path, data, base)
	case ".yaml", ".yml":
		return decodeYAML(path, data, base)
	default:
		return base, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func decodeTOML(path string, data []byte, base Settings) (Settings, error) {
	fs := toFile(base)
	if err := toml.Unmarshal(data, &fs); err != nil {
		pe := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return base, pe
	}
	return fs.apply(path, base)
}

func decodeYAML(path string, data []byte, base Settings) (Settings, error) {
	fs := toFile(base)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		// An empty document decodes to io.EOF and leaves base untouched.
		if len(bytes.TrimSpace(data)) == 0 {
			return base, nil
		}
		return base, &ParseError{Path: path, Err: err}
	}
	return fs.apply(path, base)
}

func toFile(s Settings) fileSettings {
	return fileSettings{
		Backend:  s.Backend.String(),
		API:      s.API.String(),
		LogLevel: s.LogLevel.String(),
		Window:   s.Window,
	}
}

func (fs fileSettings) apply(path string, base Settings) (Settings, error) {
	s := base
	s.Window = fs.Window

	var err error
	if s.Backend, err = ParseBackend(fs.Backend); err != nil {
		return base, &ParseError{Path: path, Err: err}
	}
	if s.API, err = ParseGraphicsAPI(fs.API); err != nil {
		return base, &ParseError{Path: path, Err: err}
	}
	if s.LogLevel, err = ParseLevel(fs.LogLevel); err != nil {
		return base, &ParseError{Path: path, Err: err}
	}
	return s, nil
}

// ParseLevel accepts slog level names (debug, info, warn, error) in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrUnknownValue, s)
	}
	return l, nil
}

// ApplyEnv applies WMA_* environment overrides to s.
func ApplyEnv(s Settings) (Settings, error) {
	return applyEnv(s, os.LookupEnv)
}

func applyEnv(s Settings, lookup func(string) (string, bool)) (Settings, error) {
	env := envReader{lookup: lookup}

	if v, ok := env.get("TITLE"); ok {
		s.Window.Title = v
	}
	env.int("WIDTH", &s.Window.Width)
	env.int("HEIGHT", &s.Window.Height)
	env.int("FPS", &s.Window.TargetFPS)
	env.bool("VSYNC", &s.Window.VSync)
	env.bool("FULLSCREEN", &s.Window.Fullscreen)
	env.bool("RESIZABLE", &s.Window.Resizable)
	env.bool("CLOSE_ON_ESCAPE", &s.Window.CloseOnEscape)
	env.float("SENSITIVITY", &s.Window.Sensitivity)

	if v, ok := env.get("BACKEND"); ok {
		b, err := ParseBackend(v)
		if err != nil {
			return s, fmt.Errorf("%sBACKEND: %w", EnvPrefix, err)
		}
		s.Backend = b
	}
	if v, ok := env.get("API"); ok {
		a, err := ParseGraphicsAPI(v)
		if err != nil {
			return s, fmt.Errorf("%sAPI: %w", EnvPrefix, err)
		}
		s.API = a
	}
	if v, ok := env.get("LOG_LEVEL"); ok {
		l, err := ParseLevel(v)
		if err != nil {
			return s, fmt.Errorf("%sLOG_LEVEL: %w", EnvPrefix, err)
		}
		s.LogLevel = l
	}

	return s, env.err
}

// envReader reads typed WMA_* values and keeps the first conversion error.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) get(name string) (string, bool) {
	v, ok := r.lookup(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) fail(name, value string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s%s=%q", ErrInvalidEnv, EnvPrefix, name, value)
	}
}

func (r *envReader) int(name string, dst *int) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v)
		return
	}
	*dst = n
}

func (r *envReader) float(name string, dst *float64) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(name, v)
		return
	}
	*dst = f
}

func (r *envReader) bool(name string, dst *bool) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		r.fail(name, v)
	}
}
