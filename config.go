package manipulate

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// Config is the tunable policy of a Behavior, loadable from TOML:
//
//	log_level = "info"
//	legacy_expansion = false
//
//	[deceleration]
//	translation = 0.00096
//	expansion = 0.0000096
//	rotation = 0.00072
//
//	[screen]
//	width = 1920
//	height = 1080
type Config struct {
	Deceleration    DecelerationPolicy `toml:"deceleration"`
	LegacyExpansion bool               `toml:"legacy_expansion"`
	Screen          ScreenConfig       `toml:"screen"`
	LogLevel        string             `toml:"log_level"`
	Debug           bool               `toml:"debug"`
}

// ScreenConfig is the size of the default containing rectangle.
type ScreenConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

const (
	defaultScreenWidth  = 1920
	defaultScreenHeight = 1080
)

// DefaultConfig returns the standard policy: DefaultDeceleration and a
// 1920x1080 screen.
func DefaultConfig() Config {
	return Config{
		Deceleration: DefaultDeceleration,
		Screen:       ScreenConfig{Width: defaultScreenWidth, Height: defaultScreenHeight},
		LogLevel:     "warn",
	}
}

// Policy returns the deceleration policy the config selects.
// LegacyExpansion overrides the configured expansion rate.
func (c Config) Policy() DecelerationPolicy {
	p := c.Deceleration
	if c.LegacyExpansion {
		p.Expansion = LegacyExpansionDeceleration
	}
	return p
}

// Container returns the default containing rectangle for the configured
// screen.
func (c Config) Container() ContainerFunc {
	return ScreenContainer(c.Screen.Width, c.Screen.Height)
}

// Validate reports the first out-of-range field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	rates := []struct {
		name string
		v    float64
	}{
		{"deceleration.translation", c.Deceleration.Translation},
		{"deceleration.expansion", c.Deceleration.Expansion},
		{"deceleration.rotation", c.Deceleration.Rotation},
	}
	for _, r := range rates {
		if !(r.v > 0) || math.IsInf(r.v, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidConfig, r.name, r.v)
		}
	}
	if !(c.Screen.Width > 0) || !(c.Screen.Height > 0) {
		return fmt.Errorf("%w: screen must have positive size, got %vx%v", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Fields absent from data keep their defaults; unknown fields are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// InitConfig writes DefaultConfig to path when no file exists there, then
// loads it.
func InitConfig(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		packageLogger().Info("initializing config", "path", path)
		if err := SaveConfig(path, DefaultConfig()); err != nil {
			return Config{}, err
		}
	} else if err != nil {
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	return LoadConfig(path)
}

// --- Hot reload ---

// ConfigWatcher reloads a config file when it changes on disk. Parsed
// configs arrive on Changes; the host applies them on its own thread so the
// manipulation path stays single-threaded. Files that fail to parse are
// logged and skipped.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan Config
	done    chan struct{}
}

// WatchConfig starts watching path. The parent directory is watched so
// editors that replace the file are seen.
func WatchConfig(path string) (*ConfigWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	w := &ConfigWatcher{
		path:    abs,
		watcher: fsw,
		changes: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes returns the channel of reloaded configs. It is closed by Close.
func (w *ConfigWatcher) Changes() <-chan Config {
	return w.changes
}

// Latest returns the newest reloaded config without blocking. ok is false
// when nothing new has arrived or the watcher has stopped. Game loops call
// it once per frame.
func (w *ConfigWatcher) Latest() (cfg Config, ok bool) {
	select {
	case cfg, ok = <-w.changes:
		return cfg, ok
	default:
		return Config{}, false
	}
}

// Close stops watching. Safe to call more than once.
func (w *ConfigWatcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return nil
}

func (w *ConfigWatcher) run() {
	defer close(w.changes)
	defer w.watcher.Close()
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := LoadConfig(w.path)
			if err != nil {
				packageLogger().Warn("config reload skipped", "path", w.path, "err", err)
				continue
			}
			w.publish(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			packageLogger().Error("config watcher", "err", err)

		case <-w.done:
			return
		}
	}
}

// publish replaces any config still waiting in the channel so the host
// always sees the newest one.
func (w *ConfigWatcher) publish(cfg Config) {
	for {
		select {
		case w.changes <- cfg:
			return
		default:
		}
		select {
		case <-w.changes:
		default:
		}
	}
}
