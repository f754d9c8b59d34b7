package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/selection"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CELLGRID_GRID_DAYS.
	EnvPrefix = "CELLGRID"

	DefaultDays      = 30
	DefaultLocations = 20
	DefaultTheme     = "tokyo-night"
)

// ErrInvalidConfig reports a config value that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `json:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// GridConfig describes the day and location axes.
type GridConfig struct {
	Days           int
	Locations      int
	DayValues      []int // explicit row values, overrides Days
	LocationValues []int // explicit column values, overrides Locations
}

// Index builds the grid index. Explicit axis values win over counts.
func (g GridConfig) Index() (*grid.Index, error) {
	rows := g.DayValues
	if len(rows) == 0 {
		rows = grid.Sequence(g.Days)
	}
	cols := g.LocationValues
	if len(cols) == 0 {
		cols = grid.Sequence(g.Locations)
	}
	return grid.New(rows, cols)
}

// SameShape reports whether both configs describe the same axes.
func (g GridConfig) SameShape(other GridConfig) bool {
	a, errA := g.Index()
	b, errB := other.Index()
	if errA != nil || errB != nil {
		return false
	}
	return slices.Equal(a.Rows(), b.Rows()) && slices.Equal(a.Columns(), b.Columns())
}

// SelectionConfig holds the selection policy.
type SelectionConfig struct {
	Drag          bool
	AppendRange   bool
	ModifierClick bool // a modifier-held press is a click, its release is dropped
	History       int
}

// EngineOptions converts the policy into engine options.
func (s SelectionConfig) EngineOptions() selection.Options {
	return selection.Options{Drag: s.Drag, AppendRange: s.AppendRange}
}

// Config holds the application configuration
type Config struct {
	Paths     *Paths
	Grid      GridConfig
	Selection SelectionConfig
	UI        UISettings
	KeyMap    KeyMapConfig
	LogLevel  logging.Level
}

// UIOnlyChange reports whether next differs from c in the ui block alone,
// such as after SaveUISettings rewrote the file.
func (c *Config) UIOnlyChange(next *Config) bool {
	if c == nil || next == nil {
		return false
	}
	return c.Grid.SameShape(next.Grid) &&
		c.Selection == next.Selection &&
		c.LogLevel == next.LogLevel &&
		maps.EqualFunc(c.KeyMap.Bindings, next.KeyMap.Bindings, slices.Equal[[]string])
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfig(paths), nil
}

func defaultConfig(paths *Paths) *Config {
	return &Config{
		Paths: paths,
		Grid: GridConfig{
			Days:      DefaultDays,
			Locations: DefaultLocations,
		},
		Selection: SelectionConfig{
			Drag:          true,
			ModifierClick: true,
			History:       64,
		},
		UI:       defaultUISettings(),
		KeyMap:   KeyMapConfig{},
		LogLevel: logging.LevelInfo,
	}
}

// Index builds the grid index for the configured axes.
func (c *Config) Index() (*grid.Index, error) {
	return c.Grid.Index()
}

// Engine builds a selection engine for the configured grid and policy.
func (c *Config) Engine() (*selection.Engine, error) {
	idx, err := c.Index()
	if err != nil {
		return nil, err
	}
	return selection.NewEngine(idx, c.Selection.EngineOptions()), nil
}

// Option customizes how Load reads the configuration.
type Option func(*viper.Viper) error

// WithFlag binds a command-line flag to a config key. The flag only takes
// precedence when it was set explicitly.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if flag == nil {
			return nil
		}
		return v.BindPFlag(key, flag)
	}
}

// WithOverride forces key to value, above every other source.
func WithOverride(key string, value any) Option {
	return func(v *viper.Viper) error {
		v.Set(key, value)
		return nil
	}
}

// Load reads ~/.cellgrid/config.json if present, then applies environment
// overrides.
func Load(opts ...Option) (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths, opts...)
}

// LoadFrom reads the config file at paths.ConfigPath. A missing file yields
// the defaults.
func LoadFrom(paths *Paths, opts ...Option) (*Config, error) {
	cfg := defaultConfig(paths)
	v := newViper(paths.ConfigPath, cfg)
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", paths.ConfigPath, err)
	}

	cfg.Grid = GridConfig{
		Days:           v.GetInt("grid.days"),
		Locations:      v.GetInt("grid.locations"),
		DayValues:      v.GetIntSlice("grid.day_values"),
		LocationValues: v.GetIntSlice("grid.location_values"),
	}
	cfg.Selection = SelectionConfig{
		Drag:          v.GetBool("selection.drag"),
		AppendRange:   v.GetBool("selection.append_range"),
		ModifierClick: v.GetBool("selection.modifier_click"),
		History:       v.GetInt("selection.history"),
	}
	cfg.UI = UISettings{
		ShowKeymapHints: v.GetBool("ui.show_keymap_hints"),
		Theme:           v.GetString("ui.theme"),
	}
	if bindings := v.GetStringMapStringSlice("keymap.bindings"); len(bindings) > 0 {
		cfg.KeyMap = KeyMapConfig{Bindings: bindings}
	}

	cfg.LogLevel = logging.ParseLevel(v.GetString("log.level"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the grid can be built and the limits make sense.
func (c *Config) Validate() error {
	if len(c.Grid.DayValues) == 0 && c.Grid.Days <= 0 {
		return fmt.Errorf("%w: grid.days must be positive, got %d", ErrInvalidConfig, c.Grid.Days)
	}
	if len(c.Grid.LocationValues) == 0 && c.Grid.Locations <= 0 {
		return fmt.Errorf("%w: grid.locations must be positive, got %d", ErrInvalidConfig, c.Grid.Locations)
	}
	if c.Selection.History < 0 {
		return fmt.Errorf("%w: selection.history must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Grid.Index(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func newViper(path string, defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("grid.days", defaults.Grid.Days)
	v.SetDefault("grid.locations", defaults.Grid.Locations)
	v.SetDefault("grid.day_values", []int{})
	v.SetDefault("grid.location_values", []int{})
	v.SetDefault("selection.drag", defaults.Selection.Drag)
	v.SetDefault("selection.append_range", defaults.Selection.AppendRange)
	v.SetDefault("selection.modifier_click", defaults.Selection.ModifierClick)
	v.SetDefault("selection.history", defaults.Selection.History)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("ui.show_keymap_hints", defaults.UI.ShowKeymapHints)
	v.SetDefault("log.level", defaults.LogLevel.String())
	return v
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
