package main

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivemoreminix/pyedit/ui"
	"github.com/fivemoreminix/pyedit/ui/buffer"
)

// Config holds the user's editor settings.
type Config struct {
	IndentUnit  int               `mapstructure:"indent_unit" yaml:"indent_unit"`
	TabSize     int               `mapstructure:"tab_size" yaml:"tab_size"`
	HardTabs    bool              `mapstructure:"hard_tabs" yaml:"hard_tabs"`
	LineNumbers bool              `mapstructure:"line_numbers" yaml:"line_numbers"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Colors      map[string]string `mapstructure:"colors" yaml:"colors"` // Highlight tag to style, like "function(variableName)": "blue bold"
}

// LogConfig says where diagnostics go. With no file they are discarded.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		IndentUnit:  4,
		TabSize:     4,
		LineNumbers: true,
		Log:         LogConfig{Level: "info"},
		Colors:      map[string]string{},
	}
}

// DefaultConfigPath is ~/.config/pyedit/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "pyedit", "config.yaml")
}

// Validate reports settings the editor cannot work with.
func (c Config) Validate() error {
	if c.IndentUnit < 1 || c.IndentUnit > 16 {
		return errors.Errorf("indent_unit must be between 1 and 16, got %d", c.IndentUnit)
	}
	if c.TabSize < 1 || c.TabSize > 16 {
		return errors.Errorf("tab_size must be between 1 and 16, got %d", c.TabSize)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if _, err := c.Colorscheme(); err != nil {
		return err
	}
	return nil
}

// Colorscheme returns the default colorscheme with the configured colors applied.
func (c Config) Colorscheme() (buffer.Colorscheme, error) {
	return buffer.ParseColorscheme(ui.DefaultColorscheme, c.Colors)
}

// Apply copies the editing settings onto te.
func (c Config) Apply(te *ui.TextEdit) {
	te.IndentUnit = c.IndentUnit
	te.TabSize = c.TabSize
	te.UseHardTabs = c.HardTabs
	te.LineNumbers = c.LineNumbers
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("indent_unit", defaults.IndentUnit)
	v.SetDefault("tab_size", defaults.TabSize)
	v.SetDefault("hard_tabs", defaults.HardTabs)
	v.SetDefault("line_numbers", defaults.LineNumbers)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v
}

// LoadConfig reads the config file at path on top of the defaults. A missing
// file is not an error.
func LoadConfig(path string) (Config, *viper.Viper, error) {
	v := newViper(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, v, errors.Wrapf(err, "reading config %s", path)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, v, errors.Wrap(err, "reading config")
	}
	cfg, err := decodeConfig(v)
	return cfg, v, err
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// configReloaded is posted to the screen when the config file changes on disk.
type configReloaded struct {
	tcell.EventTime
	cfg Config
	err error
}

// WatchConfig posts a configReloaded event to s every time the file behind v
// is written. The callback runs on viper's watcher goroutine, so the event loop
// is the only place the new settings are applied.
func WatchConfig(v *viper.Viper, s tcell.Screen) {
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.WithField("path", e.Name).Debug("config changed")
		cfg, err := decodeConfig(v)
		ev := &configReloaded{cfg: cfg, err: err}
		ev.SetEventNow()
		if err := s.PostEvent(ev); err != nil {
			logrus.WithError(err).Warn("dropping config reload")
		}
	})
	v.WatchConfig()
}

// WriteDefaultConfig creates a config file with the default settings at path,
// creating its directory. An existing file is left alone unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "encoding default config")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
