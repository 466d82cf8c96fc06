// Package config loads toggle attributes from an optional aretha.yaml file.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-aretha/aretha/pkg/animation"
	"github.com/go-aretha/aretha/pkg/errors"
	"github.com/go-aretha/aretha/pkg/gestures"
	"github.com/go-aretha/aretha/pkg/toggle"
)

// FileName is the name of the configuration file looked up in a directory.
const FileName = "aretha.yaml"

// Config represents the optional aretha.yaml configuration.
type Config struct {
	Toggle ToggleConfig `yaml:"toggle"`
	Store  StoreConfig  `yaml:"store"`
}

// ToggleConfig holds the construction attributes of a toggle. Pointer
// fields distinguish "unset" from an explicit zero.
type ToggleConfig struct {
	On                *bool    `yaml:"on,omitempty"`
	Radius            *float64 `yaml:"radius,omitempty"`
	TouchSlop         float64  `yaml:"touch_slop,omitempty"`
	AnimationDuration string   `yaml:"animation_duration,omitempty"`
	Curve             string   `yaml:"curve,omitempty"`
}

// StoreConfig locates the persistent state store.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Attributes are resolved toggle construction values.
type Attributes struct {
	State             toggle.State
	TouchSlop         float64
	AnimationDuration time.Duration
	// Curve is the settle easing; nil means linear.
	Curve     func(float64) float64
	StorePath string
}

// DefaultAttributes returns the attributes of a toggle without configuration.
func DefaultAttributes() Attributes {
	return Attributes{
		State:             toggle.DefaultState(),
		TouchSlop:         gestures.DefaultTouchSlop,
		AnimationDuration: toggle.DefaultDuration,
	}
}

// Options converts the attributes into controller options.
func (a Attributes) Options() toggle.Options {
	return toggle.Options{
		TouchSlop: a.TouchSlop,
		Duration:  a.AnimationDuration,
		Curve:     a.Curve,
	}
}

// LoadOptional reads aretha.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.New("config.LoadOptional", errors.KindConfig, fmt.Errorf("failed to read %s: %w", FileName, err))
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New("config.Parse", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	return &cfg, nil
}

// Resolve applies defaults to cfg and validates the result.
func (cfg *Config) Resolve() (Attributes, error) {
	attrs := DefaultAttributes()
	if cfg.Toggle.On != nil {
		attrs.State.IsOn = *cfg.Toggle.On
	}
	if cfg.Toggle.Radius != nil {
		attrs.State.ClipRadius = toggle.ClampRadius(*cfg.Toggle.Radius)
	}
	if cfg.Toggle.TouchSlop < 0 {
		return Attributes{}, errors.New("config.Resolve", errors.KindConfig,
			fmt.Errorf("toggle.touch_slop must not be negative (got %v)", cfg.Toggle.TouchSlop))
	}
	if cfg.Toggle.TouchSlop > 0 {
		attrs.TouchSlop = cfg.Toggle.TouchSlop
	}
	if s := cfg.Toggle.AnimationDuration; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Attributes{}, errors.New("config.Resolve", errors.KindConfig,
				fmt.Errorf("toggle.animation_duration: %w", err))
		}
		if d == 0 {
			// Zero means "no animation" in the file; the controller spells
			// that as a negative duration.
			d = -1
		}
		attrs.AnimationDuration = d
	}
	if name := cfg.Toggle.Curve; name != "" {
		curve, err := animation.ParseCurve(name)
		if err != nil {
			return Attributes{}, errors.New("config.Resolve", errors.KindConfig,
				fmt.Errorf("toggle.curve: %w", err))
		}
		attrs.Curve = curve
	}
	attrs.StorePath = cfg.Store.Path
	return attrs, nil
}

// Resolve loads aretha.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (Attributes, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return Attributes{}, err
	}
	return cfg.Resolve()
}
