// Package config reads the server settings from the environment.
package config

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Sreeharips1/portfolio/internal/carousel"
	"github.com/Sreeharips1/portfolio/internal/contact"
	"github.com/Sreeharips1/portfolio/internal/typewriter"
)

// Config holds the server settings.
type Config struct {
	Port             string
	Mode             string
	ContactAddress   string
	AssetsDir        string
	CarouselInterval time.Duration
	TypewriterDelay  time.Duration
	TypewriterStep   time.Duration
	CaretPeriod      time.Duration
	ViewTTL          time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:             "8080",
		Mode:             "release",
		ContactAddress:   contact.DefaultAddress,
		AssetsDir:        "./public",
		CarouselInterval: carousel.DefaultInterval,
		TypewriterDelay:  typewriter.DefaultBaseDelay,
		TypewriterStep:   typewriter.DefaultStep,
		CaretPeriod:      typewriter.DefaultCaretPeriod,
		ViewTTL:          10 * time.Minute,
	}
}

// FromEnv overlays environment variables on the defaults. A .env file is
// loaded by the caller's godotenv/autoload import.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	strs := []struct {
		key string
		dst *string
	}{
		{"PORT", &cfg.Port},
		{"GIN_MODE", &cfg.Mode},
		{"CONTACT_EMAIL", &cfg.ContactAddress},
		{"ASSETS_DIR", &cfg.AssetsDir},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"CAROUSEL_INTERVAL", &cfg.CarouselInterval},
		{"TYPEWRITER_DELAY", &cfg.TypewriterDelay},
		{"TYPEWRITER_STEP", &cfg.TypewriterStep},
		{"CARET_PERIOD", &cfg.CaretPeriod},
		{"VIEW_TTL", &cfg.ViewTTL},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return cfg, errors.Wrapf(err, "invalid %s", d.key)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checks that the settings can drive the widgets.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return errors.Errorf("mode must be one of debug, release or test, got %q", c.Mode)
	}
	if c.ContactAddress == "" {
		return errors.New("contact address is required")
	}
	if c.CarouselInterval <= 0 {
		return errors.Errorf("carousel interval must be positive, got %s", c.CarouselInterval)
	}
	if c.TypewriterDelay < 0 {
		return errors.Errorf("typewriter delay must not be negative, got %s", c.TypewriterDelay)
	}
	if c.TypewriterStep <= 0 {
		return errors.Errorf("typewriter step must be positive, got %s", c.TypewriterStep)
	}
	if c.CaretPeriod <= 0 {
		return errors.Errorf("caret period must be positive, got %s", c.CaretPeriod)
	}
	if c.ViewTTL <= 0 {
		return errors.Errorf("view ttl must be positive, got %s", c.ViewTTL)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
