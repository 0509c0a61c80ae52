// Package config loads process settings from the environment, with an
// optional YAML redaction profile layered on top.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"photoredact/internal/redact"
)

// Config carries every knob the CLI exposes. Precedence: built-in default,
// then environment, then profile file.
type Config struct {
	LogLevel string

	Copyright  string
	Artist     string
	OffsetTime string

	HeicQuality float64
	MaxWidth    int

	StripPNG bool
}

func Load() Config {
	return Config{
		LogLevel:    mustEnv("PHOTOREDACT_LOG_LEVEL", "info"),
		Copyright:   mustEnv("PHOTOREDACT_COPYRIGHT", redact.DefaultCopyright),
		Artist:      mustEnv("PHOTOREDACT_ARTIST", redact.DefaultArtist),
		OffsetTime:  mustEnv("PHOTOREDACT_OFFSET_TIME", redact.DefaultOffsetTime),
		HeicQuality: mustEnvFloat("PHOTOREDACT_HEIC_QUALITY", redact.DefaultHeicQuality),
		MaxWidth:    mustEnvInt("PHOTOREDACT_MAX_WIDTH", 0),
		StripPNG:    mustEnvBool("PHOTOREDACT_STRIP_PNG", false),
	}
}

// profile is the YAML file shape. Pointer fields distinguish "absent" from
// a zero value, so a profile only overrides the keys it sets.
type profile struct {
	Copyright   *string  `yaml:"copyright"`
	Artist      *string  `yaml:"artist"`
	OffsetTime  *string  `yaml:"offset_time"`
	HeicQuality *float64 `yaml:"heic_quality"`
	MaxWidth    *int     `yaml:"max_width"`
	StripPNG    *bool    `yaml:"strip_png"`
}

// ApplyProfile overlays the YAML profile at path onto c.
func (c Config) ApplyProfile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return c, fmt.Errorf("parse profile: %w", err)
	}
	if p.Copyright != nil {
		c.Copyright = *p.Copyright
	}
	if p.Artist != nil {
		c.Artist = *p.Artist
	}
	if p.OffsetTime != nil {
		c.OffsetTime = *p.OffsetTime
	}
	if p.HeicQuality != nil {
		c.HeicQuality = *p.HeicQuality
	}
	if p.MaxWidth != nil {
		c.MaxWidth = *p.MaxWidth
	}
	if p.StripPNG != nil {
		c.StripPNG = *p.StripPNG
	}
	return c, nil
}

// RedactionOptions converts the config into engine options.
func (c Config) RedactionOptions() redact.Options {
	return redact.Options{
		Copyright:   c.Copyright,
		Artist:      c.Artist,
		OffsetTime:  c.OffsetTime,
		HeicQuality: c.HeicQuality,
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
