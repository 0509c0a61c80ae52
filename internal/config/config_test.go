package config

import (
	"os"
	"path/filepath"
	"testing"

	"photoredact/internal/redact"
)

func clearEnv(t *testing.T) {
	t.Setenv("PHOTOREDACT_LOG_LEVEL", "")
	t.Setenv("PHOTOREDACT_COPYRIGHT", "")
	t.Setenv("PHOTOREDACT_ARTIST", "")
	t.Setenv("PHOTOREDACT_OFFSET_TIME", "")
	t.Setenv("PHOTOREDACT_HEIC_QUALITY", "")
	t.Setenv("PHOTOREDACT_MAX_WIDTH", "")
	t.Setenv("PHOTOREDACT_STRIP_PNG", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Copyright != redact.DefaultCopyright {
		t.Fatalf("expected default copyright, got %q", cfg.Copyright)
	}
	if cfg.Artist != redact.DefaultArtist {
		t.Fatalf("expected default artist, got %q", cfg.Artist)
	}
	if cfg.OffsetTime != redact.DefaultOffsetTime {
		t.Fatalf("expected default offset, got %q", cfg.OffsetTime)
	}
	if cfg.HeicQuality != redact.DefaultHeicQuality {
		t.Fatalf("expected default quality, got %v", cfg.HeicQuality)
	}
	if cfg.MaxWidth != 0 {
		t.Fatalf("expected no width bound, got %d", cfg.MaxWidth)
	}
	if cfg.StripPNG {
		t.Fatal("expected PNG stripping off by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTOREDACT_COPYRIGHT", "© Example Press")
	t.Setenv("PHOTOREDACT_OFFSET_TIME", "+01:00")
	t.Setenv("PHOTOREDACT_HEIC_QUALITY", "0.7")
	t.Setenv("PHOTOREDACT_MAX_WIDTH", "2048")
	t.Setenv("PHOTOREDACT_STRIP_PNG", "true")

	cfg := Load()
	if cfg.Copyright != "© Example Press" {
		t.Fatalf("expected copyright override, got %q", cfg.Copyright)
	}
	if cfg.OffsetTime != "+01:00" {
		t.Fatalf("expected offset override, got %q", cfg.OffsetTime)
	}
	if cfg.HeicQuality != 0.7 {
		t.Fatalf("expected quality 0.7, got %v", cfg.HeicQuality)
	}
	if cfg.MaxWidth != 2048 {
		t.Fatalf("expected max width 2048, got %d", cfg.MaxWidth)
	}
	if !cfg.StripPNG {
		t.Fatal("expected PNG stripping on")
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PHOTOREDACT_HEIC_QUALITY", "lots")
	t.Setenv("PHOTOREDACT_MAX_WIDTH", "wide")

	cfg := Load()
	if cfg.HeicQuality != redact.DefaultHeicQuality {
		t.Fatalf("expected default quality on parse failure, got %v", cfg.HeicQuality)
	}
	if cfg.MaxWidth != 0 {
		t.Fatalf("expected default width on parse failure, got %d", cfg.MaxWidth)
	}
}

func TestApplyProfileOverridesOnlySetKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	body := "artist: Press Desk\nmax_width: 1600\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load().ApplyProfile(path)
	if err != nil {
		t.Fatalf("ApplyProfile: %v", err)
	}
	if cfg.Artist != "Press Desk" {
		t.Fatalf("expected profile artist, got %q", cfg.Artist)
	}
	if cfg.MaxWidth != 1600 {
		t.Fatalf("expected profile width, got %d", cfg.MaxWidth)
	}
	if cfg.Copyright != redact.DefaultCopyright {
		t.Fatalf("unset profile key changed copyright to %q", cfg.Copyright)
	}
}

func TestApplyProfileErrors(t *testing.T) {
	if _, err := Load().ApplyProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing profile")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("{ unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load().ApplyProfile(path); err == nil {
		t.Fatal("expected an error for unparseable YAML")
	}
}

func TestRedactionOptions(t *testing.T) {
	cfg := Config{Copyright: "c", Artist: "a", OffsetTime: "+01:00", HeicQuality: 0.9}
	opts := cfg.RedactionOptions()
	if opts.Copyright != "c" || opts.Artist != "a" || opts.OffsetTime != "+01:00" || opts.HeicQuality != 0.9 {
		t.Fatalf("options do not mirror the config: %+v", opts)
	}
}
