package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cvpdf.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	w, h := cfg.Document.PageDimensions()
	if w != 612 || h != 792 {
		t.Errorf("Expected Letter, got %vx%v", w, h)
	}
	if !cfg.Layout.Hyphenation || cfg.Layout.MinWordLength != 6 || cfg.Layout.Tag().String() != "en-US" {
		t.Errorf("Unexpected layout defaults %+v", cfg.Layout)
	}
	opts := cfg.Document.PaginationOptions()
	if opts.MarginTop != 36 || opts.MarginLeft != 36 {
		t.Errorf("Unexpected margins %+v", opts)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
document:
  page_size: a4
  margin: {top: 0, right: 0, bottom: 0, left: 0}
layout:
  hyphenation: false
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	w, h := cfg.Document.PageDimensions()
	if w != 595.28 || h != 841.89 {
		t.Errorf("Expected A4, got %vx%v", w, h)
	}
	if cfg.Layout.Hyphenation || cfg.Layout.MinWordLength != 6 {
		t.Errorf("Expected only hyphenation to change, got %+v", cfg.Layout)
	}
	if cfg.Render.Bookmarks != true {
		t.Errorf("Expected untouched sections to keep defaults")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	if _, err := LoadConfiguration(writeConfig(t, "")); err != nil {
		t.Errorf("Expected an empty file to keep the defaults, got %v", err)
	}
}

func TestLoadUnknownField(t *testing.T) {
	_, err := LoadConfiguration(writeConfig(t, "document:\n  paper: a4\n"))
	if err == nil || !strings.Contains(err.Error(), "paper") {
		t.Errorf("Expected unknown field error, got %v", err)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	path := writeConfig(t, `
document:
  page_size: tabloid
layout:
  min_word_length: 0
  language: "not a language!"
logging:
  console:
    level: loud
`)
	_, err := LoadConfiguration(path)
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Errorf("Expected 4 errors, got %d: %v", n, err)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(string(data), "page_size: letter") {
		t.Errorf("Unexpected dump:\n%s", data)
	}
	if string(Prepare()) != string(defaultConfig) {
		t.Errorf("Prepare must return the embedded defaults")
	}
}

func TestPrepareLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cvpdf.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}
	log, closer, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	log.Debug("hello from test")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("Expected message in log file, got %q", data)
	}
}
