// Package config holds the program configuration: page geometry, text layout
// and logging. Defaults are embedded and a YAML file may override any of them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"

	"github.com/gompdf/cvpdf/internal/pagination"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	MarginConfig struct {
		Top    float64 `yaml:"top"`
		Right  float64 `yaml:"right"`
		Bottom float64 `yaml:"bottom"`
		Left   float64 `yaml:"left"`
	}

	DocumentConfig struct {
		PageSize string       `yaml:"page_size"`
		Width    float64      `yaml:"width"`
		Height   float64      `yaml:"height"`
		Margin   MarginConfig `yaml:"margin"`
	}

	LayoutConfig struct {
		Hyphenation           bool   `yaml:"hyphenation"`
		MinWordLength         int    `yaml:"min_word_length"`
		Language              string `yaml:"language"`
		HyphenationPatterns   string `yaml:"hyphenation_patterns"`
		HyphenationExceptions string `yaml:"hyphenation_exceptions"`
	}

	RenderConfig struct {
		Backgrounds bool `yaml:"backgrounds"`
		Borders     bool `yaml:"borders"`
		Bookmarks   bool `yaml:"bookmarks"`
		DebugBoxes  bool `yaml:"debug_boxes"`
	}

	Config struct {
		Document DocumentConfig `yaml:"document"`
		Layout   LayoutConfig   `yaml:"layout"`
		Render   RenderConfig   `yaml:"render"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) error {
	// Only known fields are accepted so typos in a file are reported
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// LoadConfiguration reads the configuration from the file at path on top of
// the embedded defaults and validates the result. An empty path yields the
// defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg := &Config{}
	if err := unmarshalConfig(defaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Prepare returns the default configuration file
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

// Dump returns cfg as YAML
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var err error
	if c.Document.Width == 0 && c.Document.Height == 0 {
		if _, ok := pagination.PageSizes[strings.ToLower(c.Document.PageSize)]; !ok {
			err = multierr.Append(err, fmt.Errorf("unknown page size %q", c.Document.PageSize))
		}
	} else if c.Document.Width <= 0 || c.Document.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("page width and height must both be positive, got %vx%v", c.Document.Width, c.Document.Height))
	}
	m := c.Document.Margin
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		err = multierr.Append(err, fmt.Errorf("margins must not be negative"))
	}
	if c.Layout.MinWordLength < 1 {
		err = multierr.Append(err, fmt.Errorf("min_word_length must be at least 1, got %d", c.Layout.MinWordLength))
	}
	if _, lerr := language.Parse(c.Layout.Language); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid layout language %q: %w", c.Layout.Language, lerr))
	}
	if c.Layout.HyphenationExceptions != "" && c.Layout.HyphenationPatterns == "" {
		err = multierr.Append(err, fmt.Errorf("hyphenation_exceptions requires hyphenation_patterns"))
	}
	err = multierr.Append(err, c.Logging.validate())
	return err
}

// PageDimensions returns the page dimensions in points
func (d DocumentConfig) PageDimensions() (float64, float64) {
	if d.Width > 0 && d.Height > 0 {
		return d.Width, d.Height
	}
	size, ok := pagination.PageSizes[strings.ToLower(d.PageSize)]
	if !ok {
		size = pagination.PageSizeLetter
	}
	return size.Width, size.Height
}

// PaginationOptions converts the document section for the pagination engine
func (d DocumentConfig) PaginationOptions() pagination.Options {
	w, h := d.PageDimensions()
	return pagination.Options{
		PageWidth:    w,
		PageHeight:   h,
		MarginTop:    d.Margin.Top,
		MarginRight:  d.Margin.Right,
		MarginBottom: d.Margin.Bottom,
		MarginLeft:   d.Margin.Left,
	}
}

// Tag returns the hyphenation language
func (l LayoutConfig) Tag() language.Tag {
	tag, err := language.Parse(l.Language)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}
