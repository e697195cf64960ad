package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/karnival/limonite/internal/frontmatter"
	"github.com/karnival/limonite/internal/model"
	"github.com/karnival/limonite/internal/render"
)

// Config controls how content is parsed and rendered.
type Config struct {
	PostURLPrefix   string   `mapstructure:"postURLPrefix"`
	PostFrontMatter string   `mapstructure:"postFrontMatter"`
	MissingVariable string   `mapstructure:"missingVariable"`
	Workers         int      `mapstructure:"workers"`
	LogLevel        string   `mapstructure:"logLevel"`
	Markdown        Markdown `mapstructure:"markdown"`
}

type Markdown struct {
	GFM           bool `mapstructure:"gfm"`
	AutoHeadingID bool `mapstructure:"autoHeadingID"`
	HardWraps     bool `mapstructure:"hardWraps"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		PostURLPrefix:   model.DefaultURLPrefix,
		PostFrontMatter: frontmatter.Required.String(),
		MissingVariable: render.MissingEmpty.String(),
		Workers:         4,
		LogLevel:        "info",
		Markdown: Markdown{
			GFM:           true,
			AutoHeadingID: true,
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := frontmatter.ParsePolicy(c.PostFrontMatter); err != nil {
		errs = append(errs, fmt.Errorf("postFrontMatter: %w", err))
	}
	if _, err := render.ParseMissingPolicy(c.MissingVariable); err != nil {
		errs = append(errs, fmt.Errorf("missingVariable: %w", err))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers: must be at least 1, got %d", c.Workers))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	return errors.Join(errs...)
}

// MarkdownOptions converts the markdown section for the renderer.
func (c Config) MarkdownOptions() render.MarkdownOptions {
	return render.MarkdownOptions{
		GFM:           c.Markdown.GFM,
		AutoHeadingID: c.Markdown.AutoHeadingID,
		HardWraps:     c.Markdown.HardWraps,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
