// Package config reads the preprocessor's settings from the book
// configuration that mdBook forwards in the preprocessor context.
//
//	[preprocessor.hide-feature]
//	marker = "test"                 # feature hidden by includehidetest
//	exclude = ["drafts/**"]         # chapters left untouched
//	escape = "keep"                 # or "strip"
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	hidefeature "github.com/grahms/mdbook-hide-feature"
	"github.com/grahms/mdbook-hide-feature/internal/book"
)

// Name is the preprocessor's table name under [preprocessor].
const Name = "hide-feature"

const defaultSrc = "src"

// Config holds the resolved preprocessor settings.
type Config struct {
	Marker    string
	Exclude   []string
	Escape    hidefeature.EscapePolicy
	SourceDir string // book source directory, chapter paths are relative to it
}

type bookTable struct {
	Src string `json:"src"`
}

type preprocessorTable struct {
	Marker  *string  `json:"marker"`
	Exclude []string `json:"exclude"`
	Escape  string   `json:"escape"`
}

type rawConfig struct {
	Book         bookTable                  `json:"book"`
	Preprocessor map[string]json.RawMessage `json:"preprocessor"`
}

// Default returns the settings used when the book configures nothing.
func Default() Config {
	return Config{
		Marker:    hidefeature.DefaultMarker,
		Escape:    hidefeature.EscapeKeep,
		SourceDir: defaultSrc,
	}
}

// Load extracts the settings of the preprocessor table name from ctx.
// Keys mdBook itself uses in that table (command, before, after,
// renderers) and unknown keys are ignored.
func Load(ctx *book.Context, name string) (*Config, error) {
	cfg := Default()

	var raw rawConfig
	if len(ctx.Config) > 0 && string(ctx.Config) != "null" {
		if err := json.Unmarshal(ctx.Config, &raw); err != nil {
			return nil, fmt.Errorf("decode book config: %w", err)
		}
	}

	src := raw.Book.Src
	if src == "" {
		src = defaultSrc
	}
	if filepath.IsAbs(src) || ctx.Root == "" {
		cfg.SourceDir = src
	} else {
		cfg.SourceDir = filepath.Join(ctx.Root, src)
	}

	table, ok := raw.Preprocessor[name]
	if !ok {
		return &cfg, nil
	}
	var pt preprocessorTable
	if err := json.Unmarshal(table, &pt); err != nil {
		return nil, fmt.Errorf("decode [preprocessor.%s]: %w", name, err)
	}

	if pt.Marker != nil {
		if *pt.Marker == "" {
			return nil, fmt.Errorf("[preprocessor.%s] marker must not be empty", name)
		}
		cfg.Marker = *pt.Marker
	}

	for _, pattern := range pt.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("[preprocessor.%s] invalid exclude pattern %q", name, pattern)
		}
	}
	cfg.Exclude = pt.Exclude

	switch pt.Escape {
	case "", "keep":
		cfg.Escape = hidefeature.EscapeKeep
	case "strip":
		cfg.Escape = hidefeature.EscapeStrip
	default:
		return nil, fmt.Errorf("[preprocessor.%s] invalid escape %q: must be 'keep' or 'strip'", name, pt.Escape)
	}

	return &cfg, nil
}

// Excluded reports whether a chapter path matches one of the exclude
// patterns. Paths are matched with forward slashes.
func (c *Config) Excluded(chapterPath string) bool {
	p := filepath.ToSlash(chapterPath)
	for _, pattern := range c.Exclude {
		if match, _ := doublestar.Match(pattern, p); match {
			return true
		}
	}
	return false
}

// BaseDir returns the directory that directives of a chapter are resolved
// against: the chapter's own directory inside the source directory.
func (c *Config) BaseDir(chapterPath string) string {
	return filepath.Join(c.SourceDir, filepath.Dir(filepath.FromSlash(chapterPath)))
}
