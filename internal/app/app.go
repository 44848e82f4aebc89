// Package app wires the command line, the mdBook protocol and the
// directive engine together.
package app

import (
	"fmt"
	"io"
	"log/slog"

	hidefeature "github.com/grahms/mdbook-hide-feature"
	"github.com/grahms/mdbook-hide-feature/internal/book"
	"github.com/grahms/mdbook-hide-feature/internal/cli"
	"github.com/grahms/mdbook-hide-feature/internal/config"
)

// App runs one preprocessor invocation.
type App struct {
	opts *cli.Options
	log  *slog.Logger
}

// NewApp returns an App logging to logW. stdout is reserved for the book.
func NewApp(opts *cli.Options, logW io.Writer) *App {
	return &App{opts: opts, log: newLogger(opts.LogLevel, opts.LogFormat, logW)}
}

// Run executes the selected mode.
func (a *App) Run(in io.Reader, out io.Writer) error {
	switch a.opts.Mode {
	case cli.ModeSupports:
		// Every renderer gets the same text, so all are supported.
		a.log.Debug("renderer supported", "renderer", a.opts.Renderer)
		return nil
	default:
		return a.preprocess(in, out)
	}
}

func (a *App) preprocess(in io.Reader, out io.Writer) error {
	ctx, b, err := book.ParseInput(in)
	if err != nil {
		return err
	}
	a.log.Debug("preprocessor input", "root", ctx.Root, "renderer", ctx.Renderer, "mdbook_version", ctx.MDBookVersion)

	cfg, err := config.Load(ctx, config.Name)
	if err != nil {
		return err
	}

	engine := hidefeature.NewEngine(
		hidefeature.DefaultRegistry(cfg.Marker),
		hidefeature.WithEscapePolicy(cfg.Escape),
		hidefeature.WithLogger(a.log.With("component", "engine")),
	)

	changed := 0
	err = b.ForEachChapter(func(c *book.Chapter) error {
		if c.Draft {
			return nil
		}
		if cfg.Excluded(c.Path) {
			a.log.Debug("chapter excluded", "chapter", c.Path)
			return nil
		}
		expanded, err := engine.ReplaceAll(c.Content, cfg.BaseDir(c.Path))
		if err != nil {
			return fmt.Errorf("chapter %q (%s): %w", c.Name, c.Path, err)
		}
		if expanded != c.Content {
			a.log.Debug("chapter rewritten", "chapter", c.Path, "old", c.Content, "new", expanded)
			c.Content = expanded
			changed++
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.log.Debug("book preprocessed", "chapters_changed", changed)

	_, err = b.WriteTo(out)
	return err
}
