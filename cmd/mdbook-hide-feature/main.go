package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grahms/mdbook-hide-feature/internal/app"
	"github.com/grahms/mdbook-hide-feature/internal/cli"
)

// main is the entrypoint for the mdbook-hide-feature preprocessor.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		slog.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(in io.Reader, out, errW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	return app.NewApp(opts, errW).Run(in, out)
}
