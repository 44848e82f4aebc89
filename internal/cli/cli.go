// Package cli parses the command line mdBook uses to drive a preprocessor
// and maps usage problems to process exit codes.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Mode selects what the process does.
type Mode int

const (
	ModePreprocess Mode = iota // read [context, book] from stdin
	ModeSupports               // answer a renderer capability query
)

// Options is the parsed command line.
type Options struct {
	Mode      Mode
	Renderer  string // set in ModeSupports
	LogLevel  string
	LogFormat string
}

// Parse processes command-line arguments. It returns the options, a
// boolean indicating that the program should exit cleanly (help was
// printed), or an *ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	flagSet := flag.NewFlagSet("mdbook-hide-feature", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mdbook-hide-feature - An mdBook preprocessor that includes source files
and hides blocks gated behind a cargo feature.

Usage:
  mdbook-hide-feature [options]                       preprocess stdin to stdout
  mdbook-hide-feature [options] supports <renderer>   check renderer support

Options:
`)
		flagSet.PrintDefaults()
	}

	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	opts := &Options{Mode: ModePreprocess, LogLevel: logLevel, LogFormat: logFormat}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return opts, false, nil
	}
	switch rest[0] {
	case "supports":
		if len(rest) != 2 {
			return nil, false, &ExitError{Code: 2, Message: "usage: mdbook-hide-feature supports <renderer>"}
		}
		opts.Mode = ModeSupports
		opts.Renderer = rest[1]
		return opts, false, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", rest[0])}
	}
}
