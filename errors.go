package hidefeature

import (
	"errors"
	"fmt"
	"strings"
)

// Position represents a position in a document.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, in bytes
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// DirectiveError is the base error type for failures tied to a directive.
type DirectiveError struct {
	Pos       Position // Position of the directive in the document
	Directive string   // Raw directive text
	Message   string
	Context   string // Surrounding lines of the document
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s at %s\nContext:\n%s", e.Directive, e.Message, e.Pos, e.Context)
	}
	return fmt.Sprintf("%s: %s at %s", e.Directive, e.Message, e.Pos)
}

// UnresolvedFileError reports an include target that could not be read.
type UnresolvedFileError struct {
	DirectiveError
	Path string // target path as written in the directive
	Err  error  // loader failure
}

// Error implements the error interface.
func (e *UnresolvedFileError) Error() string {
	msg := fmt.Sprintf("could not read file %q for link %s at %s: %v",
		e.Path, e.Directive, e.Pos, e.Err)
	if e.Context != "" {
		msg += "\nContext:\n" + e.Context
	}
	return msg
}

func (e *UnresolvedFileError) Unwrap() error { return e.Err }

// UnsupportedKindError is returned when a directive kind was produced by a
// plugin but the resolver has no action for it.
type UnsupportedKindError struct {
	DirectiveError
	Kind Kind
}

// Error implements the error interface.
func (e *UnsupportedKindError) Error() string {
	msg := fmt.Sprintf("unsupported directive kind %T in %s at %s", e.Kind, e.Directive, e.Pos)
	if e.Context != "" {
		msg += "\nContext:\n" + e.Context
	}
	return msg
}

func (e *DirectiveError) base() *DirectiveError { return e }

// withContext attaches the surrounding lines of src to a directive error.
func withContext(err error, src string) error {
	var de interface{ base() *DirectiveError }
	if errors.As(err, &de) {
		b := de.base()
		b.Context = extractContext(src, b.Pos)
	}
	return err
}

// extractContext extracts a snippet of text around the error position for context.
// It tries to include a few lines before and after the error.
func extractContext(content string, pos Position) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	if pos.Line > len(lines) {
		return content
	}

	startLine := max(0, pos.Line-3)
	endLine := min(len(lines)-1, pos.Line+1)

	var contextBuilder strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := i + 1
		if lineNum == pos.Line {
			prefix := fmt.Sprintf("-> %d: ", lineNum)
			contextBuilder.WriteString(prefix + lines[i] + "\n")
			if pos.Column <= len(lines[i])+1 {
				contextBuilder.WriteString(strings.Repeat(" ", len(prefix)+pos.Column-1) + "^\n")
			}
		} else {
			contextBuilder.WriteString(fmt.Sprintf("   %d: %s\n", lineNum, lines[i]))
		}
	}

	return contextBuilder.String()
}
