package hidefeature

import (
	"fmt"
	"regexp"
	"strings"
)

// SuppressPrefix is prepended to every hidden line. mdBook hides lines
// starting with "# " inside Rust code blocks.
const SuppressPrefix = "# "

// filterState is the brace-balance state carried from one line to the next.
type filterState struct {
	skipping bool
	depth    int
}

// step consumes one line and reports whether it must be suppressed.
// Braces on the marker line itself are not counted.
func (s filterState) step(line string, start *regexp.Regexp) (filterState, bool) {
	if s.skipping {
		s.depth += strings.Count(line, "{") - strings.Count(line, "}")
		if s.depth == 0 {
			s.skipping = false
		}
		return s, true
	}
	if start.MatchString(line) {
		s.skipping = true
		return s, true
	}
	return s, false
}

func featureStart(marker string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^\s*#\s*\[cfg\(feature = "%s"\)\]`, regexp.QuoteMeta(marker)))
}

// HideFeature suppresses every block introduced by
// `#[cfg(feature = "<marker>")]`, up to the line where the braces opened
// after it are balanced again. Every output line ends with a newline.
func HideFeature(contents, marker string) string {
	out, _ := hideFeature(contents, marker)
	return out
}

func hideFeature(contents, marker string) (string, filterState) {
	start := featureStart(marker)

	var sb strings.Builder
	sb.Grow(len(contents) + 64)

	var st filterState
	var hide bool
	for _, line := range splitLines(contents) {
		st, hide = st.step(line, start)
		if hide {
			sb.WriteString(SuppressPrefix)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), st
}

// splitLines splits on "\n", drops a trailing "\r" from each line and does
// not report an empty line after a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
