package hidefeature

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(src string) []Directive {
	return slices.Collect(NewScanner(DefaultRegistry(DefaultMarker)).Scan(src))
}

func Test_Scanner(t *testing.T) {
	t.Run("should find directives in order with their byte spans", func(t *testing.T) {
		src := "a {{#includehidetest one.rs}} b\n{{#includehidetest dir/two.rs}}"
		got := scanAll(src)
		require.Len(t, got, 2)

		assert.Equal(t, 2, got[0].Start)
		assert.Equal(t, 29, got[0].End)
		assert.Equal(t, "{{#includehidetest one.rs}}", got[0].Raw)
		assert.Equal(t, IncludeWithFilter{Path: "one.rs", Marker: "test", Props: []string{}}, got[0].Kind)
		assert.Equal(t, Position{Line: 1, Column: 3}, got[0].Pos)

		assert.Equal(t, src[got[1].Start:got[1].End], got[1].Raw)
		assert.Equal(t, len(src), got[1].End)
		assert.Equal(t, Position{Line: 2, Column: 1}, got[1].Pos)
		assert.Less(t, got[0].End, got[1].Start)
	})

	t.Run("should keep trailing properties separate from the path", func(t *testing.T) {
		got := scanAll("{{#includehidetest src/lib.rs:1 extra props}}")
		require.Len(t, got, 1)
		inc, ok := got[0].Kind.(IncludeWithFilter)
		require.True(t, ok)
		assert.Equal(t, "src/lib.rs:1", inc.Path)
		assert.Equal(t, []string{"extra", "props"}, inc.Props)
	})

	t.Run("should allow whitespace inside the delimiters", func(t *testing.T) {
		got := scanAll("{{ #includehidetest  a_b-c.rs  }}")
		require.Len(t, got, 1)
		assert.Equal(t, "a_b-c.rs", got[0].Kind.(IncludeWithFilter).Path)
	})

	t.Run("should accept windows separators in the target", func(t *testing.T) {
		got := scanAll(`{{#includehidetest ..\code\main.rs}}`)
		require.Len(t, got, 1)
		assert.Equal(t, `..\code\main.rs`, got[0].Kind.(IncludeWithFilter).Path)
	})

	t.Run("should drop unknown kinds", func(t *testing.T) {
		assert.Empty(t, scanAll("{{#unknownkind foo.txt}} {{#include x.rs}}"))
	})

	t.Run("should be case-sensitive on the kind", func(t *testing.T) {
		assert.Empty(t, scanAll("{{#IncludeHideTest foo.rs}}"))
	})

	t.Run("should not match malformed targets", func(t *testing.T) {
		assert.Empty(t, scanAll(`{{#includehidetest}} {{#includehidetest "q.rs"}} {{#includehidetest a.rs`))
	})

	t.Run("should drop a whitespace-only target", func(t *testing.T) {
		assert.Empty(t, scanAll("{{#includehidetest \n }}"))
	})

	t.Run("should skip escaped directives", func(t *testing.T) {
		got := scanAll(`\{{#includehidetest a.rs}} {{#includehidetest b.rs}}`)
		require.Len(t, got, 1)
		assert.Equal(t, "b.rs", got[0].Kind.(IncludeWithFilter).Path)
	})

	t.Run("should be restartable per call", func(t *testing.T) {
		s := NewScanner(DefaultRegistry(DefaultMarker))
		src := "{{#includehidetest a.rs}}{{#includehidetest b.rs}}"
		first := slices.Collect(s.Scan(src))
		second := slices.Collect(s.Scan(src))
		assert.Equal(t, first, second)
		assert.Len(t, first, 2)
	})

	t.Run("should stop when the consumer stops", func(t *testing.T) {
		s := NewScanner(DefaultRegistry(DefaultMarker))
		n := 0
		for range s.Scan("{{#includehidetest a.rs}}{{#includehidetest b.rs}}") {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})

	t.Run("should dispatch new kinds through the registry", func(t *testing.T) {
		reg := DefaultRegistry("test")
		reg.Register(IncludeFilterPlugin{Name: "includehidebench", Marker: "bench"})
		got := slices.Collect(NewScanner(reg).Scan("{{#includehidebench b.rs}}"))
		require.Len(t, got, 1)
		assert.Equal(t, "bench", got[0].Kind.(IncludeWithFilter).Marker)
	})
}

func Test_Scanner_Tokens_Report_Escapes(t *testing.T) {
	s := NewScanner(DefaultRegistry(DefaultMarker))
	toks := slices.Collect(s.tokens(`x \{{#includehidetest a.rs}} y`))
	require.Len(t, toks, 1)
	assert.True(t, toks[0].escaped)
	assert.Equal(t, `\{{#includehidetest a.rs}}`, toks[0].Raw)
	assert.Nil(t, toks[0].Kind)
}
