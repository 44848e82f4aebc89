package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hidefeature "github.com/grahms/mdbook-hide-feature"
	"github.com/grahms/mdbook-hide-feature/internal/book"
)

func ctxWith(root, cfg string) *book.Context {
	return &book.Context{Root: root, Config: json.RawMessage(cfg)}
}

func Test_Load(t *testing.T) {
	t.Run("should use defaults without a preprocessor table", func(t *testing.T) {
		cfg, err := Load(ctxWith("/book", `{"book": {"title": "x"}}`), Name)
		require.NoError(t, err)
		assert.Equal(t, "test", cfg.Marker)
		assert.Equal(t, hidefeature.EscapeKeep, cfg.Escape)
		assert.Empty(t, cfg.Exclude)
		assert.Equal(t, filepath.Join("/book", "src"), cfg.SourceDir)
	})

	t.Run("should accept a missing config", func(t *testing.T) {
		cfg, err := Load(&book.Context{}, Name)
		require.NoError(t, err)
		assert.Equal(t, "src", cfg.SourceDir)
	})

	t.Run("should honour book.src", func(t *testing.T) {
		cfg, err := Load(ctxWith("/book", `{"book": {"src": "content"}}`), Name)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/book", "content"), cfg.SourceDir)

		abs, err := Load(ctxWith("/book", `{"book": {"src": "/elsewhere"}}`), Name)
		require.NoError(t, err)
		assert.Equal(t, "/elsewhere", abs.SourceDir)
	})

	t.Run("should read the preprocessor table", func(t *testing.T) {
		cfg, err := Load(ctxWith("", `{"preprocessor": {"hide-feature": {
			"command": "mdbook-hide-feature",
			"marker": "bench",
			"exclude": ["drafts/**", "*.txt"],
			"escape": "strip"
		}}}`), Name)
		require.NoError(t, err)
		assert.Equal(t, "bench", cfg.Marker)
		assert.Equal(t, hidefeature.EscapeStrip, cfg.Escape)
		assert.Equal(t, []string{"drafts/**", "*.txt"}, cfg.Exclude)
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		for _, table := range []string{
			`{"marker": ""}`,
			`{"marker": 3}`,
			`{"escape": "drop"}`,
			`{"exclude": ["[unclosed"]}`,
		} {
			_, err := Load(ctxWith("", `{"preprocessor": {"hide-feature": `+table+`}}`), Name)
			assert.Error(t, err, table)
		}
		_, err := Load(ctxWith("", `[]`), Name)
		assert.Error(t, err)
	})
}

func Test_Config_Excluded(t *testing.T) {
	cfg := Default()
	cfg.Exclude = []string{"drafts/**", "appendix/*.md"}

	assert.True(t, cfg.Excluded("drafts/a.md"))
	assert.True(t, cfg.Excluded("drafts/deep/b.md"))
	assert.True(t, cfg.Excluded("appendix/c.md"))
	assert.False(t, cfg.Excluded("appendix/deep/c.md"))
	assert.False(t, cfg.Excluded("intro.md"))
}

func Test_Config_BaseDir(t *testing.T) {
	cfg := Default()
	cfg.SourceDir = filepath.Join("book", "src")
	assert.Equal(t, filepath.Join("book", "src", "part1"), cfg.BaseDir("part1/chapter.md"))
	assert.Equal(t, filepath.Join("book", "src"), cfg.BaseDir("intro.md"))
}
