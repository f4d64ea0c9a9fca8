package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnlens/svnlens/infrastructure/parser"
)

func TestParseExternals(t *testing.T) {
	t.Parallel()

	t.Run("should parse a pinned definition with an explicit local path", func(t *testing.T) {
		t.Parallel()

		// when
		defs := parser.ParseExternals("-r42 http://example.com/repo/lib vendor/lib")

		// then
		require.Len(t, defs, 1)
		assert.Equal(t, "http://example.com/repo/lib", defs[0].URL)
		assert.Equal(t, 42, defs[0].Revision)
		assert.Equal(t, "vendor/lib", defs[0].Name)
	})

	t.Run("should derive the name from the URL when the local path is omitted", func(t *testing.T) {
		t.Parallel()

		// when
		defs := parser.ParseExternals("http://example.com/repo/lib")

		// then
		require.Len(t, defs, 1)
		assert.Equal(t, "lib", defs[0].Name)
		assert.Equal(t, "lib", defs[0].Path)
		assert.Zero(t, defs[0].Revision)
	})

	t.Run("should accept a detached revision flag", func(t *testing.T) {
		t.Parallel()

		// when
		defs := parser.ParseExternals("-r 7 http://example.com/repo/tool")

		// then
		require.Len(t, defs, 1)
		assert.Equal(t, 7, defs[0].Revision)
		assert.Equal(t, "tool", defs[0].Name)
	})

	t.Run("should let bare definitions inherit the last seen local path", func(t *testing.T) {
		t.Parallel()

		// given: recursive propget output
		text := "vendor - http://example.com/repo/liba\n" +
			"http://example.com/repo/libb\n" +
			"\n" +
			"tools - -r12 http://example.com/repo/fmt bin/fmt\n"

		// when
		defs := parser.ParseExternals(text)

		// then
		require.Len(t, defs, 3)
		assert.Equal(t, "vendor/liba", defs[0].Path)
		assert.Equal(t, "vendor/libb", defs[1].Path)
		assert.Equal(t, "tools/bin/fmt", defs[2].Path)
		assert.Equal(t, 12, defs[2].Revision)
	})

	t.Run("should skip blank lines, comments, and unparseable lines", func(t *testing.T) {
		t.Parallel()

		// when
		defs := parser.ParseExternals("\n# comment\n-r42\nhttp://example.com/x\n")

		// then
		require.Len(t, defs, 1)
		assert.Equal(t, "x", defs[0].Name)
	})
}
