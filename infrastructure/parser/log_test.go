package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svnlens/svnlens/infrastructure/parser"
)

const logTwoEntries = `<?xml version="1.0" encoding="UTF-8"?>
<log>
  <logentry revision="58">
    <author>bob</author>
    <date>2024-06-02T08:30:00.000000Z</date>
    <msg>Fix overflow in hunk counter</msg>
    <paths>
      <path action="M" kind="file">/trunk/src/diff.c</path>
      <path action="A" kind="file">/trunk/src/diff_test.c</path>
    </paths>
  </logentry>
  <logentry revision="55">
    <author>alice</author>
    <date>2024-06-01T09:00:00.000000Z</date>
    <msg>Initial diff parser</msg>
    <paths>
      <path action="A" kind="dir">/trunk/src</path>
    </paths>
  </logentry>
</log>`

func TestParseLog(t *testing.T) {
	t.Parallel()

	t.Run("should parse entries with their changed paths", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := parser.ParseLog(logTwoEntries)

		// then
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)

		first := result.Entries[0]
		assert.Equal(t, 58, first.Revision)
		assert.Equal(t, "bob", first.Author)
		assert.Equal(t, "Fix overflow in hunk counter", first.Message)
		require.Len(t, first.Paths, 2)
		assert.Equal(t, "M", first.Paths[0].Action)
		assert.Equal(t, "/trunk/src/diff.c", first.Paths[0].Path)
		assert.Equal(t, "dir", result.Entries[1].Paths[0].Kind)
	})

	t.Run("should compute the revision range from the entries", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := parser.ParseLog(logTwoEntries)

		// then
		require.NoError(t, err)
		assert.Equal(t, 55, result.StartRevision)
		assert.Equal(t, 58, result.EndRevision)
	})

	t.Run("should handle a single unwrapped logentry", func(t *testing.T) {
		t.Parallel()

		// given
		raw := `<log><logentry revision="3"><author>carol</author><msg>one</msg></logentry></log>`

		// when
		result, err := parser.ParseLog(raw)

		// then
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Equal(t, 3, result.StartRevision)
		assert.Equal(t, 3, result.EndRevision)
	})

	t.Run("should default a missing action to empty and a malformed revision to zero", func(t *testing.T) {
		t.Parallel()

		// given
		raw := `<log><logentry revision="abc"><paths><path kind="file">/x</path></paths></logentry></log>`

		// when
		result, err := parser.ParseLog(raw)

		// then
		require.NoError(t, err)
		require.Len(t, result.Entries, 1)
		assert.Zero(t, result.Entries[0].Revision)
		assert.Empty(t, result.Entries[0].Paths[0].Action)
	})

	t.Run("should return zero revisions without throwing on truncated input", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := parser.ParseLog(`<log><logentry revision="9"><auth`)

		// then
		assert.Error(t, err)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.StartRevision)
		assert.Zero(t, result.EndRevision)
	})

	t.Run("should return zero revisions on non-xml input", func(t *testing.T) {
		t.Parallel()

		// when
		result, err := parser.ParseLog("not xml at all")

		// then
		assert.Error(t, err)
		assert.Empty(t, result.Entries)
		assert.Zero(t, result.StartRevision)
		assert.Zero(t, result.EndRevision)
	})
}
