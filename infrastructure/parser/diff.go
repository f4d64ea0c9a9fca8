package parser

import (
	"regexp"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

// binaryMarker is what svn prints instead of hunks for binary files.
const binaryMarker = "Cannot display: file marked as a binary type"

// hunkHeaderPattern matches `@@ -oldStart[,oldLines] +newStart[,newLines] @@`.
// Omitted counts default to 1.
var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseDiff runs a line-oriented state machine over unified diff text.
//
// `Index: ` starts a new file record, `--- `/`+++ ` set its paths while no
// hunk is open, and a hunk header opens a hunk whose old/new line counters
// are seeded exactly once from the header. Within a hunk, lines are
// classified by leading character; anything unrecognized outside a hunk is
// ignored. A document carrying the binary marker short-circuits with the raw
// text preserved.
func ParseDiff(text string) *domain.DiffResult {
	result := &domain.DiffResult{}
	if strings.TrimSpace(text) == "" {
		return result
	}
	if strings.Contains(text, binaryMarker) {
		result.IsBinary = true
		result.HasChanges = true
		result.RawDiff = text
		return result
	}

	var (
		file             *domain.DiffFile
		hunk             *domain.DiffHunk
		oldLine, newLine int
	)

	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file != nil {
			result.Files = append(result.Files, *file)
		}
		file = nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "Index: ") {
			flushFile()
			name := strings.TrimSpace(strings.TrimPrefix(line, "Index: "))
			file = &domain.DiffFile{OldPath: name, NewPath: name}
			continue
		}

		if m := hunkHeaderPattern.FindStringSubmatch(line); m != nil {
			if file == nil {
				file = &domain.DiffFile{}
			}
			flushHunk()
			hunk = &domain.DiffHunk{
				OldStart: atoiDefault(m[1], 0),
				OldLines: atoiDefault(m[2], 1),
				NewStart: atoiDefault(m[3], 0),
				NewLines: atoiDefault(m[4], 1),
			}
			hunk.Lines = append(hunk.Lines, domain.DiffLine{
				Type:    domain.DiffLineHunkHeader,
				Content: line,
			})
			oldLine, newLine = hunk.OldStart, hunk.NewStart
			continue
		}

		if hunk != nil {
			switch {
			case strings.HasPrefix(line, "+"):
				hunk.Lines = append(hunk.Lines, domain.DiffLine{
					Type:    domain.DiffLineAdded,
					Content: line[1:],
					NewLine: newLine,
				})
				newLine++
			case strings.HasPrefix(line, "-"):
				hunk.Lines = append(hunk.Lines, domain.DiffLine{
					Type:    domain.DiffLineRemoved,
					Content: line[1:],
					OldLine: oldLine,
				})
				oldLine++
			case line == "" || strings.HasPrefix(line, " "):
				hunk.Lines = append(hunk.Lines, domain.DiffLine{
					Type:    domain.DiffLineContext,
					Content: strings.TrimPrefix(line, " "),
					OldLine: oldLine,
					NewLine: newLine,
				})
				oldLine++
				newLine++
			default:
				// e.g. "\ No newline at end of file"; the counters stay as
				// they are until the next hunk header
			}
			continue
		}

		if file != nil {
			if strings.HasPrefix(line, "--- ") {
				file.OldPath = diffHeaderPath(line[len("--- "):])
				continue
			}
			if strings.HasPrefix(line, "+++ ") {
				file.NewPath = diffHeaderPath(line[len("+++ "):])
				continue
			}
		}
		// separator rows and anything else outside a hunk are ignored
	}
	flushFile()

	result.HasChanges = len(result.Files) > 0
	return result
}

// diffHeaderPath strips the "\t(revision N)" / "\t(working copy)" annotation
// svn appends to ---/+++ header paths.
func diffHeaderPath(raw string) string {
	if i := strings.IndexByte(raw, '\t'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}
