package parser

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

type blameXML struct {
	Targets []blameTargetXML `xml:"target"`
}

type blameTargetXML struct {
	Path    string          `xml:"path,attr"`
	Entries []blameEntryXML `xml:"entry"`
}

type blameEntryXML struct {
	LineNumber string     `xml:"line-number,attr"`
	Commit     *commitXML `xml:"commit"`
	Text       string     `xml:"text"`
}

// ParseBlame interprets a blame XML document. Lines come out ordered by line
// number; the result's revision range spans the strictly positive revisions
// encountered. Sub-fields missing from an entry default to zero/empty.
func ParseBlame(raw string) (*domain.BlameResult, error) {
	result := &domain.BlameResult{}

	var doc blameXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return result, fmt.Errorf("malformed blame xml: %w", err)
	}

	for _, target := range doc.Targets {
		if result.Path == "" {
			result.Path = target.Path
		}
		for _, entry := range target.Entries {
			line := domain.BlameLine{
				LineNumber: atoiDefault(entry.LineNumber, 0),
				Content:    entry.Text,
			}
			if entry.Commit != nil {
				line.Revision = atoiDefault(entry.Commit.Revision, 0)
				line.Author = strings.TrimSpace(entry.Commit.Author)
				line.Date = strings.TrimSpace(entry.Commit.Date)
			}

			if line.Revision > 0 {
				if result.StartRevision == 0 || line.Revision < result.StartRevision {
					result.StartRevision = line.Revision
				}
				if line.Revision > result.EndRevision {
					result.EndRevision = line.Revision
				}
			}
			result.Lines = append(result.Lines, line)
		}
	}

	sort.SliceStable(result.Lines, func(i, j int) bool {
		return result.Lines[i].LineNumber < result.Lines[j].LineNumber
	})

	return result, nil
}
