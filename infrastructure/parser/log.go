package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

type logXML struct {
	Entries []logEntryXML `xml:"logentry"`
}

type logEntryXML struct {
	Revision string       `xml:"revision,attr"`
	Author   string       `xml:"author"`
	Date     string       `xml:"date"`
	Message  string       `xml:"msg"`
	Paths    []logPathXML `xml:"paths>path"`
}

type logPathXML struct {
	Action string `xml:"action,attr"`
	Kind   string `xml:"kind,attr"`
	Path   string `xml:",chardata"`
}

// ParseLog interprets a log XML document. StartRevision and EndRevision are
// computed from the entries, never read from the document; both are 0 when
// the log is empty or malformed.
func ParseLog(raw string) (*domain.LogResult, error) {
	result := &domain.LogResult{}

	var doc logXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return result, fmt.Errorf("malformed log xml: %w", err)
	}

	for _, entry := range doc.Entries {
		parsed := domain.LogEntry{
			Revision: atoiDefault(entry.Revision, 0),
			Author:   strings.TrimSpace(entry.Author),
			Date:     strings.TrimSpace(entry.Date),
			Message:  strings.TrimSpace(entry.Message),
		}
		for _, p := range entry.Paths {
			parsed.Paths = append(parsed.Paths, domain.LogPath{
				Path:   strings.TrimSpace(p.Path),
				Action: p.Action,
				Kind:   p.Kind,
			})
		}

		if result.StartRevision == 0 || parsed.Revision < result.StartRevision {
			result.StartRevision = parsed.Revision
		}
		if parsed.Revision > result.EndRevision {
			result.EndRevision = parsed.Revision
		}
		result.Entries = append(result.Entries, parsed)
	}

	return result, nil
}
