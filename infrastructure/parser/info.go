package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

type infoXML struct {
	Entries []infoEntryXML `xml:"entry"`
}

type infoEntryXML struct {
	Path       string         `xml:"path,attr"`
	Revision   string         `xml:"revision,attr"`
	URL        string         `xml:"url"`
	Repository *repositoryXML `xml:"repository"`
	Commit     *commitXML     `xml:"commit"`
}

type repositoryXML struct {
	Root string `xml:"root"`
	UUID string `xml:"uuid"`
}

// ParseInfo interprets an info XML document, reading the first entry.
func ParseInfo(raw string) (*domain.InfoResult, error) {
	result := &domain.InfoResult{}

	var doc infoXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return result, fmt.Errorf("malformed info xml: %w", err)
	}
	if len(doc.Entries) == 0 {
		return result, nil
	}

	entry := doc.Entries[0]
	result.Path = entry.Path
	result.Revision = atoiDefault(entry.Revision, 0)
	result.URL = strings.TrimSpace(entry.URL)
	if entry.Repository != nil {
		result.RepositoryRoot = strings.TrimSpace(entry.Repository.Root)
		result.RepositoryUUID = strings.TrimSpace(entry.Repository.UUID)
	}
	if entry.Commit != nil {
		result.LastChangedRev = atoiDefault(entry.Commit.Revision, 0)
		result.LastChangedAuthor = strings.TrimSpace(entry.Commit.Author)
		result.LastChangedDate = strings.TrimSpace(entry.Commit.Date)
	}

	return result, nil
}
