package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

type listsXML struct {
	Lists []listXML `xml:"list"`
}

type listXML struct {
	Path    string         `xml:"path,attr"`
	Entries []listEntryXML `xml:"entry"`
}

type listEntryXML struct {
	Kind   string     `xml:"kind,attr"`
	Name   string     `xml:"name"`
	Size   string     `xml:"size"`
	Commit *commitXML `xml:"commit"`
}

// ParseList interprets a repository listing. Directory names lose any
// trailing slash, then each entry's path and URL are the base URL joined
// with the cleaned name.
func ParseList(raw, baseURL string) (*domain.ListResult, error) {
	result := &domain.ListResult{BaseURL: baseURL}

	var doc listsXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return result, fmt.Errorf("malformed list xml: %w", err)
	}

	base := strings.TrimSuffix(baseURL, "/")
	for _, list := range doc.Lists {
		for _, entry := range list.Entries {
			name := strings.TrimSuffix(strings.TrimSpace(entry.Name), "/")
			if name == "" {
				continue
			}

			parsed := domain.RepoEntry{
				Name: name,
				Path: base + "/" + name,
				URL:  base + "/" + name,
				Kind: domain.KindFile,
			}
			if entry.Kind == string(domain.KindDir) {
				parsed.Kind = domain.KindDir
			}
			parsed.Size = int64(atoiDefault(entry.Size, 0))
			if entry.Commit != nil {
				parsed.Revision = atoiDefault(entry.Commit.Revision, 0)
				parsed.Author = strings.TrimSpace(entry.Commit.Author)
				parsed.Date = strings.TrimSpace(entry.Commit.Date)
			}
			result.Entries = append(result.Entries, parsed)
		}
	}

	return result, nil
}
