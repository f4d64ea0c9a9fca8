package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

// statusXML mirrors `svn status --xml` output. Slice fields absorb the
// single-element vs. array ambiguity: one <entry> and many <entry> both
// unmarshal into the same sequence shape.
type statusXML struct {
	Targets []statusTargetXML `xml:"target"`
}

type statusTargetXML struct {
	Path    string           `xml:"path,attr"`
	Entries []statusEntryXML `xml:"entry"`
}

type statusEntryXML struct {
	Path     string       `xml:"path,attr"`
	WCStatus *wcStatusXML `xml:"wc-status"`
}

type wcStatusXML struct {
	Item     string     `xml:"item,attr"`
	Revision string     `xml:"revision,attr"`
	Commit   *commitXML `xml:"commit"`
}

// ParseStatus interprets a status XML document rooted at basePath. Unknown or
// missing item values map to normal; malformed XML yields an empty result and
// a diagnostic error.
func ParseStatus(raw, basePath string) (*domain.StatusResult, error) {
	result := &domain.StatusResult{Path: basePath}

	var doc statusXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return result, fmt.Errorf("malformed status xml: %w", err)
	}

	for _, target := range doc.Targets {
		for _, entry := range target.Entries {
			parsed := domain.StatusEntry{
				Path:   entry.Path,
				Status: domain.StatusNormal,
			}
			if wc := entry.WCStatus; wc != nil {
				parsed.Status = domain.ParseItemStatus(wc.Item)
				parsed.Revision = atoiDefault(wc.Revision, 0)
				if wc.Commit != nil {
					parsed.Author = strings.TrimSpace(wc.Commit.Author)
					parsed.Date = strings.TrimSpace(wc.Commit.Date)
					if parsed.Revision == 0 {
						parsed.Revision = atoiDefault(wc.Commit.Revision, 0)
					}
				}
			}
			if parsed.Revision > result.Revision {
				result.Revision = parsed.Revision
			}
			result.Entries = append(result.Entries, parsed)
		}
	}

	return result, nil
}
