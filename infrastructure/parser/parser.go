// Package parser turns raw svn output (XML documents, unified diff text, and
// the svn:externals property grammar) into the domain models.
//
// Every parser shares one degradation contract: malformed input yields a safe
// empty result together with a diagnostic error. Callers log the diagnostic
// and keep the empty result, so a partially unparseable response from the
// external tool degrades the view instead of crashing the caller.
package parser

import (
	"strconv"
	"strings"
)

// commitXML is the <commit> block shared by status, blame, list, and info
// documents.
type commitXML struct {
	Revision string `xml:"revision,attr"`
	Author   string `xml:"author"`
	Date     string `xml:"date"`
}

// atoiDefault parses an integer attribute, falling back on malformed input.
func atoiDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
