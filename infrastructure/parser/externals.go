package parser

import (
	"path"
	"strings"

	"github.com/svnlens/svnlens/domain"
)

// ParseExternals interprets an svn:externals property value (or the output of
// a recursive propget, where `LOCAL_PATH - DEFINITION` lines set the directory
// that following bare definitions inherit).
//
// A definition is `[-rREVISION ] URL [LOCAL_PATH]`; when LOCAL_PATH is
// omitted the name defaults to the URL's final path segment. Lines that don't
// fit the grammar are skipped.
func ParseExternals(text string) []domain.ExternalDef {
	var defs []domain.ExternalDef
	inheritedDir := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		definition := line
		if before, after, found := strings.Cut(line, " - "); found {
			inheritedDir = strings.TrimSpace(before)
			definition = strings.TrimSpace(after)
		}

		def, ok := parseExternalDefinition(definition)
		if !ok {
			continue
		}
		if inheritedDir != "" {
			def.Path = inheritedDir + "/" + def.Name
		} else {
			def.Path = def.Name
		}
		defs = append(defs, def)
	}

	return defs
}

func parseExternalDefinition(definition string) (domain.ExternalDef, bool) {
	var def domain.ExternalDef

	fields := strings.Fields(definition)
	if len(fields) == 0 {
		return def, false
	}

	i := 0
	switch {
	case fields[i] == "-r" && len(fields) > i+1:
		def.Revision = atoiDefault(fields[i+1], 0)
		i += 2
	case strings.HasPrefix(fields[i], "-r"):
		def.Revision = atoiDefault(fields[i][2:], 0)
		i++
	}
	if i >= len(fields) {
		return def, false
	}

	def.URL = fields[i]
	i++
	if i < len(fields) {
		def.Name = fields[i]
	} else {
		def.Name = path.Base(strings.TrimSuffix(def.URL, "/"))
	}

	return def, def.URL != "" && def.Name != ""
}
