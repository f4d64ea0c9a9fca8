package domain

import (
	"path"
	"strings"
)

// ItemStatus classifies a path's state relative to its working-copy baseline.
type ItemStatus string

const (
	StatusNormal      ItemStatus = "normal"
	StatusAdded       ItemStatus = "added"
	StatusConflicted  ItemStatus = "conflicted"
	StatusDeleted     ItemStatus = "deleted"
	StatusIgnored     ItemStatus = "ignored"
	StatusModified    ItemStatus = "modified"
	StatusReplaced    ItemStatus = "replaced"
	StatusExternal    ItemStatus = "external"
	StatusUnversioned ItemStatus = "unversioned"
	StatusMissing     ItemStatus = "missing"
	StatusObstructed  ItemStatus = "obstructed"
)

// severity ranks statuses for directory rollups; higher wins. Unknown
// statuses rank as normal, so the comparison is total by construction.
var severity = map[ItemStatus]int{
	StatusNormal:      0,
	StatusIgnored:     1,
	StatusUnversioned: 2,
	StatusExternal:    3,
	StatusAdded:       4,
	StatusReplaced:    5,
	StatusDeleted:     6,
	StatusModified:    7,
	StatusObstructed:  8,
	StatusMissing:     9,
	StatusConflicted:  10,
}

// ParseItemStatus maps an item attribute from status XML to an ItemStatus.
// Unknown or missing values map to StatusNormal rather than failing.
func ParseItemStatus(item string) ItemStatus {
	st := ItemStatus(strings.ToLower(strings.TrimSpace(item)))
	if _, ok := severity[st]; !ok {
		return StatusNormal
	}
	return st
}

// Severity returns the rollup rank of a status.
func Severity(st ItemStatus) int {
	return severity[st]
}

// MoreSevere returns the higher-ranked of two statuses.
func MoreSevere(a, b ItemStatus) ItemStatus {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// NormalizePath converts a path to forward slashes and strips any trailing
// separator so prefix comparisons behave the same on every platform.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// isAbsPath reports whether a normalized path is absolute, including the
// drive-letter form Windows tools emit.
func isAbsPath(p string) bool {
	return strings.HasPrefix(p, "/") || (len(p) > 1 && p[1] == ':')
}

// descendsFrom reports whether p lies strictly below base. The filesystem
// root needs no separator appended, and under base "." every clean relative
// path is a descendant.
func descendsFrom(p, base string) bool {
	switch base {
	case "/":
		return strings.HasPrefix(p, "/") && p != "/"
	case ".":
		return p != "." && p != ".." && !isAbsPath(p) && !strings.HasPrefix(p, "../")
	default:
		return strings.HasPrefix(p, base+"/")
	}
}

// anchor places a scan entry path under the scan root. svn reports paths
// relative to the scanned directory when invoked without an explicit target,
// so a relative entry is joined under base; paths already at or below base
// pass through unchanged.
func anchor(p, base string) string {
	p = NormalizePath(p)
	if base == "." || p == base || descendsFrom(p, base) || isAbsPath(p) {
		return p
	}
	if base == "/" {
		return "/" + p
	}
	return base + "/" + p
}

// DirectStatus returns the status of the immediate children of basePath,
// keyed by child name. This is the shallow view computed from one
// non-recursive status invocation.
func DirectStatus(entries []StatusEntry, basePath string) map[string]ItemStatus {
	base := NormalizePath(basePath)
	direct := make(map[string]ItemStatus)
	for _, entry := range entries {
		p := anchor(entry.Path, base)
		if path.Dir(p) != base {
			continue
		}
		direct[path.Base(p)] = entry.Status
	}
	return direct
}

// FolderStatus computes the rollup status for a directory. When the folder
// itself carries a non-normal direct status (e.g. the folder is added or
// missing) that wins outright; otherwise the worst status among all
// descendant entries is returned, defaulting to normal.
//
// The entry list is scanned once per query. Callers painting a whole tree
// should prefer RollupTree over repeated FolderStatus calls.
func FolderStatus(folderPath string, entries []StatusEntry, direct map[string]ItemStatus) ItemStatus {
	folder := NormalizePath(folderPath)
	if own, ok := direct[path.Base(folder)]; ok && own != StatusNormal {
		return own
	}

	worst := StatusNormal
	for _, entry := range entries {
		if !descendsFrom(NormalizePath(entry.Path), folder) {
			continue
		}
		worst = MoreSevere(worst, entry.Status)
	}
	return worst
}

// RollupTree computes the worst status of every directory at or below root in
// a single pass over the entry list. The returned map is keyed by normalized
// directory path and includes root itself.
func RollupTree(entries []StatusEntry, root string) map[string]ItemStatus {
	base := NormalizePath(root)
	rollup := map[string]ItemStatus{base: StatusNormal}

	bump := func(dir string, st ItemStatus) {
		current, ok := rollup[dir]
		if !ok {
			current = StatusNormal
		}
		rollup[dir] = MoreSevere(current, st)
	}

	for _, entry := range entries {
		p := anchor(entry.Path, base)
		if entry.IsDir && (p == base || descendsFrom(p, base)) {
			bump(p, entry.Status)
		}
		for dir := path.Dir(p); ; dir = path.Dir(dir) {
			if dir == base || descendsFrom(dir, base) {
				bump(dir, entry.Status)
			}
			if dir == base || dir == path.Dir(dir) {
				break
			}
		}
	}
	return rollup
}
