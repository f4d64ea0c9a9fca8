package domain

// StatusEntry describes the working-copy state of a single path as reported
// by one status invocation. Entries are value objects: every scan produces a
// fresh, independent list that is never mutated afterwards.
type StatusEntry struct {
	Path     string
	Status   ItemStatus
	Revision int
	Author   string
	Date     string
	IsDir    bool
}

// StatusResult is the parsed outcome of one status invocation. Revision is
// the highest revision seen across the entries (0 when empty).
type StatusResult struct {
	Path     string
	Entries  []StatusEntry
	Revision int
}

// LogPath is a single changed path inside a log entry.
type LogPath struct {
	Path   string
	Action string // "A", "D", "M", "R"; empty when the document omits it
	Kind   string // "file" or "dir"
}

// LogEntry is one revision from the repository history.
type LogEntry struct {
	Revision int
	Author   string
	Date     string
	Message  string
	Paths    []LogPath
}

// LogResult holds the parsed history. StartRevision and EndRevision are the
// min/max revision across the entries, both 0 when there are none.
type LogResult struct {
	Entries       []LogEntry
	StartRevision int
	EndRevision   int
}

// BlameLine attributes one source line to the revision that last changed it.
type BlameLine struct {
	LineNumber int
	Revision   int
	Author     string
	Date       string
	Content    string
}

// BlameResult holds per-line attribution for a file, ordered by line number.
// StartRevision/EndRevision span the strictly positive revisions encountered.
type BlameResult struct {
	Path          string
	Lines         []BlameLine
	StartRevision int
	EndRevision   int
}

// EntryKind distinguishes files from directories in repository listings.
type EntryKind string

const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// RepoEntry is one child of a repository-browse request.
type RepoEntry struct {
	Name     string
	Path     string
	URL      string
	Kind     EntryKind
	Size     int64
	Revision int
	Author   string
	Date     string
}

// ListResult is the parsed outcome of a repository listing.
type ListResult struct {
	BaseURL string
	Entries []RepoEntry
}

// ExternalDef is one definition parsed from an svn:externals property value.
type ExternalDef struct {
	Name     string
	URL      string
	Path     string
	Revision int // 0 when the definition is not pinned
}

// InfoResult is the parsed outcome of an info invocation.
type InfoResult struct {
	Path              string
	URL               string
	RepositoryRoot    string
	RepositoryUUID    string
	Revision          int
	LastChangedRev    int
	LastChangedAuthor string
	LastChangedDate   string
}

// DiffLineType classifies a single line of a unified diff.
type DiffLineType string

const (
	DiffLineAdded      DiffLineType = "added"
	DiffLineRemoved    DiffLineType = "removed"
	DiffLineContext    DiffLineType = "context"
	DiffLineHunkHeader DiffLineType = "hunk-header"
)

// DiffLine is one classified line within a hunk. OldLine/NewLine are 0 when
// the counter does not apply to the line type (e.g. NewLine on a removal).
type DiffLine struct {
	Type    DiffLineType
	Content string
	OldLine int
	NewLine int
}

// DiffHunk is one contiguous region of changes. Its line counters are seeded
// exactly once from the hunk header.
type DiffHunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []DiffLine
}

// DiffFile is one file record within a unified diff document.
type DiffFile struct {
	OldPath string
	NewPath string
	Hunks   []DiffHunk
}

// DiffResult is the parsed outcome of a diff invocation. When the document
// carries the binary-file marker, IsBinary is set, RawDiff keeps the original
// text, and Files stays empty.
type DiffResult struct {
	Files      []DiffFile
	HasChanges bool
	IsBinary   bool
	RawDiff    string
}
