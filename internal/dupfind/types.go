package dupfind

import (
	"time"
)

// FileEntry is a single regular file discovered by the walker.
type FileEntry struct {
	// Path is the displayed path: relative to the working directory when
	// the file lies under it, absolute otherwise.
	Path string
	// Size is the file size in bytes.
	Size int64
	// Digest is the content fingerprint. It stays zero until the entry
	// has passed through the hashing stage.
	Digest Digest
}

// Group is an ordered set of files sharing identical size and content.
//
// Files are sorted by path, so Files[0] is the canonical member. A group
// with a single member is a unique file, not a duplicate set.
type Group struct {
	// Size is the size of every member in bytes.
	Size int64
	// Digest is the shared content fingerprint. Zero for singleton groups
	// whose size bucket never qualified for hashing.
	Digest Digest
	// Files are the members in path order.
	Files []FileEntry
}

// Canonical returns the designated original of the group, the member
// with the lexicographically smallest path.
func (g Group) Canonical() FileEntry {
	return g.Files[0]
}

// Duplicates returns the non-canonical members.
func (g Group) Duplicates() []FileEntry {
	return g.Files[1:]
}

// Wasted returns the bytes reclaimable if the duplicates were removed.
// Each duplicate wastes exactly its own size.
func (g Group) Wasted() int64 {
	return int64(len(g.Files)-1) * g.Size
}

// Report is the outcome of a completed scan.
type Report struct {
	// Groups contains every content group, duplicate sets and singletons
	// alike, ordered by canonical path.
	Groups []Group
	// UniqueFiles is the number of distinct contents: each duplicate set
	// counts once, each singleton counts once.
	UniqueFiles int64
	// DuplicateFiles is the total number of non-canonical members.
	DuplicateFiles int64
	// WastedBytes is the cumulative size of all duplicate files.
	WastedBytes int64
	// FilesScanned is the number of files the walker discovered.
	FilesScanned int64
	// Warnings is the number of paths skipped due to non-fatal errors.
	Warnings int64
	// Elapsed is the total scan duration.
	Elapsed time.Duration
}

// Options configures a scan.
type Options struct {
	// Roots are the directories to search. Empty means the current
	// working directory.
	Roots []string
	// MaxDepth bounds traversal: 0 keeps only files directly inside each
	// root, N descends through N levels of subdirectories.
	MaxDepth int
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// Excludes contains regex patterns for paths to skip.
	Excludes []string
	// Workers is the hash pool size. Zero or negative means NumCPU.
	Workers int
	// DerefSymlinks dereferences symlinks to files so they are compared
	// by their target's content. When false, symlinks are skipped, the
	// behavior of classic find-style tools. Directory symlinks are never
	// followed either way.
	DerefSymlinks bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}
