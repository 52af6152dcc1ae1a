package dupfind

import (
	"sort"
)

// sortByPath orders entries lexicographically, the traversal order every
// observable ordering derives from.
func sortByPath(entries []FileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}

type groupKey struct {
	size   int64
	digest Digest
}

// groupEntries groups hashed entries by (size, fingerprint) and merges
// in the singleton entries that never needed hashing. Since input is in
// path order, each group's first member is its canonical one.
//
// A hashed group can end up with a single member when its size-bucket
// siblings failed hashing; such a group is a unique file, not a
// duplicate set, and is reported like any other singleton.
func groupEntries(hashed, singletons []FileEntry) []Group {
	index := make(map[groupKey]int, len(hashed))
	groups := make([]Group, 0, len(hashed)+len(singletons))

	for _, entry := range hashed {
		key := groupKey{size: entry.Size, digest: entry.Digest}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Size: entry.Size, Digest: entry.Digest})
		}

		groups[i].Files = append(groups[i].Files, entry)
	}

	for _, entry := range singletons {
		groups = append(groups, Group{Size: entry.Size, Files: []FileEntry{entry}})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Files[0].Path < groups[j].Files[0].Path
	})

	return groups
}

// summarize fills the report counters from the grouped entries.
func summarize(groups []Group) *Report {
	report := &Report{Groups: groups, UniqueFiles: int64(len(groups))}

	for _, group := range groups {
		report.DuplicateFiles += int64(len(group.Files) - 1)
		report.WastedBytes += group.Wasted()
	}

	return report
}
