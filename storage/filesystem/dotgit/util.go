package dotgit

import (
	"sort"

	"github.com/go-git/refdb/plumbing"
)

// sortReferenceNames sorts names bytewise ascending, matching the packed
// file's documented sort order (§3, §6.4). Implementers must sort by name,
// not by struct address (§9 Open Question).
func sortReferenceNames(names []plumbing.ReferenceName) {
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
}

// sortPackedEntries sorts entries ascending by name in place.
func sortPackedEntries(entries []*packedEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
}
