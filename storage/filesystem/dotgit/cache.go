package dotgit

import (
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/refdb/plumbing"
)

// refCache is the in-memory mapping of reference name to packed entry,
// gated by the packed-refs file's mtime (§3, §4.3). It is owned exclusively
// by the DotGit that created it; the resolver only reads its map, and
// iterators additionally set and clear the transient SHADOWED bit on its
// entries.
type refCache struct {
	entries map[plumbing.ReferenceName]*packedEntry
	mtime   time.Time
	loaded  bool
	mode    peelingMode
}

func newRefCache() *refCache {
	return &refCache{entries: make(map[plumbing.ReferenceName]*packedEntry)}
}

// refresh is the sole entry point to reload the cache from disk, and
// implements the four-step contract of §4.3 exactly:
//
//  1. No packed-refs file: clear the map, succeed.
//  2. Packed-refs file unchanged since last read: succeed without reparsing.
//  3. Packed-refs file changed: parse into a fresh map, then swap it in
//     along with the new mtime.
//  4. Parse failure: leave the cache empty (not stale) and propagate.
func (c *refCache) refresh(fs billy.Filesystem) error {
	fi, err := fs.Stat(packedRefsPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.entries = make(map[plumbing.ReferenceName]*packedEntry)
			c.mtime = time.Time{}
			c.loaded = true
			return nil
		}
		return err
	}

	if c.loaded && fi.ModTime().Equal(c.mtime) {
		return nil
	}

	f, err := fs.Open(packedRefsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	list, mode, err := parsePackedRefs(f)
	if err != nil {
		c.entries = make(map[plumbing.ReferenceName]*packedEntry)
		c.loaded = false
		return err
	}

	fresh := make(map[plumbing.ReferenceName]*packedEntry, len(list))
	for _, e := range list {
		fresh[e.name] = e
	}

	c.entries = fresh
	c.mode = mode
	c.mtime = fi.ModTime()
	c.loaded = true
	return nil
}

// clearShadows resets the transient SHADOWED bit on every entry, so a new
// iterator starts from a clean slate.
func (c *refCache) clearShadows() {
	for _, e := range c.entries {
		e.flags &^= flagShadowed
	}
}

// sortedNames returns the cached packed entry names in ascending
// lexicographic order, the order the packed file is expected to be in
// (§3) and the order the compactor must emit (§9 Open Question).
func (c *refCache) sortedNames() []plumbing.ReferenceName {
	names := make([]plumbing.ReferenceName, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}

	sortReferenceNames(names)
	return names
}
