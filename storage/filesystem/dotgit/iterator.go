package dotgit

import (
	"io"

	"github.com/go-git/refdb/plumbing"
)

// OnCorruptLoose, when set on an Iterator, is invoked when a loose
// reference file fails to parse during iteration. Per §7 the iterator must
// make progress on an otherwise-healthy repository: the entry is logged
// through this hook and skipped rather than aborting the whole walk.
type OnCorruptLoose func(name plumbing.ReferenceName, err error)

// Iterator enumerates the merged loose+packed view, in two phases: loose
// files first, then unshadowed packed entries (§4.5).
type Iterator struct {
	d         *DotGit
	glob      string
	onCorrupt OnCorruptLoose

	loose       []plumbing.ReferenceName
	loosePos    int
	packedNames []plumbing.ReferenceName
	packedPos   int
	phase       int // 0 = loose, 1 = packed, 2 = done
}

// Iterator constructs a merged-view iterator over every reference matching
// glob (empty glob matches everything). It refreshes the cache, walks the
// loose tree once, and marks every packed entry shadowed by a same-named
// loose file (§4.5).
func (d *DotGit) Iterator(glob string) (*Iterator, error) {
	if err := d.cache.refresh(d.fs); err != nil {
		return nil, err
	}

	d.cache.clearShadows()

	allLoose, err := walkLooseNames(d.fs)
	if err != nil {
		return nil, err
	}

	loose := make([]plumbing.ReferenceName, 0, len(allLoose))
	for _, n := range allLoose {
		ok, err := matchGlob(glob, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		loose = append(loose, n)
		if entry, found := d.cache.entries[n]; found {
			entry.flags |= flagShadowed
		}
	}

	packedNames := make([]plumbing.ReferenceName, 0, len(d.cache.entries))
	for _, n := range d.cache.sortedNames() {
		ok, err := matchGlob(glob, n)
		if err != nil {
			return nil, err
		}
		if ok {
			packedNames = append(packedNames, n)
		}
	}

	return &Iterator{
		d:           d,
		glob:        glob,
		loose:       loose,
		packedNames: packedNames,
	}, nil
}

// SetOnCorrupt installs the log-and-skip hook used during the loose phase.
func (it *Iterator) SetOnCorrupt(fn OnCorruptLoose) { it.onCorrupt = fn }

// Next returns the next reference in the merged view, or io.EOF once both
// phases are exhausted (§4.5's IterOver terminal signal).
func (it *Iterator) Next() (*plumbing.Reference, error) {
	for {
		switch it.phase {
		case 0:
			if it.loosePos >= len(it.loose) {
				it.phase = 1
				continue
			}

			name := it.loose[it.loosePos]
			it.loosePos++

			ref, err := readLooseReference(it.d.fs, refPath(it.d.fs, name.String()), name)
			if err != nil {
				if it.onCorrupt != nil {
					it.onCorrupt(name, err)
				}
				continue
			}

			return ref, nil

		case 1:
			if it.packedPos >= len(it.packedNames) {
				it.phase = 2
				continue
			}

			name := it.packedNames[it.packedPos]
			it.packedPos++

			entry := it.d.cache.entries[name]
			if entry == nil || entry.isShadowed() {
				continue
			}

			return entry.toReference(), nil

		default:
			return nil, io.EOF
		}
	}
}

// ForEach calls cb for every reference until it returns an error or the
// iterator is exhausted.
func (it *Iterator) ForEach(cb func(*plumbing.Reference) error) error {
	for {
		ref, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := cb(ref); err != nil {
			return err
		}
	}
}

// Close releases the iterator. It is safe to call multiple times.
func (it *Iterator) Close() {
	it.phase = 2
}

// NameIterator enumerates just the names of the merged view, built by
// projecting Iterator's already-deduplicated output rather than
// re-implementing shadowing separately. The source's name-only iterator
// historically deduplicated during the loose phase instead of via the
// SHADOWED flag (a documented asymmetry, §9); this backend unifies both
// iterators on the value iterator's semantics so there is exactly one
// place that decides what is shadowed.
type NameIterator struct {
	inner *Iterator
}

// NameIterator constructs a name-only iterator with the same glob and
// shadowing semantics as Iterator.
func (d *DotGit) NameIterator(glob string) (*NameIterator, error) {
	inner, err := d.Iterator(glob)
	if err != nil {
		return nil, err
	}
	return &NameIterator{inner: inner}, nil
}

// Next returns the next reference name, or io.EOF when exhausted.
func (it *NameIterator) Next() (plumbing.ReferenceName, error) {
	ref, err := it.inner.Next()
	if err != nil {
		return "", err
	}
	return ref.Name(), nil
}

// Close releases the underlying iterator.
func (it *NameIterator) Close() { it.inner.Close() }

// CountLoose reports how many loose reference files currently exist under
// refs/, independent of what is packed. Callers use this to decide whether
// a repack is worthwhile.
func (d *DotGit) CountLoose() (int, error) {
	names, err := walkLooseNames(d.fs)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}
