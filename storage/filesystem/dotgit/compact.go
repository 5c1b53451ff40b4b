package dotgit

import (
	"fmt"
	"os"

	"github.com/go-git/refdb/internal/filebuf"
	"github.com/go-git/refdb/plumbing"
	"github.com/go-git/refdb/plumbing/object"
)

// Compress folds every loose reference into the packed-refs file (§4.7).
// Ordering is load-bearing: the packed file is committed in full before any
// loose file is unlinked, so a crash before the commit leaves both
// representations intact and a crash after it leaves at worst duplicate
// (never lost) storage.
func (d *DotGit) Compress() error {
	if err := d.cache.refresh(d.fs); err != nil {
		return err
	}

	loose, err := walkLooseNames(d.fs)
	if err != nil {
		return err
	}

	for _, name := range loose {
		ref, err := readLooseReference(d.fs, refPath(d.fs, name.String()), name)
		if err != nil {
			return fmt.Errorf("compress: reading loose reference %s: %w", name, err)
		}

		if ref.Type() != plumbing.HashReference {
			// Symbolic references are never packed; only the resolved
			// object pointers belong in packed-refs.
			continue
		}

		entry := &packedEntry{name: name, oid: ref.Hash(), flags: flagWasLoose}
		if peel, ok := ref.Peeled(); ok {
			entry.peel = peel
			entry.flags |= flagHasPeel
		}

		d.cache.entries[name] = entry
	}

	entries := make([]*packedEntry, 0, len(d.cache.entries))
	for _, e := range d.cache.entries {
		entries = append(entries, e)
	}
	sortPackedEntries(entries)

	if d.peeler != nil {
		for _, e := range entries {
			if e.hasPeel() || e.cannotPeel() {
				continue
			}

			peel, ok, err := resolvePeel(d.peeler, e.oid)
			if err != nil {
				return fmt.Errorf("compress: resolving peel for %s: %w", e.name, err)
			}

			if ok {
				e.peel = peel
				e.flags |= flagHasPeel
			}
		}
	}

	payload, err := serializePackedRefsBytes(entries)
	if err != nil {
		return err
	}

	buf, err := filebuf.New(d.fs, packedRefsPath)
	if err != nil {
		return err
	}

	if _, err := buf.Write(payload); err != nil {
		buf.Abort()
		return err
	}

	if err := buf.Commit(); err != nil {
		return err
	}

	var firstUnlinkErr error
	for _, e := range entries {
		if !e.wasLoose() {
			continue
		}

		if err := d.fs.Remove(refPath(d.fs, e.name.String())); err != nil {
			if firstUnlinkErr == nil {
				firstUnlinkErr = fmt.Errorf("compress: unlinking loose %s: %w", e.name, err)
			}
		}

		e.flags &^= flagWasLoose
	}

	if err := d.cache.refresh(d.fs); err != nil {
		return err
	}

	return firstUnlinkErr
}

// resolvePeel dereferences oid once if it names a tag object, returning its
// target id. ok is false if oid does not name a tag at all, in which case
// the entry is left with no peel recorded, per §4.7 step 4.
func resolvePeel(peeler object.Peeler, oid plumbing.ObjectID) (plumbing.ObjectID, bool, error) {
	typ, err := peeler.ObjectType(oid)
	if err != nil {
		return plumbing.ZeroID, false, err
	}

	if typ != object.TagObject {
		return plumbing.ZeroID, false, nil
	}

	tag, err := peeler.GetTag(oid)
	if err != nil {
		return plumbing.ZeroID, false, err
	}

	return tag.Target, true, nil
}

// rewritePackedRefs rewrites the packed-refs file to reflect the current
// in-memory cache, used after Delete removes a packed entry. It never
// touches loose files.
func (d *DotGit) rewritePackedRefs() error {
	entries := make([]*packedEntry, 0, len(d.cache.entries))
	for _, e := range d.cache.entries {
		entries = append(entries, e)
	}
	sortPackedEntries(entries)

	if len(entries) == 0 {
		if err := d.fs.Remove(packedRefsPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return d.cache.refresh(d.fs)
	}

	payload, err := serializePackedRefsBytes(entries)
	if err != nil {
		return err
	}

	buf, err := filebuf.New(d.fs, packedRefsPath)
	if err != nil {
		return err
	}

	if _, err := buf.Write(payload); err != nil {
		buf.Abort()
		return err
	}

	if err := buf.Commit(); err != nil {
		return err
	}

	return d.cache.refresh(d.fs)
}
