package dotgit

import (
	"fmt"
	"os"
	"path"

	"github.com/go-git/refdb/internal/filebuf"
	"github.com/go-git/refdb/plumbing"
)

// referencePathAvailable implements §4.6's availability check: newName must
// not already exist (unless force), and must not be a strict path-prefix of
// any existing name, nor have any existing name as a strict path-prefix of
// it — a filesystem cannot host a file at "refs/heads/a" and a file at
// "refs/heads/a/b" simultaneously. oldName, when non-empty, is exempt (used
// by rename to permit a same-named overwrite of the thing being renamed).
func (d *DotGit) referencePathAvailable(newName, oldName plumbing.ReferenceName, force bool) error {
	if err := d.cache.refresh(d.fs); err != nil {
		return err
	}

	exists, err := d.Exists(newName)
	if err != nil {
		return err
	}

	if exists && !force && newName != oldName {
		return ErrAlreadyExists
	}

	loose, err := walkLooseNames(d.fs)
	if err != nil {
		return err
	}

	seen := make(map[plumbing.ReferenceName]struct{}, len(d.cache.entries)+len(loose))
	for n := range d.cache.entries {
		seen[n] = struct{}{}
	}
	for _, n := range loose {
		seen[n] = struct{}{}
	}

	for existing := range seen {
		if existing == oldName || existing == newName {
			continue
		}

		if newName.IsStrictPathPrefix(existing) || existing.IsStrictPathPrefix(newName) {
			return fmt.Errorf("%w: %s and %s", ErrPathCollision, newName, existing)
		}
	}

	return nil
}

// Write stores ref as a loose reference, after the availability check, via
// a filebuf commit so a concurrent reader never observes a partial write
// (§4.6, §5).
func (d *DotGit) Write(ref *plumbing.Reference, force bool) error {
	return d.write(ref, "", force)
}

// write is the shared implementation behind Write and Rename's final step.
// exemptOld, when non-empty, is excused from the availability check's
// collision scan — used by Rename, which must write the new name without
// tripping over the old name it just vacated.
func (d *DotGit) write(ref *plumbing.Reference, exemptOld plumbing.ReferenceName, force bool) error {
	if err := ref.Name().Validate(); err != nil {
		return err
	}

	if err := d.referencePathAvailable(ref.Name(), exemptOld, force); err != nil {
		return err
	}

	p := refPath(d.fs, ref.Name().String())

	// Clear a stale empty directory left behind by a previous delete of a
	// reference whose name used to be a path-prefix of this one.
	if err := removeEmptyDir(d.fs, p); err != nil {
		return err
	}

	if err := d.fs.MkdirAll(path.Dir(p), 0777); err != nil {
		return err
	}

	buf, err := filebuf.New(d.fs, p)
	if err != nil {
		return err
	}

	content := ref.Strings()[1] + "\n"
	if _, err := buf.Write([]byte(content)); err != nil {
		buf.Abort()
		return err
	}

	return buf.Commit()
}

// removeEmptyDir removes p if it exists and is an empty directory,
// clearing the shadow a prior delete can leave behind (§5).
func removeEmptyDir(fs interface {
	Stat(string) (os.FileInfo, error)
	ReadDir(string) ([]os.FileInfo, error)
	Remove(string) error
}, p string) error {
	fi, err := fs.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !fi.IsDir() {
		return nil
	}

	children, err := fs.ReadDir(p)
	if err != nil {
		return err
	}

	if len(children) > 0 {
		return nil
	}

	return fs.Remove(p)
}

// Delete removes name, unlinking its loose file if present and removing
// and rewriting the packed entry if present (§4.6). It is a NotFound error
// if neither representation has the name.
func (d *DotGit) Delete(name plumbing.ReferenceName) error {
	if err := d.cache.refresh(d.fs); err != nil {
		return err
	}

	p := refPath(d.fs, name.String())
	hadLoose := looseFileExists(d.fs, p)
	if hadLoose {
		if err := d.fs.Remove(p); err != nil {
			return err
		}
	}

	_, hadPacked := d.cache.entries[name]
	if !hadLoose && !hadPacked {
		return ErrReferenceNotFound
	}

	if hadPacked {
		delete(d.cache.entries, name)
		if err := d.rewritePackedRefs(); err != nil {
			return err
		}
	}

	return nil
}

// Rename moves old to new, preserving its value. As documented in §4.6 and
// §9, this is delete-then-write, not atomic across the pair: a crash
// between the two leaves the reference absent. This mirrors the teacher's
// own accepted trade-off; DESIGN.md records the choice to keep
// delete-then-write.
func (d *DotGit) Rename(oldName, newName plumbing.ReferenceName, force bool) (*plumbing.Reference, error) {
	if err := d.referencePathAvailable(newName, oldName, force); err != nil {
		return nil, err
	}

	ref, err := d.Reference(oldName)
	if err != nil {
		return nil, err
	}

	if err := d.Delete(oldName); err != nil {
		return nil, err
	}

	var renamed *plumbing.Reference
	switch ref.Type() {
	case plumbing.SymbolicReference:
		renamed = plumbing.NewSymbolicReference(newName, ref.Target())
	default:
		if peel, ok := ref.Peeled(); ok {
			renamed = plumbing.NewHashReferenceWithPeel(newName, ref.Hash(), peel)
		} else {
			renamed = plumbing.NewHashReference(newName, ref.Hash())
		}
	}

	if err := d.write(renamed, oldName, true); err != nil {
		return nil, err
	}

	return renamed, nil
}
