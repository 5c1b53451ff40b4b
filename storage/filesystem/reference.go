// Package filesystem adapts the dotgit reference backend to the
// plumbing/storer.ReferenceStorer interface consumers of a go-git-style
// repository actually import, mirroring storage/filesystem/reference.go
// and storage/transactional/reference.go in the teacher.
package filesystem

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/refdb/plumbing"
	"github.com/go-git/refdb/plumbing/object"
	"github.com/go-git/refdb/plumbing/storer"
	"github.com/go-git/refdb/storage/filesystem/dotgit"
)

// ReferenceStorage is a storer.ReferenceStorer backed by a filesystem
// reference database.
type ReferenceStorage struct {
	dir *dotgit.DotGit
}

// NewReferenceStorage returns a ReferenceStorage rooted directly at fs.
// peeler may be nil; PackRefs then records no peel for entries that do not
// already carry one.
func NewReferenceStorage(fs billy.Filesystem, peeler object.Peeler) *ReferenceStorage {
	return &ReferenceStorage{dir: dotgit.New(fs, peeler)}
}

// NewReferenceStorageWithNamespace returns a ReferenceStorage rooted at the
// given namespace within fs (§4.8).
func NewReferenceStorageWithNamespace(fs billy.Filesystem, namespace string, peeler object.Peeler) (*ReferenceStorage, error) {
	dir, err := dotgit.NewWithNamespace(fs, namespace, peeler)
	if err != nil {
		return nil, err
	}

	return &ReferenceStorage{dir: dir}, nil
}

// SetReference honors storer.ReferenceStorer.
func (r *ReferenceStorage) SetReference(ref *plumbing.Reference) error {
	return r.dir.Write(ref, true)
}

// CheckAndSetReference honors storer.ReferenceStorer. old, when non-nil,
// must match the reference currently stored under old.Name(): the current
// value is read back and its type, hash and symbolic target are compared
// with old before ref is written with force.
func (r *ReferenceStorage) CheckAndSetReference(ref, old *plumbing.Reference) error {
	if old == nil {
		return r.SetReference(ref)
	}

	current, err := r.dir.Reference(old.Name())
	if err != nil {
		return err
	}

	if current.Type() != old.Type() || current.Hash() != old.Hash() || current.Target() != old.Target() {
		return storer.ErrReferenceHasChanged(old.Name())
	}

	return r.dir.Write(ref, true)
}

// Reference honors storer.ReferenceStorer.
func (r *ReferenceStorage) Reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	return r.dir.Reference(name)
}

// IterReferences honors storer.ReferenceStorer.
func (r *ReferenceStorage) IterReferences() (storer.ReferenceIter, error) {
	it, err := r.dir.Iterator("")
	if err != nil {
		return nil, err
	}

	return &referenceIterAdapter{it}, nil
}

// RemoveReference honors storer.ReferenceStorer.
func (r *ReferenceStorage) RemoveReference(name plumbing.ReferenceName) error {
	return r.dir.Delete(name)
}

// CountLooseRefs honors storer.ReferenceStorer.
func (r *ReferenceStorage) CountLooseRefs() (int, error) {
	return r.dir.CountLoose()
}

// PackRefs honors storer.ReferenceStorer.
func (r *ReferenceStorage) PackRefs() error {
	return r.dir.Compress()
}

// Close releases the backend's in-memory cache.
func (r *ReferenceStorage) Close() {
	r.dir.Free()
}

type referenceIterAdapter struct {
	it *dotgit.Iterator
}

func (a *referenceIterAdapter) Next() (*plumbing.Reference, error) { return a.it.Next() }
func (a *referenceIterAdapter) ForEach(cb func(*plumbing.Reference) error) error {
	if err := a.it.ForEach(cb); err != storer.ErrStop {
		return err
	}
	return nil
}
func (a *referenceIterAdapter) Close() { a.it.Close() }
