package dotgit

import (
	"os"

	"github.com/go-git/refdb/plumbing"
)

// Exists reports whether name is present either as a loose file or as a
// packed entry, refreshing the cache first (§4.4).
func (d *DotGit) Exists(name plumbing.ReferenceName) (bool, error) {
	if err := d.cache.refresh(d.fs); err != nil {
		return false, err
	}

	if looseFileExists(d.fs, refPath(d.fs, name.String())) {
		return true, nil
	}

	_, ok := d.cache.entries[name]
	return ok, nil
}

// Reference resolves name to its value, preferring the loose
// representation when both exist (§4.4's shadowing rationale: loose is the
// only representation that can be mutated incrementally).
func (d *DotGit) Reference(name plumbing.ReferenceName) (*plumbing.Reference, error) {
	if err := d.cache.refresh(d.fs); err != nil {
		return nil, err
	}

	ref, err := readLooseReference(d.fs, refPath(d.fs, name.String()), name)
	if err == nil {
		return ref, nil
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	entry, ok := d.cache.entries[name]
	if !ok {
		return nil, ErrReferenceNotFound
	}

	return entry.toReference(), nil
}
