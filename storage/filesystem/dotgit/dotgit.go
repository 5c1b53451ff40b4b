// Package dotgit implements the filesystem-backed reference database of a
// content-addressed version-control repository: it reconciles loose
// reference files and the packed-refs file into a single coherent view,
// and serializes mutation through the filebuf-commit discipline so a
// concurrent reader never observes torn state.
package dotgit

import (
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/refdb/plumbing/object"
)

const (
	packedRefsPath = "packed-refs"
	refsDir        = "refs"
)

// DotGit is a handle onto one reference database root. It is not
// zero-value safe; use New or NewWithNamespace. A DotGit is meant for
// single-threaded use per instance (§5); concurrent access across
// processes is handled by the filesystem, not by in-process locks.
type DotGit struct {
	fs     billy.Filesystem
	peeler object.Peeler
	cache  *refCache
}

// New returns a DotGit rooted directly at fs, with no namespace. peeler may
// be nil; it is only consulted by Compress when an entry needs a peel
// computed, and Compress degrades to "no peel" for such entries if absent.
func New(fs billy.Filesystem, peeler object.Peeler) *DotGit {
	return &DotGit{fs: fs, peeler: peeler, cache: newRefCache()}
}

// NewWithNamespace returns a DotGit rooted at the namespace subtree of fs,
// creating the intervening refs/namespaces/... directories if needed (§4.8).
// An empty namespace is equivalent to New.
func NewWithNamespace(fs billy.Filesystem, namespace string, peeler object.Peeler) (*DotGit, error) {
	root := namespaceRoot(namespace)
	if root == "" {
		return New(fs, peeler), nil
	}

	if err := fs.MkdirAll(root, 0777); err != nil {
		return nil, err
	}

	nsFs, err := fs.Chroot(root)
	if err != nil {
		return nil, err
	}

	return New(nsFs, peeler), nil
}

// Free releases the in-memory cache. It does not close the underlying
// filesystem, which the caller owns.
func (d *DotGit) Free() {
	d.cache = newRefCache()
}

// refPath converts a slash-delimited reference name into a path in the
// filesystem's own separator convention.
func refPath(fs billy.Filesystem, name string) string {
	return fs.Join(strings.Split(name, "/")...)
}
