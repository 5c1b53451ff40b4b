package dotgit

import (
	"errors"

	"github.com/go-git/refdb/plumbing"
)

// ErrReferenceNotFound is plumbing.ErrReferenceNotFound, used directly
// rather than duplicated so that callers up and down the stack can match it
// with a single errors.Is check.
var ErrReferenceNotFound = plumbing.ErrReferenceNotFound

var (
	// ErrAlreadyExists is returned by Write when the target name is
	// already present and force was not requested.
	ErrAlreadyExists = errors.New("reference already exists")

	// ErrPathCollision is returned by Write and Rename when the target
	// name would collide with an existing name by path-prefix, i.e. one
	// name addresses a file and the other a directory under it.
	ErrPathCollision = errors.New("reference name collides with an existing path")

	// ErrCorruptPackedRefs is returned when the packed-refs file cannot be
	// parsed. The cache is left empty, not stale, until the file is fixed.
	ErrCorruptPackedRefs = errors.New("corrupt packed-refs file")

	// ErrCorruptLooseRef is returned when a single loose reference file
	// does not match any recognized shape.
	ErrCorruptLooseRef = errors.New("corrupt loose reference file")
)
