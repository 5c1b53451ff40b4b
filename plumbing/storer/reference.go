// Package storer defines the consumer-facing interfaces implemented by
// reference database backends, mirroring the shape the teacher exposes to
// the rest of a repository implementation (see storage/transactional and
// storage/memory in go-git).
package storer

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/refdb/plumbing"
)

// ErrStop is used as a return value from ForEach to stop the iteration
// early; it is never returned as an error by any function.
var ErrStop = errors.New("storer: stop iteration")

// errReferenceChanged is the base sentinel wrapped by ErrReferenceHasChanged.
var errReferenceChanged = errors.New("reference has changed")

// ErrReferenceHasChanged returns the error CheckAndSetReference reports
// when the stored value under name no longer matches the expected old
// value supplied by the caller.
func ErrReferenceHasChanged(name plumbing.ReferenceName) error {
	return fmt.Errorf("%w: %s", errReferenceChanged, name)
}

// IsReferenceHasChanged reports whether err was produced by
// ErrReferenceHasChanged.
func IsReferenceHasChanged(err error) bool {
	return errors.Is(err, errReferenceChanged)
}

// ReferenceStorer is the contract a reference-database backend exposes to
// its consumers (§6.1).
type ReferenceStorer interface {
	// SetReference writes ref to the backend unconditionally.
	SetReference(ref *plumbing.Reference) error
	// CheckAndSetReference writes ref only if the current value of
	// ref.Name() equals old; a nil old behaves like SetReference.
	CheckAndSetReference(ref, old *plumbing.Reference) error
	// Reference looks up a single reference by name.
	Reference(name plumbing.ReferenceName) (*plumbing.Reference, error)
	// IterReferences returns an iterator over every reference the backend
	// knows about, loose or packed, with loose shadowing packed.
	IterReferences() (ReferenceIter, error)
	// RemoveReference deletes a single reference by name.
	RemoveReference(name plumbing.ReferenceName) error
	// CountLooseRefs reports how many loose reference files currently
	// exist, used by callers to decide whether a repack is worthwhile.
	CountLooseRefs() (int, error)
	// PackRefs folds every loose reference into the packed file.
	PackRefs() error
}

// ReferenceIter is a closable iterator over references.
type ReferenceIter interface {
	Next() (*plumbing.Reference, error)
	ForEach(func(*plumbing.Reference) error) error
	Close()
}

// referenceSliceIter iterates over a pre-built slice of references.
type referenceSliceIter struct {
	series []*plumbing.Reference
	pos    int
}

// NewReferenceSliceIter returns a ReferenceIter over a fixed slice,
// mirroring the teacher's NewReferenceSliceIter helper.
func NewReferenceSliceIter(series []*plumbing.Reference) ReferenceIter {
	return &referenceSliceIter{series: series}
}

func (it *referenceSliceIter) Next() (*plumbing.Reference, error) {
	if it.pos >= len(it.series) {
		return nil, io.EOF
	}

	ref := it.series[it.pos]
	it.pos++
	return ref, nil
}

func (it *referenceSliceIter) ForEach(cb func(*plumbing.Reference) error) error {
	for _, ref := range it.series {
		if err := cb(ref); err != nil {
			if err == ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

func (it *referenceSliceIter) Close() {
	it.pos = len(it.series)
}

// NewReferenceFilteredIter returns a ReferenceIter that only yields
// references for which cond returns true.
func NewReferenceFilteredIter(cond func(*plumbing.Reference) bool, iter ReferenceIter) ReferenceIter {
	return &referenceFilteredIter{cond, iter}
}

type referenceFilteredIter struct {
	cond func(*plumbing.Reference) bool
	iter ReferenceIter
}

func (it *referenceFilteredIter) Next() (*plumbing.Reference, error) {
	for {
		ref, err := it.iter.Next()
		if err != nil {
			return nil, err
		}

		if it.cond(ref) {
			return ref, nil
		}
	}
}

func (it *referenceFilteredIter) ForEach(cb func(*plumbing.Reference) error) error {
	for {
		ref, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := cb(ref); err != nil {
			if err == ErrStop {
				return nil
			}
			return err
		}
	}
}

func (it *referenceFilteredIter) Close() { it.iter.Close() }
