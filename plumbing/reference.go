package plumbing

import (
	"strings"
)

const (
	refPrefix       = "refs/"
	refHeadPrefix   = refPrefix + "heads/"
	refTagPrefix    = refPrefix + "tags/"
	refRemotePrefix = refPrefix + "remotes/"
	refNotePrefix   = refPrefix + "notes/"

	symbolicPrefix = "ref: "
	lockSuffix     = ".lock"
)

// ReferenceName is a slash-delimited reference path, e.g. "refs/heads/master".
// It is treated as a byte string: printable but not required to be UTF-8.
type ReferenceName string

// HEAD is the name of the reference pointing at the currently checked out
// branch.
const HEAD ReferenceName = "HEAD"

// IsBranch reports whether n is under refs/heads/.
func (n ReferenceName) IsBranch() bool { return strings.HasPrefix(string(n), refHeadPrefix) }

// IsNote reports whether n is under refs/notes/.
func (n ReferenceName) IsNote() bool { return strings.HasPrefix(string(n), refNotePrefix) }

// IsRemote reports whether n is under refs/remotes/.
func (n ReferenceName) IsRemote() bool { return strings.HasPrefix(string(n), refRemotePrefix) }

// IsTag reports whether n is under refs/tags/.
func (n ReferenceName) IsTag() bool { return strings.HasPrefix(string(n), refTagPrefix) }

// String returns n as a plain string.
func (n ReferenceName) String() string { return string(n) }

// Validate checks n against the reference-name invariants of §3: no empty
// path component, no "." or ".." component, no ".lock" suffix.
func (n ReferenceName) Validate() error {
	s := string(n)
	if s == "" {
		return ErrInvalidReferenceName
	}

	if strings.HasSuffix(s, lockSuffix) {
		return ErrInvalidReferenceName
	}

	for _, part := range strings.Split(s, "/") {
		switch part {
		case "", ".", "..":
			return ErrInvalidReferenceName
		}
	}

	return nil
}

// IsStrictPathPrefix reports whether n is a strict path-prefix of other:
// identical up to a common length followed by '/' in the longer string.
func (n ReferenceName) IsStrictPathPrefix(other ReferenceName) bool {
	a, b := string(n), string(other)
	return len(a) < len(b) && strings.HasPrefix(b, a) && b[len(a)] == '/'
}

// ReferenceType distinguishes the two variants of Reference.
type ReferenceType int8

const (
	// InvalidReference marks a zero-value Reference.
	InvalidReference ReferenceType = iota
	// HashReference is a direct pointer to an object id.
	HashReference
	// SymbolicReference is a pointer to another reference name.
	SymbolicReference
)

func (t ReferenceType) String() string {
	switch t {
	case HashReference:
		return "hash-reference"
	case SymbolicReference:
		return "symbolic-reference"
	default:
		return "invalid-reference"
	}
}

// Reference is a named pointer: either a Direct pointer to an object id
// (with an optional peeled object id for annotated tags) or a Symbolic
// pointer to another reference name. It is a tagged union; callers dispatch
// on Type().
type Reference struct {
	typ     ReferenceType
	name    ReferenceName
	hash    ObjectID
	peeled  ObjectID
	hasPeel bool
	target  ReferenceName
}

// NewHashReference creates a new Direct reference.
func NewHashReference(name ReferenceName, hash ObjectID) *Reference {
	return &Reference{typ: HashReference, name: name, hash: hash}
}

// NewHashReferenceWithPeel creates a new Direct reference carrying a peeled
// object id, as produced for annotated tags resolved from packed-refs.
func NewHashReferenceWithPeel(name ReferenceName, hash, peeled ObjectID) *Reference {
	return &Reference{typ: HashReference, name: name, hash: hash, peeled: peeled, hasPeel: true}
}

// NewSymbolicReference creates a new Symbolic reference.
func NewSymbolicReference(name, target ReferenceName) *Reference {
	return &Reference{typ: SymbolicReference, name: name, target: target}
}

// Type returns the variant of r.
func (r *Reference) Type() ReferenceType { return r.typ }

// Name returns the name of r.
func (r *Reference) Name() ReferenceName { return r.name }

// Hash returns the target object id of a Direct reference. It is ZeroID for
// a Symbolic reference.
func (r *Reference) Hash() ObjectID { return r.hash }

// Peeled returns the peeled object id and whether one is present. Only
// meaningful for a Direct reference.
func (r *Reference) Peeled() (ObjectID, bool) { return r.peeled, r.hasPeel }

// Target returns the target reference name of a Symbolic reference.
func (r *Reference) Target() ReferenceName { return r.target }

// Strings returns r's name and the on-disk textual encoding of its value,
// without a trailing newline: the value is either "<hex-oid>" or
// "ref: <target-name>".
func (r *Reference) Strings() [2]string {
	switch r.typ {
	case SymbolicReference:
		return [2]string{r.name.String(), symbolicPrefix + r.target.String()}
	default:
		return [2]string{r.name.String(), r.hash.String()}
	}
}

func (r *Reference) String() string {
	s := r.Strings()
	return s[1]
}
