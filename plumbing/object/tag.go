// Package object defines the narrow object-database collaborator consumed
// by the reference backend's compactor (§6.2). It deliberately does not
// implement object storage, decoding, or any other object-database
// behavior — those are out of scope for this spec and are left to whatever
// real object store a caller wires in.
package object

import "github.com/go-git/refdb/plumbing"

// ObjectType identifies the kind of object resolved by a Peeler.
type ObjectType int8

const (
	// AnyObject means the caller does not constrain the type.
	AnyObject ObjectType = iota
	CommitObject
	TreeObject
	BlobObject
	TagObject
)

// Tag is the minimal shape of an annotated tag object the compactor needs:
// just enough to record the tag's immediate target as a packed-refs peel.
type Tag struct {
	// Target is the object id the tag points at.
	Target plumbing.ObjectID
}

// Peeler looks up an object's type by id and, for tag objects, reads the
// tag's target. It is the only object-database seam this package consumes;
// everything else about object storage is an external collaborator.
type Peeler interface {
	// ObjectType reports the type of the object named by id.
	ObjectType(id plumbing.ObjectID) (ObjectType, error)
	// GetTag reads the tag object named by id. Only valid when
	// ObjectType(id) == TagObject.
	GetTag(id plumbing.ObjectID) (*Tag, error)
}
