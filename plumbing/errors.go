package plumbing

import "errors"

var (
	// ErrReferenceNotFound is returned when a reference lookup or delete
	// finds neither a loose file nor a packed entry for the name.
	ErrReferenceNotFound = errors.New("reference not found")
	// ErrInvalidObjectID is returned when a string does not decode to a
	// well-formed 40-character lowercase hex object id.
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrInvalidReferenceName is returned by ReferenceName.Validate.
	ErrInvalidReferenceName = errors.New("invalid reference name")
)
