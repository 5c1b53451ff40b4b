package plumbing

import (
	"encoding/hex"
	"sort"
)

// hashSize is the length in bytes of an ObjectID.
const hashSize = 20

// ObjectID is a fixed-width content hash identifying an object in the
// repository. It is represented textually as 40 lowercase hex characters.
type ObjectID [hashSize]byte

// ZeroID is the all-zero ObjectID.
var ZeroID ObjectID

// NewObjectID returns a new ObjectID based on a hexadecimal representation.
// An invalid input results in ZeroID, mirroring the teacher's forgiving
// NewHash constructor; callers that must reject invalid input should use
// FromHex instead.
func NewObjectID(s string) ObjectID {
	h, _ := FromHex(s)
	return h
}

// FromHex parses a 40-character lowercase hex string into an ObjectID.
func FromHex(s string) (ObjectID, error) {
	var h ObjectID
	if !IsValidHex(s) {
		return h, ErrInvalidObjectID
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return h, ErrInvalidObjectID
	}

	copy(h[:], b)
	return h, nil
}

// IsValidHex reports whether s is a well-formed 40-character lowercase hex
// object id.
func IsValidHex(s string) bool {
	if len(s) != hashSize*2 {
		return false
	}

	for _, c := range []byte(s) {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}

	return true
}

// String returns the lowercase hex representation of h.
func (h ObjectID) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero object id.
func (h ObjectID) IsZero() bool {
	return h == ZeroID
}

// Bytes returns a copy of the raw object id bytes.
func (h ObjectID) Bytes() []byte {
	b := make([]byte, hashSize)
	copy(b, h[:])
	return b
}

// ObjectIDSlice attaches the methods of sort.Interface, sorting in
// increasing lexicographic order.
type ObjectIDSlice []ObjectID

func (s ObjectIDSlice) Len() int           { return len(s) }
func (s ObjectIDSlice) Less(i, j int) bool { return s[i].String() < s[j].String() }
func (s ObjectIDSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// SortObjectIDs sorts a slice of ObjectID in increasing order.
func SortObjectIDs(a []ObjectID) {
	sort.Sort(ObjectIDSlice(a))
}
