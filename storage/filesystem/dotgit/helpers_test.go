package dotgit

import (
	"github.com/go-git/refdb/plumbing"
)

func mustOID(s string) plumbing.ObjectID {
	oid, err := plumbing.FromHex(s)
	if err != nil {
		panic(err)
	}
	return oid
}
