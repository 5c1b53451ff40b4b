package plumbing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	h, err := FromHex("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	require.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", h.String())
}

func TestFromHexInvalid(t *testing.T) {
	cases := []string{
		"",
		"short",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", // uppercase not allowed
		"zzzzaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // 41 chars
	}

	for _, c := range cases {
		_, err := FromHex(c)
		require.Error(t, err, "FromHex(%q)", c)
	}
}

func TestNewObjectIDForgiving(t *testing.T) {
	require.Equal(t, ZeroID, NewObjectID("not-a-hash"))
}

func TestSortObjectIDs(t *testing.T) {
	a := NewObjectID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	b := NewObjectID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	ids := []ObjectID{a, b}

	SortObjectIDs(ids)

	require.Equal(t, []ObjectID{b, a}, ids)
}
