package plumbing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceNameValidate(t *testing.T) {
	valid := []ReferenceName{"refs/heads/master", "HEAD", "refs/tags/v1.0"}
	for _, n := range valid {
		assert.NoError(t, n.Validate(), "Validate(%q)", n)
	}

	invalid := []ReferenceName{"", "refs//heads", "refs/./heads", "refs/../heads", "refs/heads/x.lock"}
	for _, n := range invalid {
		assert.Error(t, n.Validate(), "Validate(%q)", n)
	}
}

func TestIsStrictPathPrefix(t *testing.T) {
	a := ReferenceName("refs/heads/feature")
	b := ReferenceName("refs/heads/feature/x")

	require.True(t, a.IsStrictPathPrefix(b))
	require.False(t, b.IsStrictPathPrefix(a))

	c := ReferenceName("refs/heads/featurex")
	require.False(t, a.IsStrictPathPrefix(c), "not a path boundary")
	require.False(t, a.IsStrictPathPrefix(a), "a name is not a strict prefix of itself")
}

func TestReferencePredicates(t *testing.T) {
	cases := []struct {
		name             ReferenceName
		branch, tag, rem bool
	}{
		{"refs/heads/master", true, false, false},
		{"refs/tags/v1", false, true, false},
		{"refs/remotes/origin/master", false, false, true},
	}

	for _, c := range cases {
		assert.Equal(t, c.branch, c.name.IsBranch(), "%s.IsBranch()", c.name)
		assert.Equal(t, c.tag, c.name.IsTag(), "%s.IsTag()", c.name)
		assert.Equal(t, c.rem, c.name.IsRemote(), "%s.IsRemote()", c.name)
	}
}

func TestHashReferenceStrings(t *testing.T) {
	oid := NewObjectID("0000000000000000000000000000000000000001")
	ref := NewHashReference("refs/heads/master", oid)

	s := ref.Strings()
	assert.Equal(t, "refs/heads/master", s[0])
	assert.Equal(t, oid.String(), s[1])
}

func TestSymbolicReferenceStrings(t *testing.T) {
	ref := NewSymbolicReference(HEAD, "refs/heads/master")

	s := ref.Strings()
	assert.Equal(t, "ref: refs/heads/master", s[1])
	assert.Equal(t, SymbolicReference, ref.Type())
}

func TestHashReferenceWithPeel(t *testing.T) {
	oid := NewObjectID("0000000000000000000000000000000000000001")
	peel := NewObjectID("0000000000000000000000000000000000000002")

	ref := NewHashReferenceWithPeel("refs/tags/v1", oid, peel)

	got, ok := ref.Peeled()
	require.True(t, ok, "expected a peel to be present")
	assert.Equal(t, peel, got)
}
