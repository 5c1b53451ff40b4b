package dotgit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-git/refdb/plumbing"
)

func TestParseLooseContentHash(t *testing.T) {
	ref, err := parseLooseContent("refs/heads/master", []byte("0000000000000000000000000000000000000001"))
	require.NoError(t, err)
	assert.Equal(t, plumbing.HashReference, ref.Type())
	assert.Equal(t, "0000000000000000000000000000000000000001", ref.Hash().String())
}

func TestParseLooseContentHashWithTrailingWhitespace(t *testing.T) {
	ref, err := parseLooseContent("refs/heads/master", []byte("0000000000000000000000000000000000000001\n"))
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000000000000000000001", ref.Hash().String())
}

func TestParseLooseContentHashWithGarbageRejected(t *testing.T) {
	_, err := parseLooseContent("refs/heads/master", []byte("0000000000000000000000000000000000000001x"))
	assert.Error(t, err)
}

func TestParseLooseContentSymbolic(t *testing.T) {
	ref, err := parseLooseContent(plumbing.HEAD, []byte("ref: refs/heads/master\n"))
	require.NoError(t, err)
	assert.Equal(t, plumbing.SymbolicReference, ref.Type())
	assert.Equal(t, plumbing.ReferenceName("refs/heads/master"), ref.Target())
}

func TestParseLooseContentSymbolicEmptyTargetRejected(t *testing.T) {
	_, err := parseLooseContent(plumbing.HEAD, []byte("ref: "))
	assert.Error(t, err)
}

func TestParseLooseContentTooShortRejected(t *testing.T) {
	_, err := parseLooseContent("refs/heads/master", []byte("abc"))
	assert.Error(t, err)
}
