package dotgit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackedRefsEmpty(t *testing.T) {
	entries, mode, err := parsePackedRefs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, peelingNone, mode)
}

func TestParsePackedRefsHeaderAndCommentsOnly(t *testing.T) {
	content := "# pack-refs with: peeled\n# a comment\n"
	entries, mode, err := parsePackedRefs(strings.NewReader(content))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, peelingStandard, mode)
}

func TestParsePackedRefsPeeling(t *testing.T) {
	content := "# pack-refs with: peeled\n" +
		"0000000000000000000000000000000000000001 refs/heads/a\n" +
		"0000000000000000000000000000000000000002 refs/tags/v1\n" +
		"^0000000000000000000000000000000000000003\n"

	entries, mode, err := parsePackedRefs(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, peelingStandard, mode)
	require.Len(t, entries, 2)

	a := entries[0]
	assert.Equal(t, "refs/heads/a", a.name.String())
	assert.False(t, a.hasPeel())

	v1 := entries[1]
	assert.Equal(t, "refs/tags/v1", v1.name.String())
	assert.True(t, v1.hasPeel())
	assert.Equal(t, "0000000000000000000000000000000000000003", v1.peel.String())
}

func TestParsePackedRefsFullyPeeledMarksNonTagCannotPeel(t *testing.T) {
	content := "# pack-refs with: fully-peeled\n" +
		"0000000000000000000000000000000000000001 refs/heads/a\n"

	entries, mode, err := parsePackedRefs(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, peelingFull, mode)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].cannotPeel())
}

func TestParsePackedRefsStandardMarksUnpeeledTagCannotPeel(t *testing.T) {
	content := "# pack-refs with: peeled\n" +
		"0000000000000000000000000000000000000001 refs/tags/unpeeled\n" +
		"0000000000000000000000000000000000000002 refs/heads/a\n"

	entries, mode, err := parsePackedRefs(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, peelingStandard, mode)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].cannotPeel())
	assert.False(t, entries[1].cannotPeel())
}

func TestParsePackedRefsPeelWithoutPrecedingEntryIsCorrupt(t *testing.T) {
	content := "^0000000000000000000000000000000000000001\n"

	_, _, err := parsePackedRefs(strings.NewReader(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptPackedRefs))
}

func TestParsePackedRefsBadHexIsCorrupt(t *testing.T) {
	content := "bogus refs/heads/a\n"

	_, _, err := parsePackedRefs(strings.NewReader(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptPackedRefs))
}

func TestParsePackedRefsMissingSpaceIsCorrupt(t *testing.T) {
	content := "0000000000000000000000000000000000000001\n"

	_, _, err := parsePackedRefs(strings.NewReader(content))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorruptPackedRefs))
}

func TestSerializeParseRoundTrip(t *testing.T) {
	entries := []*packedEntry{
		{name: "refs/heads/a", oid: mustOID("0000000000000000000000000000000000000001")},
		{
			name:  "refs/tags/v1",
			oid:   mustOID("0000000000000000000000000000000000000002"),
			peel:  mustOID("0000000000000000000000000000000000000003"),
			flags: flagHasPeel,
		},
	}

	payload, err := serializePackedRefsBytes(entries)
	require.NoError(t, err)

	parsed, mode, err := parsePackedRefs(strings.NewReader(string(payload)))
	require.NoError(t, err)
	assert.Equal(t, peelingStandard, mode)
	require.Len(t, parsed, 2)

	assert.Equal(t, entries[0].name, parsed[0].name)
	assert.Equal(t, entries[0].oid, parsed[0].oid)
	assert.Equal(t, entries[1].name, parsed[1].name)
	assert.Equal(t, entries[1].oid, parsed[1].oid)
	assert.True(t, parsed[1].hasPeel())
	assert.Equal(t, entries[1].peel, parsed[1].peel)
}

func TestSerializeNoHeaderWithoutPeels(t *testing.T) {
	entries := []*packedEntry{
		{name: "refs/heads/a", oid: mustOID("0000000000000000000000000000000000000001")},
	}

	payload, err := serializePackedRefsBytes(entries)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(payload), "#"))
}
