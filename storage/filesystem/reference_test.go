package filesystem

import (
	"io"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"

	"github.com/go-git/refdb/plumbing"
	"github.com/go-git/refdb/plumbing/storer"
)

func TestReferenceStorageSetAndGet(t *testing.T) {
	fs := memfs.New()
	rs := NewReferenceStorage(fs, nil)

	oid := plumbing.NewObjectID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	ref := plumbing.NewHashReference("refs/heads/master", oid)

	require.NoError(t, rs.SetReference(ref))

	got, err := rs.Reference("refs/heads/master")
	require.NoError(t, err)
	require.Equal(t, oid, got.Hash())
}

func TestReferenceStorageCheckAndSetReferenceDetectsChange(t *testing.T) {
	fs := memfs.New()
	rs := NewReferenceStorage(fs, nil)

	oidA := plumbing.NewObjectID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	oidB := plumbing.NewObjectID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	oidC := plumbing.NewObjectID("cccccccccccccccccccccccccccccccccccccccc")

	require.NoError(t, rs.SetReference(plumbing.NewHashReference("refs/heads/master", oidA)))

	stale := plumbing.NewHashReference("refs/heads/master", oidB)
	next := plumbing.NewHashReference("refs/heads/master", oidC)
	err := rs.CheckAndSetReference(next, stale)
	require.Error(t, err)
	require.True(t, storer.IsReferenceHasChanged(err))

	fresh := plumbing.NewHashReference("refs/heads/master", oidA)
	require.NoError(t, rs.CheckAndSetReference(next, fresh))

	got, err := rs.Reference("refs/heads/master")
	require.NoError(t, err)
	require.Equal(t, oidC, got.Hash())
}

func TestReferenceStorageIterReferences(t *testing.T) {
	fs := memfs.New()
	rs := NewReferenceStorage(fs, nil)

	oid := plumbing.NewObjectID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, rs.SetReference(plumbing.NewHashReference("refs/heads/a", oid)))
	require.NoError(t, rs.SetReference(plumbing.NewHashReference("refs/heads/b", oid)))

	it, err := rs.IterReferences()
	require.NoError(t, err)
	defer it.Close()

	count := 0
	for {
		_, err := it.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	require.Equal(t, 2, count)
}

func TestReferenceStoragePackRefs(t *testing.T) {
	fs := memfs.New()
	rs := NewReferenceStorage(fs, nil)

	oid := plumbing.NewObjectID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, rs.SetReference(plumbing.NewHashReference("refs/heads/a", oid)))

	count, err := rs.CountLooseRefs()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, rs.PackRefs())

	count, err = rs.CountLooseRefs()
	require.NoError(t, err)
	require.Equal(t, 0, count)

	got, err := rs.Reference("refs/heads/a")
	require.NoError(t, err)
	require.Equal(t, oid, got.Hash())
}
