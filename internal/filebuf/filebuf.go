// Package filebuf implements the "filebuf commit" discipline used by every
// mutator in this repository (§5, §9): write a full replacement into a
// temporary file beside the target, then atomically rename it into place,
// so a concurrent reader always observes either the old content or the new
// content and never a torn write.
package filebuf

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
)

const lockSuffix = ".lock"

// Buffer is a single filebuf-commit in progress: a temp file under the
// target's directory that either gets renamed onto the target (Commit) or
// removed without effect (Abort).
type Buffer struct {
	fs     billy.Filesystem
	target string
	tmp    billy.File
}

// New opens a temporary file named "<target>.lock" in target's directory,
// ready to be written to. It fails with AlreadyExists semantics deferred to
// the caller: a stale lockfile left by a crashed writer is simply reused and
// truncated, matching the teacher's tmp-file-in-parent-dir convention from
// storage/filesystem/internal/dotgit/writers.go.
func New(fs billy.Filesystem, target string) (*Buffer, error) {
	tmp, err := fs.Create(target + lockSuffix)
	if err != nil {
		return nil, fmt.Errorf("filebuf: opening temp file for %q: %w", target, err)
	}

	return &Buffer{fs: fs, target: target, tmp: tmp}, nil
}

// Write appends p to the buffered content.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.tmp.Write(p)
}

// Commit closes the temp file and atomically renames it onto the target
// path. After Commit, b must not be reused.
func (b *Buffer) Commit() error {
	if err := b.tmp.Close(); err != nil {
		return fmt.Errorf("filebuf: closing temp file for %q: %w", b.target, err)
	}

	if err := b.fs.Rename(b.tmp.Name(), b.target); err != nil {
		return fmt.Errorf("filebuf: committing %q: %w", b.target, err)
	}

	return nil
}

// Abort closes and removes the temp file, leaving the target untouched.
// Errors are intentionally swallowed: Abort is only called on the error path
// of an already-failed operation, and the original error is what the caller
// should see.
func (b *Buffer) Abort() {
	_ = b.tmp.Close()
	_ = b.fs.Remove(b.tmp.Name())
}
