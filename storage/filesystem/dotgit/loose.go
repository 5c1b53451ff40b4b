package dotgit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/refdb/plumbing"
)

// readLooseFile reads and trims the content of the loose reference file at
// path, also returning its mtime so callers can use it for change
// detection the way the packed-refs cache does.
func readLooseFile(fs billy.Filesystem, path string) ([]byte, time.Time, error) {
	fi, err := fs.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, time.Time{}, err
	}

	return bytes.TrimSpace(b), fi.ModTime(), nil
}

// parseLooseContent interprets trimmed loose-reference content per §4.2:
// either a "ref: <target>" symbolic pointer or exactly 40 hex bytes
// optionally followed by whitespace.
func parseLooseContent(name plumbing.ReferenceName, content []byte) (*plumbing.Reference, error) {
	const symbolicPrefix = "ref: "

	if bytes.HasPrefix(content, []byte(symbolicPrefix)) {
		target := bytes.TrimSpace(content[len(symbolicPrefix):])
		if len(target) == 0 {
			return nil, fmt.Errorf("%w: %s: empty symbolic target", ErrCorruptLooseRef, name)
		}

		return plumbing.NewSymbolicReference(name, plumbing.ReferenceName(target)), nil
	}

	if len(content) < 40 {
		return nil, fmt.Errorf("%w: %s: too short for an object id", ErrCorruptLooseRef, name)
	}

	hexPart := content[:40]
	rest := content[40:]
	if len(rest) > 0 && !isAllWhitespace(rest) {
		return nil, fmt.Errorf("%w: %s: trailing garbage after object id", ErrCorruptLooseRef, name)
	}

	oid, err := plumbing.FromHex(string(hexPart))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLooseRef, name, err)
	}

	return plumbing.NewHashReference(name, oid), nil
}

func isAllWhitespace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

// readLooseReference reads and parses the loose reference file for name at
// the given root-relative path. A missing file surfaces as a plain
// os.IsNotExist-satisfying error for the caller to distinguish from
// corruption.
func readLooseReference(fs billy.Filesystem, path string, name plumbing.ReferenceName) (*plumbing.Reference, error) {
	content, _, err := readLooseFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("reading loose reference %s: %w", name, err)
	}

	return parseLooseContent(name, content)
}

// looseFileExists reports whether path names a regular file (not a
// directory, which can be left behind as an empty shadow by a previous
// delete; see removeEmptyDir in mutator.go).
func looseFileExists(fs billy.Filesystem, path string) bool {
	fi, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}
