package dotgit

import (
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/refdb/plumbing"
)

// walkLooseNames recursively walks <root>/refs/ and returns every regular
// file's reference name, skipping ".lock" files, in the order the
// filesystem yields them (§4.5). The directory traversal itself is the one
// piece of this backend with no suitable third-party or pack library
// (neither go-billy nor its /util helper offer a recursive walk); it is
// built directly on billy.Filesystem.ReadDir, which is the abstraction the
// teacher already funnels every other filesystem access through.
func walkLooseNames(fs billy.Filesystem) ([]plumbing.ReferenceName, error) {
	var names []plumbing.ReferenceName
	err := walkDir(fs, refsDir, &names)
	if err != nil && os.IsNotExist(err) {
		return names, nil
	}
	return names, err
}

func walkDir(fs billy.Filesystem, dir string, out *[]plumbing.ReferenceName) error {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		child := fs.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := walkDir(fs, child, out); err != nil {
				return err
			}
			continue
		}

		if strings.HasSuffix(entry.Name(), ".lock") {
			continue
		}

		*out = append(*out, plumbing.ReferenceName(toSlash(child)))
	}

	return nil
}

// toSlash normalizes a filesystem-joined path back to the slash-delimited
// form reference names use.
func toSlash(p string) string {
	return strings.ReplaceAll(p, string(os.PathSeparator), "/")
}

// matchGlob reports whether name matches glob using shell-style path
// matching (path.Match), the same matcher the teacher's higher-level
// plumbing.Reference glob filters delegate to. An empty glob matches
// everything.
func matchGlob(glob string, name plumbing.ReferenceName) (bool, error) {
	if glob == "" {
		return true, nil
	}

	return path.Match(glob, name.String())
}
