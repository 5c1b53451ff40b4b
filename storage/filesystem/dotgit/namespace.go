package dotgit

import "strings"

// namespaceRoot translates a namespace string into the physical root
// directory relative to the repository root, per §4.8: parts p1/p2/.../pk
// become refs/namespaces/p1/refs/namespaces/p2/.../refs/namespaces/pk.
// An empty namespace yields "", i.e. the repository root itself.
func namespaceRoot(namespace string) string {
	if namespace == "" {
		return ""
	}

	parts := strings.Split(namespace, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segments = append(segments, "refs", "namespaces", p)
	}

	return strings.Join(segments, "/")
}
