package snapshot

import (
	"strings"

	"pault.ag/go/debian/version"
)

// CompareVersions orders Debian package versions ([epoch:]upstream[-revision]).
// It returns -1, 0 or 1. Versions dpkg would reject sort below valid ones.
func CompareVersions(a, b string) int {
	va, errA := version.Parse(strings.TrimSpace(a))
	vb, errB := version.Parse(strings.TrimSpace(b))
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}

	switch c := version.Compare(va, vb); {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}
