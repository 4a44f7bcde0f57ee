package sdkmanager

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Revision reads Pkg.Revision from the source.properties of an installed package.
func Revision(location string) (string, bool) {
	f, err := os.Open(filepath.Join(location, "source.properties"))
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "Pkg.Revision" {
			rev := strings.TrimSpace(value)
			return rev, rev != ""
		}
	}
	return "", false
}
