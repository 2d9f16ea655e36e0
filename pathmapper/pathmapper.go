// Package pathmapper rewrites paths recorded at build time into the paths
// they have at run time, for running tests in a different directory, or on a
// different computer, from the one that built them.
package pathmapper

import (
	"os"
	"path/filepath"
	"strings"
)

type remap struct {
	from string
	to   string
}

// Mapper rewrites working directories and binary paths. A nil *Mapper is
// valid and leaves every path unchanged.
type Mapper struct {
	workspace   *remap
	binariesDir string
}

// New constructs a path mapper. buildRoot is the workspace root recorded at
// build time, runRoot the directory it lives in at run time. binariesDir, if
// set, is the directory all test binaries were moved to. Returns nil if
// neither a run root nor a binaries directory is given.
func New(buildRoot, runRoot, binariesDir string) *Mapper {
	if runRoot == "" && binariesDir == "" {
		return nil
	}

	m := &Mapper{binariesDir: binariesDir}
	if runRoot != "" {
		m.workspace = &remap{
			from: filepath.Clean(buildRoot),
			to:   runRoot,
		}
	}
	return m
}

// MapCwd rewrites the build root prefix of path to the run root. Paths
// outside the build root are returned unchanged.
func (m *Mapper) MapCwd(path string) string {
	if m == nil || m.workspace == nil {
		return path
	}

	rest, ok := stripPrefix(filepath.Clean(path), m.workspace.from)
	if !ok {
		return path
	}
	return filepath.Join(m.workspace.to, rest)
}

// MapBinary moves path into the binaries directory, keeping only its file
// name.
func (m *Mapper) MapBinary(path string) string {
	if m == nil || m.binariesDir == "" {
		return path
	}

	name := fileName(path)
	if name == "" {
		return path
	}
	return filepath.Join(m.binariesDir, name)
}

// stripPrefix removes prefix from path on whole path components.
func stripPrefix(path, prefix string) (string, bool) {
	if path == prefix {
		return "", true
	}
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	return path[len(prefix):], true
}

// fileName returns the final component of path, or "" if there is none
func fileName(path string) string {
	if path == "" || strings.HasSuffix(path, string(os.PathSeparator)+"..") || path == ".." {
		return ""
	}
	base := filepath.Base(path)
	if base == "." || base == string(os.PathSeparator) {
		return ""
	}
	return base
}
