// Package ignore matches vault-relative paths against ignore patterns and
// canonicalizes paths for matching. Shared by the watcher and the index.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
)

// Matcher holds the configured ignore patterns. Patterns apply to each path
// segment via filepath.Match ("*.tmp", ".*") and to the whole relative path
// for "**" patterns (".rft/**").
type Matcher struct {
	patterns []string
}

// NewMatcher creates a matcher from config patterns.
func NewMatcher(patterns []string) *Matcher {
	return &Matcher{patterns: patterns}
}

// Match reports whether the vault-relative slash path should be ignored.
func (m *Matcher) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	segments := strings.Split(relPath, "/")

	for _, pattern := range m.patterns {
		if strings.Contains(pattern, "**") {
			if matchDoubleStar(pattern, relPath) {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if ok, _ := filepath.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}

// matchDoubleStar handles the "prefix/**" and "**/suffix" forms: prefix
// and suffix anchored, anything between.
func matchDoubleStar(pattern, relPath string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	if len(parts) != 2 {
		return false
	}
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(relPath, prefix) {
		return false
	}
	if suffix != "" && !strings.HasSuffix(relPath, suffix) {
		return false
	}
	return prefix != "" || suffix != ""
}

// Rel converts an absolute path to a vault-relative canonical path with
// forward slashes, resolving symlinks where the paths exist.
func Rel(absolutePath, vaultRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(vaultRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = vaultRoot
		} else {
			return "", err
		}
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}
