package fileutil

import (
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of name used for case-insensitive
// comparisons of directory entries.
func Fold(name string) string {
	return cases.Fold().String(name)
}

// EqualFold compares two names under Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Lookup finds the child of dir whose name matches name case-insensitively
// and returns its actual path. An exact match is preferred when several
// entries fold to the same name.
func Lookup(dir, name string) (string, os.DirEntry, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, false
	}
	want := Fold(name)
	var found os.DirEntry
	for _, entry := range entries {
		if entry.Name() == name {
			return filepath.Join(dir, entry.Name()), entry, true
		}
		if found == nil && Fold(entry.Name()) == want {
			found = entry
		}
	}
	if found == nil {
		return "", nil, false
	}
	return filepath.Join(dir, found.Name()), found, true
}

// Resolve walks rel (slash separated) below base matching each segment
// case-insensitively and returns the real path when every segment exists.
func Resolve(base, rel string) (string, bool) {
	current := base
	for _, segment := range splitSegments(rel) {
		switch segment {
		case ".":
			continue
		case "..":
			current = filepath.Dir(current)
			continue
		}
		next, _, ok := Lookup(current, segment)
		if !ok {
			return "", false
		}
		current = next
	}
	return current, true
}

func splitSegments(rel string) []string {
	rel = filepath.ToSlash(rel)
	var out []string
	start := 0
	for i := 0; i <= len(rel); i++ {
		if i == len(rel) || rel[i] == '/' {
			if i > start {
				out = append(out, rel[start:i])
			}
			start = i + 1
		}
	}
	return out
}
