package validate

import (
	"os"

	"acmm/internal/fileutil"
)

// Entry is one node of a required-structure tree: a file, or a directory
// with its own required children.
type Entry struct {
	Name     string
	Dir      bool
	Children []Entry
}

// File requires a regular file named name.
func File(name string) Entry {
	return Entry{Name: name}
}

// Dir requires a directory named name containing every child entry.
func Dir(name string, children ...Entry) Entry {
	return Entry{Name: name, Dir: true, Children: children}
}

// Matches reports whether the directory at path satisfies every entry.
// Names are matched case-insensitively against the real directory listing.
func Matches(path string, entries ...Entry) bool {
	if !fileutil.IsDir(path) {
		return false
	}
	for _, entry := range entries {
		if !matchEntry(path, entry) {
			return false
		}
	}
	return true
}

func matchEntry(parent string, entry Entry) bool {
	found, _, ok := fileutil.Lookup(parent, entry.Name)
	if !ok {
		return false
	}
	info, err := os.Stat(found)
	if err != nil {
		return false
	}
	if !entry.Dir {
		return info.Mode().IsRegular()
	}
	if !info.IsDir() {
		return false
	}
	for _, child := range entry.Children {
		if !matchEntry(found, child) {
			return false
		}
	}
	return true
}
