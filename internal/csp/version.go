package csp

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a shaders patch release number.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion accepts "M.m.p" with an optional leading "v".
func ParseVersion(value string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(value), "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("csp: invalid version %q", value)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("csp: invalid version %q", value)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less orders versions numerically.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
