//go:build unix

package preflight

import (
	"errors"

	"golang.org/x/sys/unix"
)

var errUnsupported = errors.New("free space reporting unsupported")

// FreeBytes returns the bytes available to unprivileged users on the volume
// holding path.
func FreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}

func accessRW(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK)
}
