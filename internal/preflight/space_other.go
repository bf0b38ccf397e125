//go:build !unix

package preflight

import "errors"

var errUnsupported = errors.New("free space reporting unsupported")

// FreeBytes is not implemented on this platform.
func FreeBytes(string) (uint64, error) {
	return 0, errUnsupported
}

func accessRW(string) error {
	return nil
}
