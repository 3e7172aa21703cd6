//go:build !linux

package tty

import "errors"

var errRawUnsupported = errors.New("raw line settings are only supported on linux")

func makeRaw(uintptr) error {
	return errRawUnsupported
}
