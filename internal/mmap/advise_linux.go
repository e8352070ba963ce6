//go:build linux

package mmap

import "golang.org/x/sys/unix"

func adviceFor(pattern AccessPattern) (int, bool) {
	if pattern == AccessDontDump {
		return unix.MADV_DONTDUMP, true
	}
	return 0, false
}
