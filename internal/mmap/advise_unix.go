//go:build unix && !linux

package mmap

// No portable way to exclude pages from core dumps.
func adviceFor(AccessPattern) (int, bool) {
	return 0, false
}
