//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}

	advice, ok := adviceFor(pattern)
	if !ok {
		return nil
	}

	err := unix.Madvise(data, advice)
	if err == unix.EINVAL {
		// Unsupported advice or a page alignment issue; the hint is advisory.
		return nil
	}
	return err
}
