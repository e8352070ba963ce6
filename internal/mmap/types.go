package mmap

import "errors"

// AccessPattern provides hints to the kernel about how the mapping is used.
type AccessPattern int

const (
	// AccessDontDump excludes the pages from core dumps.
	AccessDontDump AccessPattern = iota + 1
)

var (
	// ErrClosed is returned when attempting to use a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the requested size is not positive.
	ErrInvalidSize = errors.New("mmap: invalid size")
)
