// Package testutil provides testing utilities for secmem.
//
// This package is intended for use in tests and benchmarks only.
// It fills buffers with reproducible non-zero data so that erasure is
// observable, and checks that memory reads as zero afterwards.
//
//	rng := testutil.NewRNG(seed)
//	buf := make([]byte, 64)
//	rng.FillNonZero(buf)
//	secmem.EraseBytes(buf)
//	testutil.RequireZero(t, buf)
package testutil
