package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/secmem"
	"github.com/hupe1980/secmem/internal/wipe"
)

// BenchResult is the outcome of an erase benchmark.
type BenchResult struct {
	Size       int
	Iterations int
	Elapsed    time.Duration
}

// NsPerOp returns the mean time of one erase.
func (r BenchResult) NsPerOp() float64 {
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Iterations)
}

// MiBPerSec returns the erase throughput.
func (r BenchResult) MiBPerSec() float64 {
	secs := r.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(r.Size) * float64(r.Iterations) / secs / (1 << 20)
}

// RunBench erases a size-byte buffer iterations times and writes the
// throughput.
func RunBench(ctx context.Context, w io.Writer, size, iterations int) error {
	res, err := bench(ctx, size, iterations)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "impl=%s size=%d iterations=%d elapsed=%s ns/op=%.1f throughput=%.1f MiB/s\n",
		wipe.Impl, res.Size, res.Iterations, res.Elapsed, res.NsPerOp(), res.MiBPerSec())
	return nil
}

func bench(ctx context.Context, size, iterations int) (BenchResult, error) {
	if size <= 0 || iterations <= 0 {
		return BenchResult{}, fmt.Errorf("%w: size and iterations must be positive", secmem.ErrInvalidArgument)
	}

	buf := pattern(size)
	start := time.Now()
	for i := range iterations {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return BenchResult{}, err
			}
		}
		secmem.EraseBytes(buf)
	}
	res := BenchResult{Size: size, Iterations: iterations, Elapsed: time.Since(start)}

	if !isZero(buf) {
		return res, fmt.Errorf("buffer not zero after %d erases", iterations)
	}
	return res, nil
}
