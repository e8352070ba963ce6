package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/secmem"
	"github.com/hupe1980/secmem/config"
	"github.com/hupe1980/secmem/internal/wipe"
)

// Result is the outcome of one self-test check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// Report is the outcome of a self-test run.
type Report struct {
	Backend     string                   `json:"backend"`
	EraseImpl   string                   `json:"erase_impl"`
	Passed      bool                     `json:"passed"`
	Results     []Result                 `json:"results"`
	Allocations secmem.BasicMetricsStats `json:"allocations"`
}

type harness struct {
	cfg  *config.Config
	opts []secmem.Option
}

type check struct {
	name string
	run  func(h *harness) error
}

var checks = []check{
	{"erase", checkErase},
	{"erase-value", checkEraseValue},
	{"allocator", checkAllocator},
	{"vector", checkVector},
	{"vector-reallocation", checkVectorReallocation},
	{"deque", checkDeque},
	{"string", checkString},
	{"array", checkArray},
	{"unique", checkUnique},
	{"shared", checkShared},
	{"allocator-handle", checkAllocatorHandle},
}

// RunSelfTest runs every check against the configured backend and writes a
// report in the given format. It fails if any check fails.
func RunSelfTest(ctx context.Context, w io.Writer, backend, format string) error {
	cfg, err := loadConfig(backend)
	if err != nil {
		return err
	}

	logger := cfg.Logger()
	logger.InfoContext(ctx, "running selftest", slog.String("backend", cfg.Backend))

	report := runChecks(cfg, nil)

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		writeReportText(w, report)
	}

	if !report.Passed {
		return errors.New("selftest failed")
	}
	logger.InfoContext(ctx, "selftest completed", slog.Int("checks", len(report.Results)))
	return nil
}

// runChecks runs the workload. extra collects allocator metrics in addition
// to the symmetry check's own collector.
func runChecks(cfg *config.Config, extra secmem.MetricsCollector) Report {
	mc := &secmem.BasicMetricsCollector{}
	var collector secmem.MetricsCollector = mc
	if extra != nil {
		collector = teeCollector{mc, extra}
	}

	h := &harness{
		cfg:  cfg,
		opts: cfg.AllocatorOptions(secmem.WithMetricsCollector(collector)),
	}

	report := Report{
		Backend:   cfg.Backend,
		EraseImpl: wipe.Impl,
		Passed:    true,
	}
	for _, c := range checks {
		report.Results = append(report.Results, runCheck(c, h))
	}

	stats := mc.GetStats()
	symmetry := Result{Name: "symmetry", Passed: true}
	if stats.AllocateCount == 0 || stats.LiveAllocations != 0 || stats.LiveBytes != 0 {
		symmetry.Passed = false
		symmetry.Error = fmt.Sprintf("%d allocations, %d releases, %d bytes live",
			stats.AllocateCount, stats.DeallocateCount, stats.LiveBytes)
	}
	report.Results = append(report.Results, symmetry)
	report.Allocations = stats

	for _, r := range report.Results {
		report.Passed = report.Passed && r.Passed
	}
	return report
}

func runCheck(c check, h *harness) (r Result) {
	r.Name = c.name
	defer func() {
		if p := recover(); p != nil {
			r.Passed = false
			r.Error = fmt.Sprintf("panic: %v", p)
		}
	}()
	if err := c.run(h); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Passed = true
	return r
}

func writeReportText(w io.Writer, report Report) {
	fmt.Fprintf(w, "secmem selftest (backend=%s, erase=%s)\n", report.Backend, report.EraseImpl)
	for _, r := range report.Results {
		if r.Passed {
			fmt.Fprintf(w, "  PASS  %s\n", r.Name)
		} else {
			fmt.Fprintf(w, "  FAIL  %s: %s\n", r.Name, r.Error)
		}
	}
	fmt.Fprintf(w, "allocations=%d releases=%d bytes=%d\n",
		report.Allocations.AllocateCount, report.Allocations.DeallocateCount, report.Allocations.AllocatedBytes)
}

func checkErase(*harness) error {
	b := pattern(257)
	secmem.EraseBytes(b)
	if !isZero(b) {
		return errors.New("buffer not zero after erase")
	}
	secmem.EraseBytes(b)
	if !isZero(b) {
		return errors.New("second erase changed the buffer")
	}
	return nil
}

type level int

func checkEraseValue(*harness) error {
	n := 42
	secmem.EraseValue(&n)

	l := level(3)
	secmem.EraseValue(&l)

	target := 7
	p := &target
	secmem.ErasePointer(&p)

	switch {
	case n != 0:
		return errors.New("integer not zero")
	case l != 0:
		return errors.New("enum not zero")
	case p != nil:
		return errors.New("pointer not nil")
	case target != 7:
		return errors.New("pointee was erased")
	}
	return nil
}

func checkAllocator(h *harness) error {
	a, err := newAllocator[byte](h)
	if err != nil {
		return err
	}
	before := secmem.OffHeapMappings()

	p, err := a.Allocate(1000)
	if err != nil {
		return err
	}
	if len(p) != 1000 || !isZero(p) {
		return errors.New("fresh allocation not zeroed")
	}
	fill(p)
	a.Deallocate(p, 1000)

	if after := secmem.OffHeapMappings(); after != before {
		return fmt.Errorf("off-heap mappings: %d before, %d after", before, after)
	}
	return nil
}

func checkVector(h *harness) error {
	a, err := newAllocator[int](h)
	if err != nil {
		return err
	}
	v, err := secmem.NewVector(a, 0)
	if err != nil {
		return err
	}
	defer v.Close()

	for i := range 4 {
		if err := v.Append(i + 1); err != nil {
			return err
		}
	}
	if err := v.Resize(100); err != nil {
		return err
	}
	if v.Len() != 100 || v.At(3) != 4 || v.At(99) != 0 {
		return errors.New("unexpected contents after resize")
	}
	return nil
}

// checkVectorReallocation inspects a stale buffer, so it always uses the
// heap backend: a stale off-heap buffer is unmapped.
func checkVectorReallocation(*harness) error {
	v, err := secmem.VectorOf[uint64](nil, 1, 2, 3, 4)
	if err != nil {
		return err
	}
	defer v.Close()

	old := v.Slice()
	if err := v.Append(5); err != nil {
		return err
	}
	if !isZero(old) {
		return errors.New("old buffer not erased on reallocation")
	}
	return nil
}

func checkDeque(h *harness) error {
	a, err := newAllocator[uint32](h)
	if err != nil {
		return err
	}
	d := secmem.NewDeque(a)
	defer d.Close()

	for i := range uint32(10) {
		if err := d.PushBack(i); err != nil {
			return err
		}
		if err := d.PushFront(100 + i); err != nil {
			return err
		}
	}
	if front, _ := d.PopFront(); front != 109 {
		return fmt.Errorf("front = %d, want 109", front)
	}
	if back, _ := d.PopBack(); back != 9 {
		return fmt.Errorf("back = %d, want 9", back)
	}
	return nil
}

func checkString(h *harness) error {
	a, err := newAllocator[byte](h)
	if err != nil {
		return err
	}
	s, err := secmem.NewString(a, "correct horse")
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.AppendString(" battery staple"); err != nil {
		return err
	}
	if s.String() != "correct horse battery staple" {
		return errors.New("unexpected string contents")
	}
	return nil
}

func checkArray(*harness) error {
	a, err := secmem.NewArray(3, 1, 2, 3)
	if err != nil {
		return err
	}
	data := a.Data()
	if err := a.Close(); err != nil {
		return err
	}
	if !isZero(data) {
		return errors.New("array not erased on close")
	}
	if _, err := secmem.NewArray(2, 1, 2, 3); !errors.Is(err, secmem.ErrInvalidArgument) {
		return fmt.Errorf("oversized initializer: got %v", err)
	}
	return nil
}

func checkUnique(*harness) error {
	u, err := secmem.MakeUniqueArray[byte](100)
	if err != nil {
		return err
	}
	view := secmem.UniqueSlice(u)
	fill(view)
	if err := u.Close(); err != nil {
		return err
	}
	if !isZero(view) {
		return errors.New("array not erased on close")
	}

	d, err := secmem.MakeUniqueArray[byte](100)
	if err != nil {
		return err
	}
	kept := secmem.UniqueSlice(d)
	fill(kept)
	d.Detach()
	if err := d.Close(); err != nil {
		return err
	}
	if isZero(kept) {
		return errors.New("detached array was erased")
	}
	return nil
}

func checkShared(*harness) error {
	s, err := secmem.MakeSharedArray[byte](64)
	if err != nil {
		return err
	}
	view := secmem.SharedSlice(s)
	fill(view)

	c := s.Clone()
	if err := s.Close(); err != nil {
		return err
	}
	if isZero(view) {
		return errors.New("erased while a reference remained")
	}
	if err := c.Close(); err != nil {
		return err
	}
	if !isZero(view) {
		return errors.New("not erased when the last reference closed")
	}
	return nil
}

func checkAllocatorHandle(h *harness) error {
	a, err := newAllocator[uint64](h)
	if err != nil {
		return err
	}
	u, err := secmem.AllocateUnique(a, 64)
	if err != nil {
		return err
	}
	view := secmem.UniqueSlice(u)
	if len(view) != 64 {
		return fmt.Errorf("handle covers %d elements, want 64", len(view))
	}
	view[0] = 0xFFFF
	return u.Close()
}
