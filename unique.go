package secmem

import "runtime"

// Unique exclusively owns a pointee and releases it through R exactly once:
// on Close, on Reset, or by the cleanup safety net if the handle becomes
// unreachable first. Detach gives up ownership without releasing.
//
// Unique is not safe for concurrent use.
type Unique[T any, R Releaser[T]] struct {
	s       *uniqueState[T, R]
	cleanup runtime.Cleanup
	stopped bool
}

type uniqueState[T any, R Releaser[T]] struct {
	p *T
	r R
}

// NewUnique takes ownership of p, to be released through r.
func NewUnique[T any, R Releaser[T]](p *T, r R) *Unique[T, R] {
	s := &uniqueState[T, R]{p: p, r: r}
	u := &Unique[T, R]{s: s}
	u.cleanup = runtime.AddCleanup(u, (*uniqueState[T, R]).release, s)
	return u
}

// Get returns the owned pointer, or nil.
func (u *Unique[T, R]) Get() *T { return u.s.p }

// Releaser returns the release policy.
func (u *Unique[T, R]) Releaser() R { return u.s.r }

// Detach gives up ownership and returns the pointer without erasing it.
// The caller becomes responsible for it.
func (u *Unique[T, R]) Detach() *T {
	p := u.s.p
	u.s.p = nil
	return p
}

// Reset releases the current pointee, if any, and takes ownership of p.
// Resetting a closed handle re-arms the cleanup safety net.
func (u *Unique[T, R]) Reset(p *T) {
	if u.s.p == p {
		return
	}
	u.s.release()
	u.s.p = p
	if p != nil && u.stopped {
		u.stopped = false
		u.cleanup = runtime.AddCleanup(u, (*uniqueState[T, R]).release, u.s)
	}
}

// Close releases the pointee. Close is idempotent.
func (u *Unique[T, R]) Close() error {
	if !u.stopped {
		u.stopped = true
		u.cleanup.Stop()
	}
	u.s.release()
	return nil
}

func (s *uniqueState[T, R]) release() {
	p := s.p
	if p == nil {
		return
	}
	s.p = nil
	s.r.Release(p)
}
