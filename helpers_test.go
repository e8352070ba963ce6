package secmem

import (
	"sync"
	"testing"
	"unsafe"
)

type eraseCall struct {
	p unsafe.Pointer
	n uintptr
}

// eraseRecorder records raw erase calls while still performing them.
type eraseRecorder struct {
	mu    sync.Mutex
	calls []eraseCall
	// zeroAfter tracks whether each extent read as zero right after the fill.
	zeroAfter []bool
}

func recordErase(t *testing.T) *eraseRecorder {
	t.Helper()
	r := &eraseRecorder{}
	orig := rawErase
	rawErase = func(p unsafe.Pointer, n uintptr) {
		orig(p, n)
		zero := true
		for _, b := range unsafe.Slice((*byte)(p), n) {
			if b != 0 {
				zero = false
				break
			}
		}
		r.mu.Lock()
		r.calls = append(r.calls, eraseCall{p: p, n: n})
		r.zeroAfter = append(r.zeroAfter, zero)
		r.mu.Unlock()
	}
	t.Cleanup(func() { rawErase = orig })
	return r
}

func (r *eraseRecorder) Calls() []eraseCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eraseCall(nil), r.calls...)
}

func (r *eraseRecorder) AllZero() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, z := range r.zeroAfter {
		if !z {
			return false
		}
	}
	return true
}

type state int

const (
	stateIdle state = iota
	stateActive
	stateDone
)

type credentials struct {
	user  *string
	token [16]byte
	tags  []string
}

type keyMaterial struct {
	ID    uint32
	Bytes [32]byte
}
