//go:build !cgo

package main

import (
	"sync"
	"testing"
)

func TestSessionTableBasic(t *testing.T) {
	s := &session{}
	h := registerSession(s)
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	if got := lookupSession(h); got != s {
		t.Fatalf("lookup returned %p, want %p", got, s)
	}

	if got := releaseSession(h); got != s {
		t.Fatalf("release returned %p, want %p", got, s)
	}

	if got := lookupSession(h); got != nil {
		t.Fatalf("expected nil after release, got %p", got)
	}
}

func TestSessionTableInvalid(t *testing.T) {
	// Handle 0 is never dealt out.
	if got := lookupSession(0); got != nil {
		t.Errorf("lookupSession(0) = %p, want nil", got)
	}
	if got := releaseSession(0); got != nil {
		t.Errorf("releaseSession(0) = %p, want nil", got)
	}

	if got := lookupSession(999999); got != nil {
		t.Errorf("expected nil for unknown handle, got %p", got)
	}
}

func TestSessionTableDoubleRelease(t *testing.T) {
	h := registerSession(&session{})

	if got := releaseSession(h); got == nil {
		t.Fatal("first release returned nil")
	}
	if got := releaseSession(h); got != nil {
		t.Fatalf("second release returned %p, want nil", got)
	}
}

func TestSessionTableUniqueHandles(t *testing.T) {
	const numHandles = 1000
	handles := make(map[uint64]bool, numHandles)

	for i := 0; i < numHandles; i++ {
		h := registerSession(&session{})
		if handles[h] {
			t.Fatalf("duplicate handle: %d", h)
		}
		handles[h] = true
	}

	for h := range handles {
		releaseSession(h)
	}
}

func TestSessionTableConcurrency(t *testing.T) {
	const numGoroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()

			for j := 0; j < opsPerGoroutine; j++ {
				s := &session{}
				h := registerSession(s)

				if got := lookupSession(h); got != s {
					t.Errorf("lookup returned %p, want %p", got, s)
				}
				if got := releaseSession(h); got != s {
					t.Errorf("release returned %p, want %p", got, s)
				}
			}
		}()
	}

	wg.Wait()
}
