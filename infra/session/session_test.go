package session

import (
	"sync"
	"testing"
)

func TestStore_SetAndClear(t *testing.T) {
	s := NewStore()
	if s.Authenticated() {
		t.Fatalf("fresh store must be logged out")
	}

	s.Set("tok", 7)
	snap := s.Current()
	if snap.Token != "tok" || snap.UserID != 7 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
	if !s.Authenticated() {
		t.Fatalf("expected authenticated after Set")
	}

	s.Clear()
	if s.Current() != (Snapshot{}) {
		t.Fatalf("clear must drop both fields: %#v", s.Current())
	}
}

func TestStore_ObserverSeesAtomicSnapshot(t *testing.T) {
	s := NewStore()
	var seen []Snapshot
	s.OnChange(func(snap Snapshot) {
		seen = append(seen, snap)
	})

	s.Set("tok", 7)
	s.Clear()

	if len(seen) != 2 {
		t.Fatalf("expected exactly one notification per mutation, got %d", len(seen))
	}
	// Never a torn state: token without user or vice versa.
	if seen[0] != (Snapshot{Token: "tok", UserID: 7}) {
		t.Fatalf("torn snapshot observed: %#v", seen[0])
	}
	if seen[1] != (Snapshot{}) {
		t.Fatalf("clear snapshot must be empty: %#v", seen[1])
	}
}

func TestStore_TokenProvider(t *testing.T) {
	s := NewStore()
	if _, ok := s.Token(); ok {
		t.Fatalf("logged-out store must not provide a token")
	}
	s.Set("bearer-me", 1)
	tok, ok := s.Token()
	if !ok || tok != "bearer-me" {
		t.Fatalf("unexpected token: %q ok=%v", tok, ok)
	}
}

func TestStore_ConcurrentReadsDuringWrites(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Set("tok", n)
		}(i)
		go func() {
			defer wg.Done()
			snap := s.Current()
			// Whatever interleaving happens, a token implies a user.
			if snap.Token != "" && snap.UserID < 0 {
				t.Errorf("torn snapshot: %#v", snap)
			}
		}()
	}
	wg.Wait()
}

func TestStore_ObserverMayReadStore(t *testing.T) {
	s := NewStore()
	done := make(chan Snapshot, 1)
	s.OnChange(func(Snapshot) {
		done <- s.Current()
	})
	s.Set("tok", 3)
	if snap := <-done; snap.UserID != 3 {
		t.Fatalf("observer read stale store: %#v", snap)
	}
}
