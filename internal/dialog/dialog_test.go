package dialog

import (
	"sync"
	"testing"
)

func TestSessionsDefaultToIdle(t *testing.T) {
	s := NewSessions()

	sess := s.Get(1)
	if sess.State != Idle {
		t.Errorf("expected Idle for an unknown user, got %v", sess.State)
	}
	if sess.Name != "" {
		t.Errorf("expected no collected name, got %q", sess.Name)
	}
}

func TestSessionsSetGetClear(t *testing.T) {
	s := NewSessions()

	s.Set(1, Session{State: AwaitingCategory, Name: "Socks"})

	sess := s.Get(1)
	if sess.State != AwaitingCategory || sess.Name != "Socks" {
		t.Errorf("unexpected session: %+v", sess)
	}

	// A new dialog overwrites the pending one.
	s.Set(1, Session{State: AwaitingWashTarget})
	sess = s.Get(1)
	if sess.State != AwaitingWashTarget || sess.Name != "" {
		t.Errorf("expected the new dialog to replace the old one, got %+v", sess)
	}

	s.Clear(1)
	if got := s.Get(1).State; got != Idle {
		t.Errorf("expected Idle after Clear, got %v", got)
	}
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	s := NewSessions()

	s.Set(1, Session{State: AwaitingName})
	s.Set(2, Session{State: AwaitingWearTarget})

	if got := s.Get(1).State; got != AwaitingName {
		t.Errorf("user 1 state = %v, want AwaitingName", got)
	}
	if got := s.Get(2).State; got != AwaitingWearTarget {
		t.Errorf("user 2 state = %v, want AwaitingWearTarget", got)
	}

	s.Clear(1)
	if got := s.Get(2).State; got != AwaitingWearTarget {
		t.Errorf("clearing user 1 must not touch user 2, got %v", got)
	}
}

func TestSessionsConcurrentAccess(t *testing.T) {
	s := NewSessions()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			s.Set(userID, Session{State: AwaitingName})
			s.Get(userID)
			s.Clear(userID)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		if got := s.Get(i).State; got != Idle {
			t.Errorf("user %d state = %v, want Idle", i, got)
		}
	}
}
