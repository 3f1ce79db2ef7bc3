package sessions

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"quote-wizard/internal/engine"
)

func TestCreateGetDelete(t *testing.T) {
	r := NewRegistry(engine.Deps{}, time.Hour, zap.NewNop())
	w := r.Create()

	got, err := r.Get(w.ID())
	if err != nil || got != w {
		t.Fatalf("expected the created wizard, got %v %v", got, err)
	}
	if v := got.View(); v.Step != "instant" || v.SessionID != w.ID() {
		t.Fatalf("unexpected view %+v", v)
	}

	if err := r.Delete(w.ID()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(w.ID()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.Delete(w.ID()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	r := NewRegistry(engine.Deps{}, 0, zap.NewNop())
	a, b := r.Create(), r.Create()
	if a.ID() == b.ID() {
		t.Fatal("ids must be unique")
	}
	a.Restart()
	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", r.Len())
	}
}

func TestSweep(t *testing.T) {
	r := NewRegistry(engine.Deps{}, time.Minute, zap.NewNop())
	w := r.Create()

	if n := r.Sweep(time.Now()); n != 0 {
		t.Fatalf("fresh session must survive, swept %d", n)
	}
	if n := r.Sweep(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if _, err := r.Get(w.ID()); err != ErrNotFound {
		t.Fatal("expired session must be gone")
	}
}

func TestSweepDisabled(t *testing.T) {
	r := NewRegistry(engine.Deps{}, 0, zap.NewNop())
	r.Create()
	if n := r.Sweep(time.Now().Add(24 * time.Hour)); n != 0 {
		t.Fatalf("ttl 0 must keep sessions, swept %d", n)
	}
}
