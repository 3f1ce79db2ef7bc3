package quotesync

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerRunsOnlyLast(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var runs atomic.Int32
	var last atomic.Int32

	for i := int32(1); i <= 5; i++ {
		i := i
		d.Schedule(func() {
			runs.Add(1)
			last.Store(i)
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if runs.Load() != 1 {
		t.Fatalf("expected exactly one run, got %d", runs.Load())
	}
	if last.Load() != 5 {
		t.Fatalf("expected the last scheduled function, got %d", last.Load())
	}
	if d.Pending() {
		t.Fatal("nothing should be pending after firing")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var runs atomic.Int32
	d.Schedule(func() { runs.Add(1) })
	d.Cancel()
	time.Sleep(40 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatal("cancelled function must not run")
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var runs atomic.Int32
	d.Schedule(func() { runs.Add(1) })
	if !d.Flush() {
		t.Fatal("expected a pending function to flush")
	}
	if d.Flush() {
		t.Fatal("second flush must be a no-op")
	}
	if runs.Load() != 1 {
		t.Fatalf("expected one run, got %d", runs.Load())
	}
}
