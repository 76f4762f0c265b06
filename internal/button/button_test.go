package button

import (
	"errors"
	"testing"
	"time"
)

func TestFakeReaderScriptedStates(t *testing.T) {
	f := NewFakeReader(false, true, false)

	want := []bool{false, true, false, false} // last state repeats
	for i, w := range want {
		got, err := f.Pressed()
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d: got %v, want %v", i, got, w)
		}
	}
}

func TestFakeReaderNoStates(t *testing.T) {
	f := NewFakeReader()
	if _, err := f.Pressed(); err == nil {
		t.Error("expected error with no states configured")
	}
}

func TestFakeReaderReadError(t *testing.T) {
	f := NewFakeReader(true)
	f.ReadError = errors.New("gpio gone")
	if _, err := f.Pressed(); err == nil {
		t.Error("expected read error")
	}
}

func TestFakeReaderReset(t *testing.T) {
	f := NewFakeReader(true, false)
	f.Pressed()
	f.Pressed()
	f.Close()

	f.Reset()

	if got, _ := f.Pressed(); got != true {
		t.Error("expected first state after reset")
	}
	if f.Closed {
		t.Error("reset should clear Closed")
	}
}

func TestWatchEmitsOnePressPerEdge(t *testing.T) {
	// Held for several polls: one press edge, then release, then a second press.
	f := NewFakeReader(false, true, true, true, false, true, false)
	presses := make(chan struct{}, 4)
	done := make(chan struct{})

	go Watch(f, time.Millisecond, presses, done, nil)

	count := 0
	timeout := time.After(2 * time.Second)
	for count < 2 {
		select {
		case <-presses:
			count++
		case <-timeout:
			t.Fatalf("expected 2 presses, got %d before timeout", count)
		}
	}
	close(done)

	// Give Watch time to observe remaining samples (all repeats of the
	// released state); no further presses must arrive.
	time.Sleep(20 * time.Millisecond)
	select {
	case <-presses:
		t.Error("unexpected extra press")
	default:
	}
}

func TestWatchContinuesOnReadError(t *testing.T) {
	f := NewFakeReader(false, true)
	f.ReadError = errors.New("flaky")
	presses := make(chan struct{}, 1)
	done := make(chan struct{})
	errs := make(chan error, 1)

	go Watch(f, time.Millisecond, presses, done, func(err error) {
		select {
		case errs <- err:
		default:
		}
		f.ReadError = nil // recover after first error
	})

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a read error to be reported")
	}

	select {
	case <-presses:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a press after recovery")
	}
	close(done)
}

func TestWatchStopsWhenDone(t *testing.T) {
	f := NewFakeReader(false)
	presses := make(chan struct{})
	done := make(chan struct{})

	finished := make(chan struct{})
	go func() {
		Watch(f, time.Millisecond, presses, done, nil)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after done closed")
	}
}
