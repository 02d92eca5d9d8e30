package query

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncer(t *testing.T) {
	t.Run("Burst Emits Only Final Value", func(t *testing.T) {
		var mu sync.Mutex
		var emitted []string

		d := NewDebouncer(20*time.Millisecond, func(v string) {
			mu.Lock()
			emitted = append(emitted, v)
			mu.Unlock()
		})

		for _, v := range []string{"c", "ch", "cho", "chop", "chopi", "chopin"} {
			d.Set(v)
			time.Sleep(2 * time.Millisecond)
		}

		time.Sleep(60 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		if len(emitted) != 1 {
			t.Fatalf("expected exactly one emission, got %d: %v", len(emitted), emitted)
		}
		if emitted[0] != "chopin" {
			t.Errorf("expected final value 'chopin', got %q", emitted[0])
		}
	})

	t.Run("Settled Value Emits After Delay", func(t *testing.T) {
		done := make(chan string, 1)
		d := NewDebouncer(10*time.Millisecond, func(v string) {
			done <- v
		})

		d.Set("bach")

		select {
		case v := <-done:
			if v != "bach" {
				t.Errorf("expected 'bach', got %q", v)
			}
		case <-time.After(time.Second):
			t.Fatal("emission never fired")
		}
	})

	t.Run("Stop Prevents Pending Emission", func(t *testing.T) {
		var mu sync.Mutex
		count := 0

		d := NewDebouncer(10*time.Millisecond, func(string) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		d.Set("pending")
		d.Stop()

		time.Sleep(40 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		if count != 0 {
			t.Errorf("expected no emissions after Stop, got %d", count)
		}
	})

	t.Run("Set After Stop Is Ignored", func(t *testing.T) {
		d := NewDebouncer(5*time.Millisecond, func(string) {
			t.Error("emission after Stop")
		})

		d.Stop()
		d.Set("late")
		time.Sleep(30 * time.Millisecond)
	})

	t.Run("Non-Positive Delay Uses Default", func(t *testing.T) {
		d := NewDebouncer[int](0, func(int) {})
		if d.delay != DefaultDebounce {
			t.Errorf("expected default delay %v, got %v", DefaultDebounce, d.delay)
		}
	})
}
