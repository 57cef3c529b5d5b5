package keylock

import (
	"sync"
	"testing"
	"time"
)

func TestLock_SerializesSameKey(t *testing.T) {
	l := New()

	var mu sync.Mutex
	var order []int

	release := l.Lock("1:+15551234567")

	done := make(chan struct{})
	go func() {
		r := l.Lock("1:+15551234567")
		mu.Lock()
		order = append(order, 2)
		mu.Unlock()
		r()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	order = append(order, 1)
	mu.Unlock()
	release()

	<-done

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want the first holder to finish before the second", order)
	}
}

func TestLock_DifferentKeysDoNotBlock(t *testing.T) {
	l := New()

	release := l.Lock("1:+15551234567")
	defer release()

	acquired := make(chan struct{})
	go func() {
		r := l.Lock("2:+15559876543")
		r()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("a different key must not block")
	}
}

func TestLock_EntryRemovedAfterLastRelease(t *testing.T) {
	l := New()

	release := l.Lock("key")
	release()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("expected no retained entries, got %d", len(l.locks))
	}
}

func TestLock_ConcurrentCounter(t *testing.T) {
	l := New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := l.Lock("shared")
			counter++
			release()
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100", counter)
	}
}
