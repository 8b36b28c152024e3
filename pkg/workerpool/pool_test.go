package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/salesdesk/pkg/workerpool"
)

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New("test", 4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		if err := pool.SubmitWait(func() {
			defer wg.Done()
			count.Add(1)
		}); err != nil {
			t.Fatalf("SubmitWait returned unexpected error: %v", err)
		}
	}

	wg.Wait()

	if got := count.Load(); got != n {
		t.Errorf("expected %d tasks to run, got %d", n, got)
	}
}

func TestPool_ErrPoolFull(t *testing.T) {
	pool := workerpool.New("test", 1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	_ = pool.SubmitWait(func() {
		close(started)
		<-blocker
	})
	<-started

	// queue capacity is 2 for a single worker
	_ = pool.Submit(func() {})
	_ = pool.Submit(func() {})

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolFull) {
		t.Errorf("expected ErrPoolFull, got %v", err)
	}

	close(blocker)
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New("test", 2)
	pool.Shutdown()

	if err := pool.Submit(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed after Shutdown, got %v", err)
	}
	if err := pool.SubmitWait(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed from SubmitWait, got %v", err)
	}
}

func TestPool_PanicRecovery(t *testing.T) {
	pool := workerpool.New("test", 1)
	defer pool.Shutdown()

	_ = pool.SubmitWait(func() { panic("listener blew up") })

	done := make(chan struct{})
	_ = pool.SubmitWait(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
}

func TestPool_ShutdownDrainsQueue(t *testing.T) {
	pool := workerpool.New("test", 2)

	var ran atomic.Int64
	for i := 0; i < 4; i++ {
		_ = pool.SubmitWait(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}
	pool.Shutdown()

	if got := ran.Load(); got != 4 {
		t.Errorf("expected queued tasks to finish before Shutdown returns, got %d", got)
	}
}

func TestPool_SubmitDuringShutdown(t *testing.T) {
	pool := workerpool.New("test", 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = pool.Submit(func() {})
			}
		}()
	}
	pool.Shutdown()
	wg.Wait()
}
