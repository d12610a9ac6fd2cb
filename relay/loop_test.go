package relay

import (
	"sync"
	"testing"
)

func TestLoopInvokeOrder(t *testing.T) {
	t.Parallel()
	var (
		loops = 1000
		got   = make([]int, 0, loops)
		wg    sync.WaitGroup
	)

	loop := NewLoop(16)
	loop.Start()
	defer loop.Stop()

	wg.Add(loops)
	for i := 0; i < loops; i++ {
		i := i
		if !loop.Invoke(func() {
			got = append(got, i)
			wg.Done()
		}) {
			t.Fatalf("invoke %v rejected on live loop", i)
		}
	}
	wg.Wait()

	for i, v := range got {
		if v != i {
			t.Fatalf("execution order broken at %v. got %v", i, v)
		}
	}
}

func TestLoopInvokeAfterStop(t *testing.T) {
	t.Parallel()
	loop := NewLoop(16)
	loop.Start()
	loop.Stop()

	select {
	case <-loop.Done():
	default:
		t.Fatal("done should be closed after stop")
	}

	if loop.Invoke(func() { t.Error("function ran on stopped loop") }) {
		t.Fatal("invoke accepted after stop")
	}
}

func TestLoopInvokeAfterStopRepeated(t *testing.T) {
	t.Parallel()
	for i := 0; i < 200; i++ {
		loop := NewLoop(4)
		loop.Start()
		loop.Stop()
		if loop.Invoke(func() {}) {
			t.Fatalf("invoke accepted on stopped loop at iteration %v", i)
		}
	}
}

func TestLoopStopIdempotent(t *testing.T) {
	t.Parallel()
	loop := NewLoop(1)
	loop.Start()
	loop.Stop()
	loop.Stop()
}
