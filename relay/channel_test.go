package relay

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

func TestChannelOrderPreservation(t *testing.T) {
	t.Parallel()
	var (
		items = 500
		got   = make([]uint32, 0, items)
		wg    sync.WaitGroup
		prod  sync.WaitGroup
	)

	loop := NewLoop(16)
	loop.Start()
	defer loop.Stop()

	wg.Add(items)
	ch := NewChannel("order", loop, func(v uint32) {
		got = append(got, v)
		wg.Done()
	}, 8)

	prod.Add(1)
	go func() {
		defer prod.Done()
		if err := ch.Acquire(); err != nil {
			t.Error(err)
			return
		}
		defer ch.Release()
		for i := 0; i < items; i++ {
			if err := ch.Send(uint32(i)); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	prod.Wait()
	wg.Wait()

	for i, v := range got {
		if v != uint32(i) {
			t.Fatalf("delivery order broken at %v. got %v", i, v)
		}
	}

	ch.Release()
	if !ch.Closed() {
		t.Fatal("channel should be fully closed")
	}
	if err := ch.Acquire(); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("acquire on closed channel. got %v, wants %v", err, ErrChannelClosed)
	}
}

func TestChannelBackpressure(t *testing.T) {
	t.Parallel()
	var (
		gate    = make(chan struct{})
		entered = make(chan struct{}, 16)
	)

	loop := NewLoop(16)
	loop.Start()
	defer loop.Stop()

	ch := NewChannel("backpressure", loop, func(v uint32) {
		entered <- struct{}{}
		<-gate
	}, 1)
	if err := ch.Acquire(); err != nil {
		t.Fatal(err)
	}

	if err := ch.Send(1); err != nil {
		t.Fatal(err)
	}
	<-entered // consumer busy inside the callback now

	if err := ch.Send(2); err != nil {
		t.Fatal(err)
	}
	if err := ch.TrySend(3); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("try send on full queue. got %v, wants %v", err, ErrQueueFull)
	}

	close(gate)
	<-entered

	ch.Release()
	ch.Release()
}

func TestChannelTeardownDiscard(t *testing.T) {
	t.Parallel()
	var (
		delivered atomic.Int32
		wg        sync.WaitGroup
	)

	loop := NewLoop(16)
	loop.Start()

	wg.Add(3)
	ch := NewChannel("teardown", loop, func(v uint32) {
		delivered.Add(1)
		wg.Done()
	}, 8)
	if err := ch.Acquire(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := ch.Send(uint32(i)); err != nil {
			t.Fatal(err)
		}
	}
	wg.Wait()

	loop.Stop()

	// deliveries degrade to silent discard from here on
	for i := 0; i < 5; i++ {
		if err := ch.Send(uint32(100 + i)); err != nil {
			t.Fatalf("send after consumer teardown should not fail. got %v", err)
		}
	}
	if got := delivered.Load(); got != 3 {
		t.Fatalf("callback ran after teardown. got %v deliveries, wants 3", got)
	}

	ch.Release()
	ch.Release()
	if !ch.Closed() {
		t.Fatal("channel should be fully closed")
	}
	if err := ch.Send(1); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("send on closed channel. got %v, wants %v", err, ErrChannelClosed)
	}
}

func TestChannelReferenceCounting(t *testing.T) {
	t.Parallel()
	var (
		producers = 8
		each      = 50
		wg        sync.WaitGroup
		workers   sync.WaitGroup
	)

	loop := NewLoop(16)
	loop.Start()
	defer loop.Stop()

	wg.Add(producers * each)
	ch := NewChannel("refs", loop, func(v uint32) {
		wg.Done()
	}, 8)

	workers.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer workers.Done()
			if err := ch.Acquire(); err != nil {
				t.Error(err)
				return
			}
			defer ch.Release()
			for j := 0; j < each; j++ {
				if err := ch.Send(uint32(j)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	workers.Wait()
	wg.Wait()

	if ch.Closed() {
		t.Fatal("owner reference still outstanding")
	}
	ch.Release()
	if !ch.Closed() {
		t.Fatal("channel should close on final release")
	}
}

func TestChannelReleaseWithoutAcquire(t *testing.T) {
	t.Parallel()
	loop := NewLoop(1)
	loop.Start()
	defer loop.Stop()

	ch := NewChannel("mismatch", loop, func(v uint32) {}, 1)
	ch.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("unbalanced release should panic")
		}
	}()
	ch.Release()
}
