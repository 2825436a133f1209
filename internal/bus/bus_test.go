package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	b := New()
	var got []string

	b.Subscribe(func(m Message) { got = append(got, "first") })
	b.Subscribe(func(m Message) {
		sel, ok := m.(SelectionChanged)
		require.True(t, ok)
		got = append(got, "second:"+sel.LoopID)
	})

	b.Publish(SelectionChanged{LoopID: "L1"})
	assert.Equal(t, []string{"first", "second:L1"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	unsubscribe := b.Subscribe(func(Message) { calls++ })
	b.Subscribe(func(Message) {})

	b.Publish(ThemeChanged{})
	unsubscribe()
	unsubscribe()
	b.Publish(ThemeChanged{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, b.Len())
}

func TestBusHandlerMayUnsubscribeDuringPublish(t *testing.T) {
	b := New()
	calls := 0
	var unsubscribe func()
	unsubscribe = b.Subscribe(func(Message) {
		calls++
		unsubscribe()
	})

	b.Publish(ThemeChanged{})
	b.Publish(ThemeChanged{})
	assert.Equal(t, 1, calls)
}

func TestBusConcurrentPublish(t *testing.T) {
	b := New()
	mu := &sync.Mutex{}
	count := 0
	b.Subscribe(func(Message) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	wg := &sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(ThemeChanged{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var order []int
	finished := make(chan struct{})
	l.Post(func() {
		order = append(order, 1)
		l.Defer(func() {
			order = append(order, 3)
			close(finished)
		})
	})
	l.Post(func() { order = append(order, 2) })
	go l.Run(ctx)

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not run posted functions")
	}
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoopSurvivesPanic(t *testing.T) {
	l := NewLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	finished := make(chan struct{})
	l.Post(func() { panic("boom") })
	l.Post(func() { close(finished) })

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("loop stopped after a panic")
	}
}

func TestLoopStop(t *testing.T) {
	l := NewLoop(nil)
	stopped := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(stopped)
	}()

	l.Stop()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	ran := false
	l.Post(func() { ran = true })
	assert.False(t, ran)
	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed")
	}
}
