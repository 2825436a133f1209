package bus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/psidex/loopview/internal/lib"
)

// Loop runs posted functions one at a time, in order, on a single goroutine.
// Every event of a mounted view goes through its Loop, so the view never sees
// two events at once. Posting from inside a running function queues behind
// everything already posted, which is what Defer relies on.
type Loop struct {
	queue  *lib.Queue[func()]
	wake   chan struct{}
	done   chan struct{}
	stop   *sync.Once
	logger *slog.Logger
}

func NewLoop(logger *slog.Logger) *Loop {
	return &Loop{
		queue:  lib.NewQueue[func()](),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		stop:   &sync.Once{},
		logger: lib.OrDiscard(logger),
	}
}

// Post queues fn. Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	l.queue.Enqueue(fn)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Defer schedules fn for the next turn of the loop.
func (l *Loop) Defer(fn func()) {
	l.Post(fn)
}

// Stop ends Run after the function currently running, if any. Queued functions
// are discarded.
func (l *Loop) Stop() {
	l.stop.Do(func() { close(l.done) })
}

// Done is closed once Stop has been called.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes posted functions until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer l.Stop()
	for {
		for {
			select {
			case <-l.done:
				return
			default:
			}

			fn, ok := l.queue.Dequeue()
			if !ok {
				break
			}
			l.call(fn)
		}

		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case <-l.wake:
		}
	}
}

func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", "panic", r)
		}
	}()
	fn()
}
