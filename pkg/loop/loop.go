// Package loop provides a single-goroutine cooperative scheduler: tasks
// posted from any goroutine and frame callbacks both run on the goroutine
// that drives the loop.
package loop

import (
	"context"
	"sync"
	"time"
)

// FrameID identifies a requested frame callback
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func(time.Time)
}

// Loop queues tasks and frame callbacks until the owner runs them
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	frames []frameRequest
	nextID FrameID
	wake   chan struct{}
}

// New creates an idle loop
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn to run on a later turn. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RequestFrame schedules fn for the next Tick. Callbacks requested while a
// tick is running are deferred to the tick after it.
func (l *Loop) RequestFrame(fn func(time.Time)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.frames = append(l.frames, frameRequest{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame drops a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// PendingFrames returns the number of callbacks waiting for a tick
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// RunPending runs queued tasks, including tasks they post, until the
// queue is empty. It returns how many ran.
func (l *Loop) RunPending() int {
	n := 0
	for {
		fn, ok := l.pop()
		if !ok {
			return n
		}
		fn()
		n++
	}
}

// RunNext blocks until a task is available and runs it
func (l *Loop) RunNext(ctx context.Context) error {
	for {
		if fn, ok := l.pop(); ok {
			fn()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Tick runs the frame callbacks that were pending when it was called and
// returns how many ran.
func (l *Loop) Tick(now time.Time) int {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, f := range frames {
		f.fn(now)
	}
	return len(frames)
}

// Run drives the loop on the calling goroutine, ticking frames every
// interval, until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.RunPending()
		case now := <-ticker.C:
			l.RunPending()
			l.Tick(now)
		}
	}
}

func (l *Loop) pop() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) == 0 {
		return nil, false
	}
	fn := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return fn, true
}
