package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrMissingTaskID      = errors.New("scheduler: missing task id")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// DeadlineEvent fires when a task reaches its deadline.
type DeadlineEvent struct {
	TaskID    string
	Name      string
	TriggerAt time.Time
}

type deadline struct {
	event DeadlineEvent
	index int
}

// deadlineHeap orders deadlines by trigger time, then task id. Each entry
// tracks its own index so it can be moved or removed in place.
type deadlineHeap []*deadline

func (h deadlineHeap) Len() int { return len(h) }

func (h deadlineHeap) Less(i, j int) bool {
	a, b := h[i].event, h[j].event
	if a.TriggerAt.Equal(b.TriggerAt) {
		return a.TaskID < b.TaskID
	}
	return a.TriggerAt.Before(b.TriggerAt)
}

func (h deadlineHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *deadlineHeap) Push(x any) {
	d := x.(*deadline)
	d.index = len(*h)
	*h = append(*h, d)
}

func (h *deadlineHeap) Pop() any {
	old := *h
	last := len(old) - 1
	d := old[last]
	old[last] = nil
	d.index = -1
	*h = old[:last]
	return d
}

// Engine holds at most one pending deadline per task and emits it on C
// once its trigger time passes. Delivery never blocks: when the consumer
// falls behind the event is counted in Dropped instead.
type Engine struct {
	mu      sync.Mutex
	pending deadlineHeap
	byTask  map[string]*deadline
	now     func() time.Time

	out     chan DeadlineEvent
	kick    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	running bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		byTask: make(map[string]*deadline),
		now:    time.Now,
		out:    make(chan DeadlineEvent, max(bufferSize, 1)),
		kick:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DeadlineEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running || e.stopped {
		return
	}
	e.running = true
	go e.run()
}

// Stop ends the run loop and closes C. Pending deadlines are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

// Schedule sets the deadline of ev.TaskID, replacing any deadline already
// pending for that task.
func (e *Engine) Schedule(ev DeadlineEvent) error {
	if ev.TaskID == "" {
		return ErrMissingTaskID
	}
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}
	if d, ok := e.byTask[ev.TaskID]; ok {
		d.event = ev
		heap.Fix(&e.pending, d.index)
	} else {
		d := &deadline{event: ev}
		heap.Push(&e.pending, d)
		e.byTask[ev.TaskID] = d
	}
	e.wake()
	return nil
}

// Cancel drops the pending deadline of taskID and reports whether one
// existed.
func (e *Engine) Cancel(taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.byTask[taskID]
	if !ok {
		return false
	}
	heap.Remove(&e.pending, d.index)
	delete(e.byTask, taskID)
	e.wake()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if wait, ok := e.untilNext(); ok {
			timer.Reset(wait)
		}
		select {
		case <-timer.C:
			e.emit(e.takeDue())
		case <-e.kick:
		case <-e.quit:
			return
		}
		timer.Stop()
	}
}

func (e *Engine) wake() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func (e *Engine) untilNext() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return 0, false
	}
	return max(e.pending[0].event.TriggerAt.Sub(e.now()), 0), true
}

// takeDue removes every deadline whose trigger time is not after now.
func (e *Engine) takeDue() []DeadlineEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	var due []DeadlineEvent
	for len(e.pending) > 0 && !e.pending[0].event.TriggerAt.After(now) {
		d := heap.Pop(&e.pending).(*deadline)
		delete(e.byTask, d.event.TaskID)
		due = append(due, d.event)
	}
	return due
}

func (e *Engine) emit(due []DeadlineEvent) {
	for _, ev := range due {
		select {
		case e.out <- ev:
		default:
			e.dropped.Add(1)
		}
	}
}
