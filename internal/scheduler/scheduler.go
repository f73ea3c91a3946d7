package scheduler

import (
	"container/heap"
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultResolution = 100 * time.Millisecond

type task struct {
	id       int64
	execute  time.Time
	interval time.Duration
	callback func()
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs one-shot and recurring callbacks off a min-heap ordered by due time.
// Callbacks are started on their own goroutines.
type Scheduler struct {
	logger     *slog.Logger
	resolution time.Duration
	now        func() time.Time

	mu     sync.Mutex
	queue  taskQueue
	byID   map[int64]*task
	nextID int64

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(logger *slog.Logger) *Scheduler {
	return NewWithResolution(logger, defaultResolution)
}

func NewWithResolution(logger *slog.Logger, resolution time.Duration) *Scheduler {
	s := &Scheduler{
		logger:     logger.With("component", "scheduler"),
		resolution: resolution,
		now:        time.Now,
		queue:      make(taskQueue, 0),
		byID:       make(map[int64]*task),
		nextID:     1,
	}
	heap.Init(&s.queue)

	return s
}

// AddTimer registers callback to fire after delay, and then every interval when interval > 0.
// The returned id can be passed to RemoveTimer.
func (that *Scheduler) AddTimer(delay, interval time.Duration, callback func()) int64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	t := &task{
		id:       that.nextID,
		execute:  that.now().Add(delay),
		interval: interval,
		callback: callback,
	}
	that.nextID++

	heap.Push(&that.queue, t)
	that.byID[t.id] = t

	return t.id
}

// RemoveTimer cancels a pending timer. Unknown or already fired one-shot ids are ignored.
func (that *Scheduler) RemoveTimer(id int64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	t, ok := that.byID[id]
	if !ok {
		return
	}

	delete(that.byID, id)
	if t.index >= 0 {
		heap.Remove(&that.queue, t.index)
	}
}

// pending returns the number of registered timers.
func (that *Scheduler) pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.byID)
}

// Start runs the dispatch loop until ctx is done or Stop is called.
func (that *Scheduler) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	that.mu.Lock()
	that.cancel = cancel
	that.mu.Unlock()

	that.wg.Add(1)
	go that.process(ctx)
}

// Stop ends the dispatch loop and waits for callbacks already started.
func (that *Scheduler) Stop() {
	that.mu.Lock()
	cancel := that.cancel
	that.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	that.wg.Wait()
}

func (that *Scheduler) process(ctx context.Context) {
	defer that.wg.Done()

	ticker := time.NewTicker(that.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			that.logger.Debug("scheduler stopped")
			return
		case <-ticker.C:
			for _, callback := range that.due() {
				that.wg.Add(1)
				go that.run(callback)
			}
		}
	}
}

func (that *Scheduler) due() []func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()

	var callbacks []func()
	for that.queue.Len() > 0 {
		t := that.queue[0]
		if t.execute.After(now) {
			break
		}

		heap.Pop(&that.queue)
		callbacks = append(callbacks, t.callback)

		if t.interval > 0 {
			t.execute = now.Add(t.interval)
			heap.Push(&that.queue, t)
		} else {
			delete(that.byID, t.id)
		}
	}

	return callbacks
}

func (that *Scheduler) run(callback func()) {
	defer that.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			that.logger.Error("timer callback panicked", "panic", r)
		}
	}()

	callback()
}
