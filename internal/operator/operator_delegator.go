package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/claritybank/badge-server/internal/operator/actions"
)

var ErrStopped = errors.New("operator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    WriteStore
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
}

func NewOperatorDelegator(s WriteStore, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop drains the queue and waits for the workers to exit. Process calls
// made after Stop return ErrStopped.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

// Process queues action and blocks until a worker has committed or rolled it back.
//
// ctx only bounds the wait for a queue slot. Once queued, the result is the
// worker's: a worker that picks up an item whose ctx is already done skips it
// and reports ctx.Err(), otherwise the commit outcome is returned even if ctx
// ends mid-flight.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	resp := <-respCh
	return resp.err
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
