package clearing

import (
	"context"
	"sync"
)

// Task is the handle of one pipeline run. Done is closed when the run stops,
// whether it completed, failed on funds or hit a fault.
type Task struct {
	transferID string
	done       chan struct{}
	once       sync.Once
	err        error
}

func newTask(transferID string) *Task {
	return &Task{
		transferID: transferID,
		done:       make(chan struct{}),
	}
}

// TransferID returns the transfer this run belongs to.
func (t *Task) TransferID() string {
	return t.transferID
}

// Done is closed when the run stops.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the fault that stopped the run, or nil. Only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the run stops or ctx ends. It returns ctx.Err() in the
// latter case and the run's fault otherwise.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}
