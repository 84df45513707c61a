// Package view holds the state of the list pages independently of how they
// are rendered. Every state change is reported to an optional observer.
package view

import (
	"context"
	"sync"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a snapshot of a list view. Data is the last successfully fetched
// value and survives a failed fetch. Err is the error of the most recent
// fetch, if it failed.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

type Fetcher[T any] func(ctx context.Context) (T, error)

type Observer[T any] func(State[T])

// ListView moves through Idle -> Loading -> Success|Error -> Idle. It starts
// Idle with pre-supplied data and only fetches when Refetch is called.
type ListView[T any] struct {
	fetch    Fetcher[T]
	observer Observer[T]

	refetchMu sync.Mutex
	mu        sync.RWMutex
	state     State[T]
}

func NewListView[T any](initial T, fetch Fetcher[T], observer Observer[T]) *ListView[T] {
	v := &ListView[T]{
		fetch:    fetch,
		observer: observer,
		state:    State[T]{Status: StatusIdle, Data: initial},
	}
	return v
}

// newListViewWithError starts Idle with the failure of an initial fetch.
func newListViewWithError[T any](initial T, initialErr error, fetch Fetcher[T], observer Observer[T]) *ListView[T] {
	v := NewListView(initial, fetch, observer)
	v.state.Err = initialErr
	return v
}

func (v *ListView[T]) State() State[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Refetch runs one fetch and returns its error. Concurrent calls are
// serialized so observers see complete cycles.
func (v *ListView[T]) Refetch(ctx context.Context) error {
	v.refetchMu.Lock()
	defer v.refetchMu.Unlock()

	prev := v.State()
	v.set(State[T]{Status: StatusLoading, Data: prev.Data})

	data, err := v.fetch(ctx)
	if err != nil {
		v.set(State[T]{Status: StatusError, Data: prev.Data, Err: err})
		v.set(State[T]{Status: StatusIdle, Data: prev.Data, Err: err})
		return err
	}

	v.set(State[T]{Status: StatusSuccess, Data: data})
	v.set(State[T]{Status: StatusIdle, Data: data})
	return nil
}

func (v *ListView[T]) set(s State[T]) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()

	if v.observer != nil {
		v.observer(s)
	}
}
