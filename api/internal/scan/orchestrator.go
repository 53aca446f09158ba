package scan

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"snap-solver/api/internal/solver"
)

const (
	solveTimeout   = 2 * time.Minute
	persistTimeout = 10 * time.Second
)

// Orchestrator drives one captured image through pending → solved/failed.
// Each capture gets a fresh record id, so independent scans never share an
// in-flight solve; a single id has at most one.
type Orchestrator struct {
	store *Store

	mu       sync.Mutex
	inflight map[string]struct{}
	wg       sync.WaitGroup

	// OnSettled, when set, runs after a record reaches a terminal state
	// and has been persisted. Not called when the record was deleted
	// while its solve was in flight.
	OnSettled func(Record)
}

func NewOrchestrator(store *Store) *Orchestrator {
	return &Orchestrator{store: store, inflight: make(map[string]struct{})}
}

// Capture inserts a pending record for img and starts the solve in the
// background. The pending record is observable in the store before
// Capture returns. The solve runs on a detached context: navigating away
// or deleting the record does not cancel it.
func (o *Orchestrator) Capture(ctx context.Context, eng solver.Engine, img []byte) (Record, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Image:     img,
		CreatedAt: time.Now().UTC(),
		Title:     PendingTitle,
		Status:    StatusPending,
	}
	if err := o.store.Upsert(ctx, rec); err != nil {
		return Record{}, err
	}

	o.mu.Lock()
	o.inflight[rec.ID] = struct{}{}
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.solve(rec.ID, eng, img)
	}()
	return rec, nil
}

// Wait blocks until every in-flight solve has settled.
func (o *Orchestrator) Wait() { o.wg.Wait() }

func (o *Orchestrator) solve(id string, eng solver.Engine, img []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()
	text, err := eng.Solve(ctx, img)
	o.settle(id, text, err)
}

// settle applies the terminal transition exactly once. A result for a
// record deleted mid-flight is dropped rather than re-inserted.
func (o *Orchestrator) settle(id, text string, err error) {
	o.mu.Lock()
	if _, ok := o.inflight[id]; !ok {
		o.mu.Unlock()
		return
	}
	delete(o.inflight, id)
	o.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	// The read-modify-write happens under the store lock: a delete that
	// slips in first wins, and the result is dropped instead of written.
	mutated := false
	rec, ok, perr := o.store.Update(ctx, id, func(r *Record) {
		if r.Status.Terminal() {
			return
		}
		mutated = true
		if err != nil {
			r.Status = StatusFailed
			r.Title = FailedTitle
			r.ErrorMessage = err.Error()
			if r.ErrorMessage == "" {
				r.ErrorMessage = GenericFailure
			}
		} else {
			r.Status = StatusSolved
			r.Title = DeriveTitle(text)
			r.SolutionText = text
		}
	})
	if perr != nil {
		log.Printf("scan %s: persist after solve: %v", id, perr)
	}
	if !ok {
		log.Printf("scan %s: deleted while solving, dropping result", id)
		return
	}
	if !mutated {
		return
	}
	if o.OnSettled != nil {
		o.OnSettled(rec)
	}
}
