package ledger

import (
	"context"
	"errors"
	"sync"
)

// ErrSequencerBusy is returned when a resync is attempted while a reservation is in flight
var ErrSequencerBusy = errors.New("sequencer has an in-flight reservation")

// Sequencer serializes nonce reservation for the single signing identity.
// Reservations are handed out in strict FIFO order of Reserve calls and only one
// reservation is outstanding at a time: the next caller gets a number only after
// the previous one released. A release with ok=false keeps the same number open
// for the next reservation instead of advancing, so a failed submission's hole
// is re-filled before the sequencer moves on.
type Sequencer struct {
	mu      sync.Mutex
	next    uint64
	busy    bool
	waiters []chan uint64
}

// NewSequencer creates a sequencer starting at the given nonce, typically the
// ledger's pending nonce for the identity at process start
func NewSequencer(start uint64) *Sequencer {
	return &Sequencer{next: start}
}

// Reserve blocks until it is the caller's turn and returns the reserved nonce.
// The caller must pair every successful Reserve with exactly one Release.
func (s *Sequencer) Reserve(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	if !s.busy {
		s.busy = true
		nonce := s.next
		s.mu.Unlock()
		return nonce, nil
	}

	ch := make(chan uint64, 1)
	s.waiters = append(s.waiters, ch)
	s.mu.Unlock()

	select {
	case nonce := <-ch:
		return nonce, nil
	case <-ctx.Done():
		s.mu.Lock()
		for i, w := range s.waiters {
			if w == ch {
				s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
				s.mu.Unlock()
				return 0, ctx.Err()
			}
		}
		s.mu.Unlock()

		// The nonce was already handed to us while cancelling; give it back
		// unused so the next waiter gets the same number.
		nonce := <-ch
		s.Release(nonce, false)
		return 0, ctx.Err()
	}
}

// Release returns a reservation. ok=true advances the counter past the nonce
// (the submission was accepted by the ledger); ok=false re-opens the same number.
func (s *Sequencer) Release(nonce uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok && nonce >= s.next {
		s.next = nonce + 1
	}

	if len(s.waiters) > 0 {
		ch := s.waiters[0]
		s.waiters = s.waiters[1:]
		ch <- s.next
		return
	}

	s.busy = false
}

// Resync resets the counter from the ledger's observed nonce, recovering from a
// reservation lost to a crash or an ambiguous timeout. It refuses to run while a
// reservation is in flight.
func (s *Sequencer) Resync(nonce uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrSequencerBusy
	}

	s.next = nonce
	return nil
}

// Next reports the next nonce that would be handed out. Intended for tests and
// diagnostics, not for submission.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
