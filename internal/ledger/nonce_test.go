package ledger_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verifyx/provenance-api/internal/ledger"
)

func TestSequencerReserveRelease(t *testing.T) {
	s := ledger.NewSequencer(7)

	nonce, err := s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)

	s.Release(nonce, true)
	assert.Equal(t, uint64(8), s.Next())

	nonce, err = s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(8), nonce)
	s.Release(nonce, true)
}

func TestSequencerFailedReleaseReopensNonce(t *testing.T) {
	s := ledger.NewSequencer(0)

	nonce, err := s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)

	// Submission never reached the pool, the same number must come back.
	s.Release(nonce, false)

	nonce, err = s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)
	s.Release(nonce, true)

	assert.Equal(t, uint64(1), s.Next())
}

func TestSequencerSingleOutstandingReservation(t *testing.T) {
	s := ledger.NewSequencer(0)

	first, err := s.Reserve(context.Background())
	require.NoError(t, err)

	secondDone := make(chan uint64, 1)
	go func() {
		nonce, err := s.Reserve(context.Background())
		if err == nil {
			secondDone <- nonce
		}
	}()

	// The second reservation must block until the first releases.
	select {
	case <-secondDone:
		t.Fatal("second reservation completed while first was outstanding")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release(first, true)

	select {
	case nonce := <-secondDone:
		assert.Equal(t, uint64(1), nonce)
		s.Release(nonce, true)
	case <-time.After(time.Second):
		t.Fatal("second reservation never completed")
	}
}

func TestSequencerConcurrentReservationsAreContiguous(t *testing.T) {
	const writers = 100

	s := ledger.NewSequencer(0)

	var mu sync.Mutex
	var handed []uint64

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			nonce, err := s.Reserve(context.Background())
			if err != nil {
				return
			}
			mu.Lock()
			handed = append(handed, nonce)
			mu.Unlock()
			s.Release(nonce, true)
		}()
	}
	wg.Wait()

	require.Len(t, handed, writers)

	// Every writer got a distinct number and the set is a gap-free window.
	sort.Slice(handed, func(i, j int) bool { return handed[i] < handed[j] })
	for i, nonce := range handed {
		assert.Equal(t, uint64(i), nonce)
	}
	assert.Equal(t, uint64(writers), s.Next())
}

func TestSequencerReserveCancelled(t *testing.T) {
	s := ledger.NewSequencer(0)

	first, err := s.Reserve(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.Reserve(ctx)
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled reservation never returned")
	}

	// The cancelled waiter must not leave the queue wedged.
	s.Release(first, true)
	nonce, err := s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
	s.Release(nonce, true)
}

func TestSequencerResync(t *testing.T) {
	s := ledger.NewSequencer(3)

	require.NoError(t, s.Resync(42))
	assert.Equal(t, uint64(42), s.Next())

	nonce, err := s.Reserve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)

	// Resync must refuse while a reservation is in flight.
	assert.ErrorIs(t, s.Resync(0), ledger.ErrSequencerBusy)

	s.Release(nonce, true)
	require.NoError(t, s.Resync(0))
	assert.Equal(t, uint64(0), s.Next())
}
