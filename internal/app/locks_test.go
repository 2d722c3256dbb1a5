package app

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestProjectLocksSerializeSameProject(t *testing.T) {
	locks := NewProjectLocks()
	id := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(id)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxSeen)
	require.Zero(t, locks.Len())
}

func TestProjectLocksIndependentProjects(t *testing.T) {
	locks := NewProjectLocks()

	unlockA := locks.Lock(uuid.New())
	done := make(chan struct{})
	go func() {
		unlock := locks.Lock(uuid.New())
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on another project blocked")
	}
	require.Equal(t, 1, locks.Len())

	unlockA()
	require.Zero(t, locks.Len())
}
