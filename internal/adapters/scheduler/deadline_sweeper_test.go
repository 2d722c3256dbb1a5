package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeSweepService struct {
	mu       sync.Mutex
	due      []uuid.UUID
	dueErr   error
	outcomes map[uuid.UUID]shared.SweepOutcome
	failures map[uuid.UUID]error
	swept    []uuid.UUID
	passes   int
}

func (f *fakeSweepService) DueForSweep(ctx context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passes++
	return f.due, f.dueErr
}

func (f *fakeSweepService) SweepProject(ctx context.Context, projectID uuid.UUID) (shared.SweepOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swept = append(f.swept, projectID)
	if err := f.failures[projectID]; err != nil {
		return shared.SweepUnchanged, err
	}
	return f.outcomes[projectID], nil
}

func (f *fakeSweepService) passCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passes
}

func TestRunOnceTalliesOutcomes(t *testing.T) {
	closed, expired, unchanged, broken := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	service := &fakeSweepService{
		due: []uuid.UUID{closed, expired, unchanged, broken},
		outcomes: map[uuid.UUID]shared.SweepOutcome{
			closed:    shared.SweepClosed,
			expired:   shared.SweepExpired,
			unchanged: shared.SweepUnchanged,
		},
		failures: map[uuid.UUID]error{broken: errors.New("db unavailable")},
	}

	sweeper := NewDeadlineSweeper(DeadlineSweeperParams{Service: service, Workers: 2, Logger: zerolog.Nop()})
	defer sweeper.Stop()

	result := sweeper.RunOnce(context.Background())
	require.Equal(t, shared.SweepResult{Scanned: 4, Closed: 1, Expired: 1, Failed: 1}, result)
	require.ElementsMatch(t, service.due, service.swept)
}

func TestRunOnceListingFailure(t *testing.T) {
	service := &fakeSweepService{dueErr: errors.New("timeout")}
	sweeper := NewDeadlineSweeper(DeadlineSweeperParams{Service: service, Logger: zerolog.Nop()})
	defer sweeper.Stop()

	require.Equal(t, shared.SweepResult{}, sweeper.RunOnce(context.Background()))
	require.Empty(t, service.swept)
}

func TestSweeperRunsOnInterval(t *testing.T) {
	service := &fakeSweepService{}
	sweeper := NewDeadlineSweeper(DeadlineSweeperParams{
		Service:  service,
		Interval: 10 * time.Millisecond,
		Logger:   zerolog.Nop(),
	})

	sweeper.Start()
	require.Eventually(t, func() bool { return service.passCount() >= 2 }, 2*time.Second, 5*time.Millisecond)
	sweeper.Stop()

	passes := service.passCount()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, passes, service.passCount())
}
