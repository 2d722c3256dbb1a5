package scheduler

import (
	"context"
	"sync"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DeadlineSweepService closes and expires projects whose deadline passed
type DeadlineSweepService interface {
	DueForSweep(ctx context.Context) ([]uuid.UUID, error)
	SweepProject(ctx context.Context, projectID uuid.UUID) (shared.SweepOutcome, error)
}

const (
	defaultSweepInterval = time.Minute
	defaultSweepWorkers  = 4
	sweepQueueCapacity   = 1000
)

// DeadlineSweeper runs the sweep on a ticker and fans projects out to a
// bounded worker pool
type DeadlineSweeper struct {
	service  DeadlineSweepService
	interval time.Duration
	pool     *pond.WorkerPool
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type DeadlineSweeperParams struct {
	Service  DeadlineSweepService
	Interval time.Duration
	Workers  int
	Logger   zerolog.Logger
}

func NewDeadlineSweeper(params DeadlineSweeperParams) *DeadlineSweeper {
	ctx, cancel := context.WithCancel(context.Background())

	interval := params.Interval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	workers := params.Workers
	if workers <= 0 {
		workers = defaultSweepWorkers
	}

	return &DeadlineSweeper{
		service:  params.Service,
		interval: interval,
		pool: pond.New(
			workers,
			sweepQueueCapacity,
			pond.Strategy(pond.Balanced()),
		),
		logger: params.Logger.With().Str("component", "deadline_sweeper").Logger(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the sweep loop
func (s *DeadlineSweeper) Start() {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting deadline sweeper")

	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop gracefully stops the sweeper and waits for in-flight projects. The
// pool is stopped only after the loop has exited.
func (s *DeadlineSweeper) Stop() {
	s.logger.Info().Msg("Stopping deadline sweeper")
	s.cancel()
	s.wg.Wait()
	s.pool.StopAndWait()
}

func (s *DeadlineSweeper) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(s.ctx)
		case <-s.ctx.Done():
			s.logger.Info().Msg("Sweep loop stopped")
			return
		}
	}
}

// RunOnce sweeps every project currently due and waits for the pass to end
func (s *DeadlineSweeper) RunOnce(ctx context.Context) shared.SweepResult {
	var result shared.SweepResult

	due, err := s.service.DueForSweep(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list projects due for sweep")
		return result
	}
	if len(due) == 0 {
		return result
	}

	s.logger.Debug().Int("count", len(due)).Msg("Found projects due for sweep")

	var mu sync.Mutex
	group := s.pool.Group()
	for _, projectID := range due {
		projectID := projectID
		group.Submit(func() {
			outcome, err := s.service.SweepProject(ctx, projectID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Scanned++
				result.Failed++
				s.logger.Warn().Err(err).Str("project_id", projectID.String()).Msg("Failed to sweep project")
				return
			}
			result.Add(outcome)
		})
	}
	group.Wait()

	if result.Closed > 0 || result.Expired > 0 || result.Failed > 0 {
		s.logger.Info().
			Int("scanned", result.Scanned).
			Int("closed", result.Closed).
			Int("expired", result.Expired).
			Int("failed", result.Failed).
			Msg("Deadline sweep finished")
	}

	return result
}
