package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 15 * time.Minute

type Scheduler struct {
	refresher       *Refresher
	clock           clockwork.Clock
	refreshInterval time.Duration
	runOnStart      bool
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	opts := []gocron.SchedulerOption{}
	if s.clock != nil {
		opts = append(opts, gocron.WithClock(s.clock))
	}
	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if refErr := s.refresher.Refresh(jobCtx, execID); refErr != nil {
			logrus.Errorf("Refresh rates job %s failed: %v", execID, refErr)
		}
	}

	jobOpts := []gocron.JobOption{gocron.WithSingletonMode(gocron.LimitModeReschedule)}
	if s.runOnStart {
		jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(job),
		jobOpts...,
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(refresher *Refresher, clock clockwork.Clock, refreshInterval time.Duration, runOnStart bool) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Scheduler{refresher: refresher, clock: clock, refreshInterval: refreshInterval, runOnStart: runOnStart}
}
