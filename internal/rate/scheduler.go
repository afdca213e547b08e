package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Refresher is satisfied by *Service.
type Refresher interface {
	Refresh(ctx context.Context) (Status, error)
}

const defaultRefreshInterval = time.Hour

type Scheduler struct {
	refresher   Refresher
	jobDuration time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		status, refreshErr := s.refresher.Refresh(jobCtx)
		if refreshErr != nil {
			logrus.WithError(refreshErr).Errorf("Refresh rates job %s failed, previous table kept", execID)
			return
		}
		logrus.WithFields(logrus.Fields{
			"exec_id": execID,
			"as_of":   status.AsOf.Format(dateLayout),
			"source":  status.Source,
			"entries": status.Entries,
		}).Info("Rates refreshed")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.jobDuration),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
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

func NewScheduler(refresher Refresher, jobDuration time.Duration) *Scheduler {
	if jobDuration <= 0 {
		jobDuration = defaultRefreshInterval
	}
	return &Scheduler{refresher: refresher, jobDuration: jobDuration}
}
