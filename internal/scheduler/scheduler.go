package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/river-conditions/internal/river"
)

// Warmer is the part of river.Service the scheduler needs.
type Warmer interface {
	Warm(ctx context.Context, ids []string) int
}

// Scheduler periodically refreshes the station cache for configured stations.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	warmer     Warmer
	stationIDs []string
	interval   time.Duration
	timeout    time.Duration
}

// New creates a new Scheduler. timeout bounds a single warm pass.
func New(stationIDs []string, interval, timeout time.Duration, warmer Warmer) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler:  s,
		warmer:     warmer,
		stationIDs: stationIDs,
		interval:   interval,
		timeout:    timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.stationIDs) == 0 {
		log.Println("scheduler: no stations configured; nothing to warm")
		return nil
	}
	if s.interval <= 0 {
		log.Println("scheduler: warm interval not set; cache warming disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce warms every configured station, one after the other.
func (s *Scheduler) RunOnce() {
	log.Println("scheduler: running cache warm job")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	n := s.warmer.Warm(ctx, s.stationIDs)
	log.Printf("scheduler: warmed %d/%d stations", n, len(s.stationIDs))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

var _ Warmer = (*river.Service)(nil)
