package scheduler

import (
	"context"
	"sync"
	"time"

	"jyotish/backend/internal/repository"
	"jyotish/backend/pkg/logger"
)

// Scheduler periodically sweeps expired usage counters out of the ledger.
// Counters for closed windows only matter until the window's limit can no
// longer apply, plus a safety margin for reporting.
type Scheduler struct {
	ledger     repository.UsageRepository
	interval   time.Duration
	margin     time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current sweep
	mu         sync.Mutex         // protects cancelFunc
}

func New(ledger repository.UsageRepository, interval, margin time.Duration) *Scheduler {
	return &Scheduler{
		ledger:   ledger,
		interval: interval,
		margin:   margin,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("retention scheduler started", "interval", s.interval, "margin", s.margin)
}

func (s *Scheduler) Stop() {
	// Cancel any ongoing sweep first
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("retention scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	// Store cancel function so Stop() can cancel an ongoing sweep
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	cutoff := time.Now().UTC().Add(-s.margin)
	deleted, err := s.ledger.DeleteExpired(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("retention sweep cancelled")
			return
		}
		logger.Error("retention sweep", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("retention sweep completed", "deleted", deleted, "cutoff", cutoff)
	}
}
