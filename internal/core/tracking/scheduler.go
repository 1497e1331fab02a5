package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultRefreshInterval   = 30 * time.Second
	defaultStalenessInterval = time.Second
)

// RefreshFunc re-fetches the tracking snapshot for the watched shipment. The
// scheduler treats it as fire-and-forget; a slow call may overlap the next
// tick (last write wins on the displayed snapshot).
type RefreshFunc func(ctx context.Context) error

// SchedulerOptions tunes the two periodic tasks. Zero values select the
// defaults; tests pass short intervals to exercise the lifecycle quickly.
type SchedulerOptions struct {
	RefreshInterval   time.Duration
	StalenessInterval time.Duration
	// OnStaleness, when set, is invoked on every staleness tick with the
	// elapsed time since the last refresh baseline. Display only; it never
	// triggers a network call.
	OnStaleness func(sinceLast time.Duration)
	// OnError receives refresh failures. The scheduler itself never stops on
	// a failed refresh.
	OnError func(err error)
}

// Scheduler owns the polling cadence for a single watched shipment: a 1s
// staleness ticker and a 30s refresh tick, both released deterministically on
// Stop. State machine: Idle -> Active (Start) -> Idle (Stop), re-entrant per
// watch lifecycle.
type Scheduler struct {
	refresh RefreshFunc
	opts    SchedulerOptions
	log     zerolog.Logger

	mu          sync.Mutex
	lastRefresh time.Time
	cancel      context.CancelFunc
	loops       *sync.WaitGroup
}

// NewScheduler returns an Idle scheduler. refresh must be non-nil.
func NewScheduler(refresh RefreshFunc, opts SchedulerOptions, log zerolog.Logger) *Scheduler {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaultRefreshInterval
	}
	if opts.StalenessInterval <= 0 {
		opts.StalenessInterval = defaultStalenessInterval
	}
	return &Scheduler{refresh: refresh, opts: opts, log: log}
}

// Start transitions Idle -> Active, resetting the staleness baseline and
// launching both periodic tasks. Calling Start while Active is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.lastRefresh = time.Now()

	wg := &sync.WaitGroup{}
	s.loops = wg
	wg.Add(2)
	go s.runRefreshLoop(loopCtx, wg)
	go s.runStalenessLoop(loopCtx, wg)

	s.log.Debug().
		Dur("refresh_interval", s.opts.RefreshInterval).
		Msg("scheduler started")
}

// Stop transitions Active -> Idle. It cancels both periodic tasks and waits
// for their loops to exit, so no ticker callback fires after Stop returns.
// Idempotent; safe to call on an Idle scheduler. An in-flight refresh fetch is
// not waited for — its context is cancelled and its late completion only
// resets the baseline, which is harmless once Idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, loops := s.cancel, s.loops
	s.cancel, s.loops = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	loops.Wait()
	s.log.Debug().Msg("scheduler stopped")
}

// Active reports whether the periodic tasks are running.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Refresh performs a user-triggered refresh. The staleness baseline is reset
// immediately, independent of the periodic tick, and the fetch error (if any)
// is returned to the caller as well as forwarded to OnError.
func (s *Scheduler) Refresh(ctx context.Context) error {
	s.resetBaseline()
	err := s.refresh(ctx)
	if err != nil && s.opts.OnError != nil {
		s.opts.OnError(err)
	}
	return err
}

// SinceLastRefresh returns the elapsed time since the staleness baseline.
func (s *Scheduler) SinceLastRefresh() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRefresh.IsZero() {
		return 0
	}
	return time.Since(s.lastRefresh)
}

func (s *Scheduler) resetBaseline() {
	s.mu.Lock()
	s.lastRefresh = time.Now()
	s.mu.Unlock()
}

func (s *Scheduler) runRefreshLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Fire and forget: a slow fetch must not block the cadence, and
			// overlapping refreshes are allowed (last write wins). Completion
			// resets the baseline regardless of success so a failed refresh
			// does not stack a growing staleness display on top of the
			// separate error channel.
			go func() {
				err := s.refresh(ctx)
				s.resetBaseline()
				if err != nil {
					s.log.Warn().Err(err).Msg("periodic refresh failed")
					if s.opts.OnError != nil {
						s.opts.OnError(err)
					}
				}
			}()
		}
	}
}

func (s *Scheduler) runStalenessLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	ticker := time.NewTicker(s.opts.StalenessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.opts.OnStaleness != nil {
				s.opts.OnStaleness(s.SinceLastRefresh())
			}
		}
	}
}
