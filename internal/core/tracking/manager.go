package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/shiptrace/tracking-engine/internal/api/metrics"
	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// session is the per-shipment watch state: the one snapshot bound to the
// view, the last refresh error, and the scheduler owning the view's timers.
type session struct {
	shipmentID string
	scheduler  *Scheduler

	// ready is closed once the initial fetch has resolved (successfully or
	// not). A joining watcher must not read the session before then.
	ready   chan struct{}
	initErr error

	mu       sync.RWMutex
	snap     *domain.TrackingSnapshot
	lastErr  error
	watchers int

	stalenessSec atomic.Int64
}

func (s *session) snapshot() *domain.TrackingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *session) store(snap *domain.TrackingSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *session) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Manager is the TrackerService implementation: a registry of watch sessions,
// one per shipment, each owning a Scheduler scoped to the session lifetime.
type Manager struct {
	fetcher  ports.SnapshotFetcher
	cache    ports.SnapshotCache
	surfaces []ports.RenderingSurface
	opts     SchedulerOptions
	log      zerolog.Logger

	mu       sync.Mutex
	baseCtx  context.Context
	sessions map[string]*session
}

// NewManager wires the tracker service. cache and surfaces may be nil/empty.
func NewManager(fetcher ports.SnapshotFetcher, cache ports.SnapshotCache, surfaces []ports.RenderingSurface, opts SchedulerOptions, log zerolog.Logger) *Manager {
	return &Manager{
		fetcher:  fetcher,
		cache:    cache,
		surfaces: surfaces,
		opts:     opts,
		log:      log,
		baseCtx:  context.Background(),
		sessions: make(map[string]*session),
	}
}

// Start binds the manager to its root context. Session schedulers derive from
// this context, not from individual request contexts, so a watch outlives the
// request that opened it.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	m.baseCtx = ctx
	m.mu.Unlock()
}

// Stop tears down every session and releases all timers.
func (m *Manager) Stop() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.scheduler.Stop()
	}
	metrics.ActiveWatchSessions.Set(0)
}

// Watch opens (or joins) a watch session and returns the initial view. A
// joiner arriving while the session's initial fetch is still in flight waits
// for that fetch to resolve; it never observes an empty view.
func (m *Manager) Watch(ctx context.Context, shipmentID string) (*ports.TrackerView, error) {
	m.mu.Lock()
	s, ok := m.sessions[shipmentID]
	if ok {
		s.mu.Lock()
		s.watchers++
		s.mu.Unlock()
		m.mu.Unlock()

		select {
		case <-s.ready:
		case <-ctx.Done():
			m.Unwatch(shipmentID)
			return nil, ctx.Err()
		}
		if s.initErr != nil {
			return nil, s.initErr
		}
		return m.buildView(s), nil
	}

	s = &session{shipmentID: shipmentID, watchers: 1, ready: make(chan struct{})}
	opts := m.opts
	opts.OnStaleness = func(since time.Duration) {
		s.stalenessSec.Store(int64(since.Seconds()))
	}
	opts.OnError = func(err error) {
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
	}
	s.scheduler = NewScheduler(func(ctx context.Context) error {
		return m.refreshSession(ctx, s)
	}, opts, m.log.With().Str("shipment_id", shipmentID).Logger())
	m.sessions[shipmentID] = s
	baseCtx := m.baseCtx
	m.mu.Unlock()

	if err := m.refreshSession(ctx, s); err != nil {
		// Fall back to the last-known cached snapshot so the view can still
		// render stale data with its staleness indicator.
		if m.loadFromCache(ctx, s) == nil {
			m.removeSession(shipmentID)
			s.initErr = err
			close(s.ready)
			return nil, err
		}
	}
	close(s.ready)

	m.applyAutoRefresh(baseCtx, s)
	metrics.ActiveWatchSessions.Set(float64(m.sessionCount()))
	m.log.Info().Str("shipment_id", shipmentID).Msg("watch session opened")

	return m.buildView(s), nil
}

// Unwatch leaves a session; the last watcher stops the scheduler and removes
// the session so no timer can fire after teardown.
func (m *Manager) Unwatch(shipmentID string) {
	m.mu.Lock()
	s, ok := m.sessions[shipmentID]
	if !ok {
		m.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.watchers--
	remaining := s.watchers
	s.mu.Unlock()
	if remaining > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.sessions, shipmentID)
	m.mu.Unlock()

	s.scheduler.Stop()
	metrics.ActiveWatchSessions.Set(float64(m.sessionCount()))
	m.log.Info().Str("shipment_id", shipmentID).Msg("watch session closed")
}

// View returns the current display payload. Without a session a one-off fetch
// is made; no timers are started.
func (m *Manager) View(ctx context.Context, shipmentID string) (*ports.TrackerView, error) {
	m.mu.Lock()
	s, ok := m.sessions[shipmentID]
	m.mu.Unlock()
	if ok {
		// A session whose initial fetch is still in flight has no snapshot
		// yet; treat it like no session rather than hand back an empty view.
		if view := m.buildView(s); view != nil {
			return view, nil
		}
	}

	snap, err := m.fetchWithFallback(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	oneOff := &session{shipmentID: shipmentID, snap: snap}
	oneOff.scheduler = NewScheduler(func(context.Context) error { return nil }, m.opts, zerolog.Nop())
	return m.buildView(oneOff), nil
}

// Refresh performs a user-triggered refresh, resetting the staleness baseline
// immediately. A fetch failure keeps the previous snapshot; the error is
// reported on the returned view, not as a call failure, as long as something
// remains displayable.
func (m *Manager) Refresh(ctx context.Context, shipmentID string) (*ports.TrackerView, error) {
	m.mu.Lock()
	s, ok := m.sessions[shipmentID]
	baseCtx := m.baseCtx
	m.mu.Unlock()
	if !ok {
		return m.View(ctx, shipmentID)
	}

	if err := s.scheduler.Refresh(ctx); err != nil && s.snapshot() == nil {
		return nil, err
	}
	s.stalenessSec.Store(0)
	m.applyAutoRefresh(baseCtx, s)
	return m.buildView(s), nil
}

// refreshSession is the RefreshFunc bound to a session: fetch, replace the
// snapshot wholesale, cache it, and notify any rendering surfaces.
func (m *Manager) refreshSession(ctx context.Context, s *session) error {
	start := time.Now()
	snap, err := m.fetcher.Fetch(ctx, s.shipmentID)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(err)
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		}
		return err
	}

	s.store(snap)
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()

	if m.cache != nil {
		if err := m.cache.Put(ctx, snap); err != nil {
			m.log.Warn().Err(err).Str("shipment_id", s.shipmentID).Msg("snapshot cache write failed")
		}
	}
	m.renderSurfaces(s, snap)

	return nil
}

func (m *Manager) renderSurfaces(s *session, snap *domain.TrackingSnapshot) {
	if len(m.surfaces) == 0 {
		return
	}
	view, err := BuildRouteView(snap)
	if err != nil {
		// Insufficient data degrades to no rendering, not a failure.
		return
	}
	for _, surface := range m.surfaces {
		if err := surface.Render(*view); err != nil {
			m.log.Warn().Err(err).Str("shipment_id", s.shipmentID).Msg("render surface failed")
		}
	}
}

// applyAutoRefresh starts the scheduler while the shipment is in transit and
// stops it once the status leaves in_transit, per the watch policy.
func (m *Manager) applyAutoRefresh(baseCtx context.Context, s *session) {
	snap := s.snapshot()
	if snap != nil && snap.Status == domain.StatusInTransit {
		s.scheduler.Start(baseCtx)
		return
	}
	s.scheduler.Stop()
}

func (m *Manager) fetchWithFallback(ctx context.Context, shipmentID string) (*domain.TrackingSnapshot, error) {
	snap, err := m.fetcher.Fetch(ctx, shipmentID)
	if err == nil {
		if m.cache != nil {
			if cacheErr := m.cache.Put(ctx, snap); cacheErr != nil {
				m.log.Warn().Err(cacheErr).Str("shipment_id", shipmentID).Msg("snapshot cache write failed")
			}
		}
		return snap, nil
	}
	if m.cache != nil {
		if cached, cacheErr := m.cache.Get(ctx, shipmentID); cacheErr == nil && cached != nil {
			return cached, nil
		}
	}
	return nil, err
}

func (m *Manager) loadFromCache(ctx context.Context, s *session) *domain.TrackingSnapshot {
	if m.cache == nil {
		return nil
	}
	cached, err := m.cache.Get(ctx, s.shipmentID)
	if err != nil || cached == nil {
		return nil
	}
	// Keep lastErr: the view shows stale cached data alongside the failure.
	s.mu.Lock()
	s.snap = cached
	s.mu.Unlock()
	return cached
}

func (m *Manager) removeSession(shipmentID string) {
	m.mu.Lock()
	delete(m.sessions, shipmentID)
	m.mu.Unlock()
}

func (m *Manager) sessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// buildView assembles the display payload from the session's snapshot. Route
// geometry degrades silently to nil when the snapshot has insufficient
// coordinate data.
func (m *Manager) buildView(s *session) *ports.TrackerView {
	snap := s.snapshot()
	if snap == nil {
		return nil
	}

	view := &ports.TrackerView{
		ShipmentID:     snap.ShipmentID,
		TrackingNumber: snap.TrackingNumber,
		Status:         snap.Status,
		Style:          domain.StyleFor(snap.Status),
		Timeline:       DeriveTimeline(snap),
		StalenessSec:   s.stalenessSec.Load(),
		AutoRefresh:    s.scheduler.Active(),
	}

	if route, err := BuildRouteView(snap); err == nil {
		view.Route = route
	}
	if pos, ok := ResolvePosition(snap); ok {
		view.Position = &pos
	}

	s.mu.RLock()
	if s.lastErr != nil {
		view.LastError = s.lastErr.Error()
	}
	s.mu.RUnlock()

	return view
}

var _ ports.TrackerService = (*Manager)(nil)
