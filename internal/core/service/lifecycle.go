package service

import (
	"context"
	"sync"
	"time"

	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// Refresher runs the periodic local expiry check while a session is
// active. It tears itself down when the session goes away, and can be
// stopped from outside when the owning context ends.
type Refresher struct {
	sessions *SessionService
	interval time.Duration
	logger   logger.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewRefresher creates a refresher. interval is how often the expiry
// check runs.
func NewRefresher(sessions *SessionService, interval time.Duration, log logger.Logger) *Refresher {
	if log == nil {
		log = logger.Default()
	}
	return &Refresher{
		sessions: sessions,
		interval: interval,
		logger:   log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Run checks expiry on every tick until the session becomes inactive,
// Stop is called, or the context is cancelled. It blocks.
func (r *Refresher) Run(ctx context.Context) {
	defer close(r.doneCh)

	// A logout elsewhere stops the schedule without waiting for the
	// next tick.
	loggedOut := make(chan struct{}, 1)
	unsubscribe := r.sessions.Subscribe(func(s *domain.Session) {
		if s == nil {
			select {
			case loggedOut <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	// A logout that happened before the subscription was registered
	// would otherwise go unseen until the first tick.
	if !r.sessions.IsAuthenticated() {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sessions.Refresh()
			if !r.sessions.IsAuthenticated() {
				r.logger.Debug("refresher stopping, session inactive")
				return
			}
		case <-loggedOut:
			r.logger.Debug("refresher stopping, session cleared")
			return
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		}
	}
}

// Stop tears the schedule down. Safe to call more than once.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Done is closed once Run has returned.
func (r *Refresher) Done() <-chan struct{} {
	return r.doneCh
}
