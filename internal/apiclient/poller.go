package apiclient

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/promtext"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// PollResult is one metrics fetch-and-parse outcome. Err carries the
// fetch or parse failure; Samples is nil in that case.
type PollResult struct {
	Samples   []domain.Sample
	FetchedAt time.Time
	Err       error
}

// Poller periodically fetches the metrics payload, parses it and
// hands the result to a callback. Manual triggers share a rate
// limiter with the schedule so a refresh-happy caller cannot hammer
// the backend.
type Poller struct {
	client   *Client
	interval time.Duration
	limiter  *rate.Limiter
	onResult func(PollResult)
	logger   logger.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
	trigger  chan struct{}
	reset    chan time.Duration
}

// NewPoller creates a poller. onResult is invoked from the poller's
// goroutine for every completed fetch, including failed ones.
func NewPoller(client *Client, interval time.Duration, onResult func(PollResult), log logger.Logger) *Poller {
	if log == nil {
		log = logger.Default()
	}
	return &Poller{
		client:   client,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		onResult: onResult,
		logger:   log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		trigger:  make(chan struct{}, 1),
		reset:    make(chan time.Duration, 1),
	}
}

// Run fetches immediately, then on every interval tick until Stop is
// called or the context is cancelled. It blocks.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Scheduled fetches spend the limiter too, so a manual trigger
	// right after one stays suppressed.
	p.limiter.Allow()
	p.fetch(ctx)

	for {
		select {
		case <-ticker.C:
			p.limiter.Allow()
			p.fetch(ctx)
		case <-p.trigger:
			if p.limiter.Allow() {
				p.fetch(ctx)
			} else {
				p.logger.Debug("manual refresh suppressed by rate limit")
			}
		case interval := <-p.reset:
			p.interval = interval
			p.limiter = rate.NewLimiter(rate.Every(interval), 1)
			ticker.Reset(interval)
			p.logger.Debug("poll interval changed", "interval", interval)
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		}
	}
}

// Trigger requests an immediate refresh. Coalesced when one is
// already pending; dropped when the rate limit disallows it.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// SetInterval changes the schedule and resets the manual-refresh
// rate limit. Applied by the polling goroutine; a value sent while a
// previous one is still pending replaces it.
func (p *Poller) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	select {
	case <-p.reset:
	default:
	}
	p.reset <- interval
}

// Stop tears down the schedule. It does not wait for an in-flight
// fetch; use Done for that.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Done is closed once Run has returned.
func (p *Poller) Done() <-chan struct{} {
	return p.doneCh
}

func (p *Poller) fetch(ctx context.Context) {
	start := time.Now()

	payload, err := p.client.Metrics(ctx)
	if err != nil {
		p.logger.Warn("metrics fetch failed", "error", err)
		p.onResult(PollResult{FetchedAt: start, Err: err})
		return
	}

	samples, err := promtext.Parse(payload)
	if err != nil {
		p.onResult(PollResult{FetchedAt: start, Err: err})
		return
	}

	p.logger.Debug("metrics fetched", "samples", len(samples), "elapsed", time.Since(start))
	p.onResult(PollResult{Samples: samples, FetchedAt: start})
}
