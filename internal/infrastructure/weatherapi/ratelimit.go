package weatherapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// RateLimitOptions configures how a RateLimitedSource persists and waits.
type RateLimitOptions struct {
	// StatePath stores recent request times so the budget holds across runs.
	// Empty keeps the bucket in memory only.
	StatePath string
	// MaxWait is the longest a call may wait for a token before it is
	// refused with domain.ErrRateLimited. Zero waits indefinitely.
	MaxWait time.Duration
	Clock   ports.Clock
	Logger  ports.Logger
}

// RateLimitedSource wraps a ForecastSource with a token bucket. Before the
// first call the bucket is replayed from the request times of earlier runs.
type RateLimitedSource struct {
	source  ports.ForecastSource
	limiter *rate.Limiter
	window  time.Duration
	burst   int
	state   *requestLog
	opts    RateLimitOptions
	name    string

	seedOnce sync.Once
	mu       sync.Mutex
}

// NewRateLimitedSource creates a rate limited forecast source.
// rps is the maximum requests per second allowed (fractional values allowed),
// burst is the maximum burst size.
func NewRateLimitedSource(source ports.ForecastSource, rps float64, burst int, opts RateLimitOptions) *RateLimitedSource {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		window:  time.Duration(float64(burst) / rps * float64(time.Second)),
		burst:   burst,
		state:   newRequestLog(opts.StatePath),
		opts:    opts,
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// WithRateLimit returns source unchanged when limiting is disabled.
func WithRateLimit(source ports.ForecastSource, settings domain.RateLimitSettings, opts RateLimitOptions) ports.ForecastSource {
	if settings.RequestsPerSecond <= 0 {
		return source
	}
	return NewRateLimitedSource(source, settings.RequestsPerSecond, settings.Burst, opts)
}

// Name returns the source name
func (r *RateLimitedSource) Name() string {
	return r.name
}

// Fetch takes a token, waiting up to MaxWait for one, then forwards.
func (r *RateLimitedSource) Fetch(ctx context.Context, city string) (domain.ForecastRecord, error) {
	r.seedOnce.Do(r.replay)

	now := r.now()
	r.mu.Lock()
	reservation := r.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if !reservation.OK() || (r.opts.MaxWait > 0 && delay > r.opts.MaxWait) {
		reservation.CancelAt(now)
		r.mu.Unlock()
		r.debug("request refused by rate limit", map[string]interface{}{"city": city, "wait": delay.String()})
		return domain.ForecastRecord{}, domain.ErrRateLimited
	}
	r.mu.Unlock()

	if delay > 0 {
		r.debug("waiting for rate limit", map[string]interface{}{"wait": delay.String()})
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			reservation.CancelAt(r.now())
			return domain.ForecastRecord{}, &domain.TransportError{Err: fmt.Errorf("rate limit wait canceled: %w", ctx.Err())}
		case <-timer.C:
		}
	}

	r.remember(now.Add(delay))
	return r.source.Fetch(ctx, city)
}

// replay spends tokens for requests made by earlier runs inside the refill window.
func (r *RateLimitedSource) replay() {
	times, err := r.state.load()
	if err != nil {
		r.debug("rate limit state unreadable, starting with a full bucket", map[string]interface{}{"error": err.Error()})
		return
	}
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range times {
		if now.Sub(t) <= r.window {
			r.limiter.AllowN(t, 1)
		}
	}
}

func (r *RateLimitedSource) remember(at time.Time) {
	if err := r.state.append(at, r.burst); err != nil && r.opts.Logger != nil {
		r.opts.Logger.Warn("rate limit state not saved", map[string]interface{}{"error": err.Error()})
	}
}

func (r *RateLimitedSource) now() time.Time {
	if r.opts.Clock != nil {
		return r.opts.Clock.Now()
	}
	return time.Now()
}

func (r *RateLimitedSource) debug(msg string, fields map[string]interface{}) {
	if r.opts.Logger != nil {
		r.opts.Logger.Debug(msg, fields)
	}
}

var _ ports.ForecastSource = (*RateLimitedSource)(nil)
