package audio

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// DefaultProbeTimeout bounds each individual probe attempt.
const DefaultProbeTimeout = 5 * time.Second

// ErrNoReachableSource is returned when every candidate has been probed once
// without success.
var ErrNoReachableSource = errors.New("no reachable audio source")

// Prober checks candidate URLs for reachability with lightweight HEAD
// requests. Probing is strictly sequential and results are not cached across
// calls. There is no overall deadline composing the per-attempt timeouts, so
// the worst case latency is the sum of all candidate timeouts.
type Prober struct {
	client *http.Client
	log    logger.Logger
}

// NewProber creates a Prober. A nil client falls back to http.DefaultClient.
func NewProber(client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{
		client: client,
		log:    logger.New(),
	}
}

// ResolveReachableSource probes candidates in order and returns the first one
// whose probe succeeds. Each attempt is bounded by perAttemptTimeout; a
// failed or timed-out probe is logged and the next candidate is tried. A
// candidate is never retried. When every candidate has been attempted exactly
// once without success, ErrNoReachableSource is returned.
func (p *Prober) ResolveReachableSource(ctx context.Context, candidates []string, perAttemptTimeout time.Duration) (string, error) {
	if perAttemptTimeout <= 0 {
		perAttemptTimeout = DefaultProbeTimeout
	}

	for i, candidate := range candidates {
		reachable, err := p.probe(ctx, candidate, perAttemptTimeout)
		if reachable {
			return candidate, nil
		}

		data := logger.Data{"candidate": candidate, "priority": i}
		if err != nil {
			data["err"] = err.Error()
		}
		p.log.Warn("audio source probe failed", data)
	}

	return "", ErrNoReachableSource
}

// probe issues a metadata-only existence check against the URL. Any 2xx or
// 3xx response counts as reachable.
func (p *Prober) probe(ctx context.Context, url string, timeout time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, errors.WithStack(err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return false, errors.Errorf("probe returned status %d", resp.StatusCode)
	}
	return true, nil
}
