package audio

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeTransport fakes probe responses per URL and counts attempts.
type probeTransport struct {
	mu       sync.Mutex
	statuses map[string]int // 0 means a transport error
	calls    map[string]int
}

func newProbeTransport(statuses map[string]int) *probeTransport {
	return &probeTransport{
		statuses: statuses,
		calls:    map[string]int{},
	}
}

func (pt *probeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	url := req.URL.String()
	pt.calls[url]++

	status, ok := pt.statuses[url]
	if !ok || status == 0 {
		return nil, errors.New("connection refused")
	}
	return &http.Response{
		StatusCode: status,
		Body:       http.NoBody,
		Request:    req,
	}, nil
}

func (pt *probeTransport) callCount(url string) int {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return pt.calls[url]
}

func TestResolveReachableSource(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"http://local.test/audio/uploads/surah_001_afasy.mp3",
		"http://primary.test/0001.mp3",
		"http://secondary.test/001.mp3",
	}

	t.Run("returns the first reachable candidate without probing the rest", func(t *testing.T) {
		t.Parallel()
		transport := newProbeTransport(map[string]int{
			candidates[0]: http.StatusOK,
			candidates[1]: http.StatusOK,
		})
		p := NewProber(&http.Client{Transport: transport})

		resolved, err := p.ResolveReachableSource(t.Context(), candidates, time.Second)
		require.NoError(t, err)
		assert.Equal(t, candidates[0], resolved)

		assert.Equal(t, 1, transport.callCount(candidates[0]))
		assert.Equal(t, 0, transport.callCount(candidates[1]))
		assert.Equal(t, 0, transport.callCount(candidates[2]))
	})

	t.Run("falls through failures to the first success", func(t *testing.T) {
		t.Parallel()
		transport := newProbeTransport(map[string]int{
			candidates[0]: http.StatusNotFound,
			candidates[1]: 0, // transport error
			candidates[2]: http.StatusOK,
		})
		p := NewProber(&http.Client{Transport: transport})

		resolved, err := p.ResolveReachableSource(t.Context(), candidates, time.Second)
		require.NoError(t, err)
		assert.Equal(t, candidates[2], resolved)

		assert.Equal(t, 1, transport.callCount(candidates[0]))
		assert.Equal(t, 1, transport.callCount(candidates[1]))
		assert.Equal(t, 1, transport.callCount(candidates[2]))
	})

	t.Run("treats redirects as reachable", func(t *testing.T) {
		t.Parallel()
		transport := newProbeTransport(map[string]int{
			candidates[0]: http.StatusFound,
		})
		p := NewProber(&http.Client{Transport: transport})

		resolved, err := p.ResolveReachableSource(t.Context(), candidates, time.Second)
		require.NoError(t, err)
		assert.Equal(t, candidates[0], resolved)
	})

	t.Run("probes every candidate exactly once before giving up", func(t *testing.T) {
		t.Parallel()
		transport := newProbeTransport(map[string]int{})
		p := NewProber(&http.Client{Transport: transport})

		_, err := p.ResolveReachableSource(t.Context(), candidates, time.Second)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoReachableSource)

		for _, candidate := range candidates {
			assert.Equal(t, 1, transport.callCount(candidate))
		}
	})

	t.Run("uses HEAD requests", func(t *testing.T) {
		t.Parallel()
		var method string
		transport := &funcTransport{fn: func(req *http.Request) (*http.Response, error) {
			method = req.Method
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
		}}
		p := NewProber(&http.Client{Transport: transport})

		_, err := p.ResolveReachableSource(t.Context(), candidates[:1], time.Second)
		require.NoError(t, err)
		assert.Equal(t, http.MethodHead, method)
	})
}

type funcTransport struct {
	fn func(*http.Request) (*http.Response, error)
}

func (ft *funcTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return ft.fn(req)
}
