// Package relay forwards check-upcoming-games requests to the configured
// upstream, applying response caching and the mock-mode fixture.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/SpookyGroup/Spectre-Aegis/internal/cache"
	"github.com/SpookyGroup/Spectre-Aegis/internal/config"
	"github.com/SpookyGroup/Spectre-Aegis/internal/metrics"
)

// Response is what the relay hands back to the HTTP layer. The body is the
// upstream's bytes untouched.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	FromCache   bool
}

// Forwarder relays a request body to the upstream. The upstream URL and
// credential come from configuration only; nothing a caller sends can
// override them.
type Forwarder struct {
	cfg    *config.Config
	store  cache.Store
	client *fasthttp.Client
	logger *logrus.Logger
}

func NewForwarder(cfg *config.Config, store cache.Store, logger *logrus.Logger) *Forwarder {
	return &Forwarder{
		cfg:    cfg,
		store:  store,
		client: &fasthttp.Client{},
		logger: logger,
	}
}

// Forward resolves the upstream, consults the cache, and either serves the
// mock fixture or POSTs the body upstream. Failures come back as *Error.
func (f *Forwarder) Forward(ctx context.Context, body []byte) (*Response, error) {
	upstream := f.cfg.UpstreamURL
	if f.cfg.MockUpstream {
		if upstream == "" {
			upstream = mockUpstreamURL
		}
	} else {
		if upstream == "" {
			return nil, ErrNoUpstream
		}
		if !f.cfg.BackendAllowed(upstream) {
			f.logger.WithField("upstream", upstream).Warn("upstream rejected by allowlist")
			return nil, ErrBackendNotAllowed
		}
	}

	key := cache.Key(upstream, body)
	if entry, ok, err := f.store.Get(ctx, key); err != nil {
		f.logger.WithError(err).Warn("cache lookup failed")
	} else if ok {
		metrics.CacheHits.Inc()
		return &Response{
			StatusCode:  entry.StatusCode,
			ContentType: entry.ContentType,
			Body:        entry.Body,
			FromCache:   true,
		}, nil
	}
	metrics.CacheMisses.Inc()

	var entry *cache.Entry
	if f.cfg.MockUpstream {
		fixture, err := f.mockResponse(body)
		if err != nil {
			return nil, upstreamError(err)
		}
		entry = fixture
	} else {
		fetched, err := f.postUpstream(upstream, body)
		if err != nil {
			f.logger.WithError(err).WithField("upstream", upstream).Error("forward failed")
			return nil, upstreamError(err)
		}
		entry = fetched
	}

	if err := f.store.Set(ctx, key, entry); err != nil {
		f.logger.WithError(err).Warn("failed to cache response")
	}

	return &Response{
		StatusCode:  entry.StatusCode,
		ContentType: entry.ContentType,
		Body:        entry.Body,
	}, nil
}

func (f *Forwarder) postUpstream(upstream string, body []byte) (*cache.Entry, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(upstream)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if f.cfg.UpstreamKey != "" {
		req.Header.Set("apikey", f.cfg.UpstreamKey)
		req.Header.Set("Authorization", "Bearer "+f.cfg.UpstreamKey)
	}
	req.SetBody(body)

	start := time.Now()
	err := f.client.Do(req, resp)
	metrics.UpstreamLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}

	return &cache.Entry{
		StatusCode:  resp.StatusCode(),
		ContentType: string(resp.Header.ContentType()),
		Body:        append([]byte(nil), resp.Body()...),
		StoredAt:    time.Now(),
	}, nil
}
