package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ethanolivertroy/crosswalk/internal/model"
)

const (
	// minRequestInterval keeps us under 10 requests/sec against the bundle host
	minRequestInterval = 100 * time.Millisecond

	defaultBundleTTL = 1 * time.Hour
)

// Bundle is the wire format served to RemoteStore: records keyed by
// framework name or alias.
type Bundle struct {
	Frameworks map[string][]model.ControlRecord `json:"frameworks"`
}

// RemoteStore reads a record bundle over HTTP. Fetches are rate limited
// and the decoded bundle is cached for a TTL. It cannot be written.
type RemoteStore struct {
	url        string
	httpClient *http.Client
	ttl        time.Duration
	logger     *zap.Logger

	mu          sync.Mutex
	lastRequest time.Time
	cached      map[model.Framework][]model.ControlRecord
	fetchedAt   time.Time
}

// RemoteOption configures a RemoteStore
type RemoteOption func(*RemoteStore)

// WithHTTPClient replaces the default client (60s timeout)
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(s *RemoteStore) { s.httpClient = c }
}

// WithTTL sets how long a fetched bundle is reused. Zero disables caching.
func WithTTL(ttl time.Duration) RemoteOption {
	return func(s *RemoteStore) { s.ttl = ttl }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) RemoteOption {
	return func(s *RemoteStore) { s.logger = l }
}

// NewRemoteStore creates a store reading the bundle at url
func NewRemoteStore(url string, opts ...RemoteOption) *RemoteStore {
	s := &RemoteStore{
		url: url,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		ttl:    defaultBundleTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RemoteStore) Frameworks(ctx context.Context) ([]model.Framework, error) {
	bundle, err := s.bundle(ctx)
	if err != nil {
		return nil, err
	}
	fws := make([]model.Framework, 0, len(bundle))
	for fw := range bundle {
		fws = append(fws, fw)
	}
	model.SortFrameworks(fws)
	return fws, nil
}

func (s *RemoteStore) Load(ctx context.Context, fw model.Framework) ([]model.ControlRecord, error) {
	if err := checkFramework(fw); err != nil {
		return nil, err
	}
	bundle, err := s.bundle(ctx)
	if err != nil {
		return nil, err
	}
	records, ok := bundle[fw]
	if !ok {
		return nil, fmt.Errorf("%s at %s: %w", fw, s.url, ErrNotFound)
	}
	return model.CloneRecords(records), nil
}

func (s *RemoteStore) Save(ctx context.Context, fw model.Framework, records []model.ControlRecord) error {
	return fmt.Errorf("saving %s: %w", fw, ErrReadOnly)
}

// Invalidate drops the cached bundle
func (s *RemoteStore) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// bundle returns the cached bundle or fetches a fresh one. The lock is
// held across the fetch so concurrent callers share one request.
func (s *RemoteStore) bundle(ctx context.Context) (map[model.Framework][]model.ControlRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.ttl > 0 && time.Since(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	if err := s.waitTurn(ctx); err != nil {
		return nil, err
	}

	fetched, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = fetched
	s.fetchedAt = time.Now()
	return fetched, nil
}

// waitTurn enforces minRequestInterval; s.mu must be held
func (s *RemoteStore) waitTurn(ctx context.Context) error {
	wait := minRequestInterval - time.Since(s.lastRequest)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	s.lastRequest = time.Now()
	return nil
}

func (s *RemoteStore) fetch(ctx context.Context) (map[model.Framework][]model.ControlRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building bundle request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record bundle: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var b Bundle
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode record bundle: %w", err)
	}

	out := make(map[model.Framework][]model.ControlRecord, len(b.Frameworks))
	for name, records := range b.Frameworks {
		fw, err := model.ParseFramework(name)
		if err != nil {
			s.logger.Warn("skipping unknown framework in bundle", zap.String("framework", name))
			continue
		}
		out[fw] = append(out[fw], stamp(fw, records)...)
	}

	s.logger.Debug("fetched record bundle", zap.String("url", s.url), zap.Int("frameworks", len(out)))
	return out, nil
}
