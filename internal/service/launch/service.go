package launch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zhouzirui/launchboard/backend/internal/model/launch"
)

// ErrStoreQuery wraps every failure from the backing store scan.
var ErrStoreQuery = errors.New("store query failed")

// Service serves the read-only launch list.
type Service struct {
	store   launch.Store
	timeout time.Duration
	metrics *Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each scan. Zero leaves scans unbounded.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithMetrics records scan outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService wires a launch store into the service.
func NewService(store launch.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List performs one full scan and returns every record in store order.
func (s *Service) List(ctx context.Context) ([]launch.Launch, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	items, err := s.store.Scan(ctx)
	s.metrics.observe(err, time.Since(start), len(items))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreQuery, err)
	}

	if items == nil {
		items = []launch.Launch{}
	}
	return items, nil
}
