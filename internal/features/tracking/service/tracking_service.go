package service

import (
	"context"
	"errors"
	"strings"

	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/metrics"
	"tracking-proxy/internal/features/tracking/domain"
	"tracking-proxy/internal/features/tracking/ports"

	"go.uber.org/zap"
)

var (
	// ErrMissingTracking is returned when an exact lookup has no tracking code.
	ErrMissingTracking = errors.New("tracking code is required")
	// ErrMissingQuery is returned when a fuzzy lookup has an empty query.
	ErrMissingQuery = errors.New("missing_query")
)

// TrackingService resolves tracking codes against the provider, exactly or fuzzily.
type TrackingService struct {
	provider  ports.PackageProvider
	generator *CandidateGenerator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTrackingService creates a new TrackingService. m may be nil.
func NewTrackingService(provider ports.PackageProvider, generator *CandidateGenerator, m *metrics.Metrics) *TrackingService {
	return &TrackingService{
		provider:  provider,
		generator: generator,
		metrics:   m,
		logger:    logger.Get(),
	}
}

// Lookup performs a single exact lookup of code. The code is used as given.
func (s *TrackingService) Lookup(ctx context.Context, code string) (domain.ProviderResult, error) {
	if code == "" {
		return domain.ProviderResult{}, ErrMissingTracking
	}
	return s.provider.FetchOne(ctx, code), nil
}

// Resolve tries the trimmed query first, then each generated candidate in order,
// and returns the first code the provider accepts. A result with no match is not
// an error. Probing stops early only if ctx is done.
func (s *TrackingService) Resolve(ctx context.Context, query string) (*domain.FuzzyResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrMissingQuery
	}

	result := &domain.FuzzyResult{OriginalCode: q}

	exact := s.provider.FetchOne(ctx, q)
	result.Lookups++
	if exact.OK() {
		result.MatchedCode = q
		result.Payload = exact.Payload()
		s.metrics.ObserveResolution("exact", result.Lookups)
		return result, nil
	}

	candidates := s.generator.Generate(q)
	s.logger.Debug("Exact lookup failed, probing candidates",
		zap.String("query", q),
		zap.String("reason", string(exact.Failure().Reason)),
		zap.Int("candidates", len(candidates)),
	)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		probe := s.provider.FetchOne(ctx, candidate)
		result.Lookups++
		if probe.OK() {
			result.MatchedCode = candidate
			result.Payload = probe.Payload()
			s.metrics.ObserveResolution("candidate", result.Lookups)
			s.logger.Info("Fuzzy match found",
				zap.String("query", q),
				zap.String("match", candidate),
				zap.Int("lookups", result.Lookups),
			)
			return result, nil
		}
	}

	s.metrics.ObserveResolution("no_match", result.Lookups)
	return result, nil
}
