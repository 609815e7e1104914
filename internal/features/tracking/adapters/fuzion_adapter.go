package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"tracking-proxy/internal/core/config"
	"tracking-proxy/internal/core/httpclient"
	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/metrics"
	"tracking-proxy/internal/features/tracking/domain"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// FuzionAdapter looks up tracking codes on the Fuzion Cargo package API.
type FuzionAdapter struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewFuzionAdapter creates a new FuzionAdapter from the provider configuration.
// m may be nil.
func NewFuzionAdapter(cfg config.ProviderConfig, m *metrics.Metrics) *FuzionAdapter {
	return &FuzionAdapter{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout(),
		client: httpclient.NewClient(httpclient.Options{
			Timeout: cfg.Timeout(),
			Proxy:   cfg.Proxy.Settings(),
		}),
		metrics: m,
		logger:  logger.Get(),
	}
}

// FetchOne performs one bounded GET for code and normalizes the outcome.
func (a *FuzionAdapter) FetchOne(ctx context.Context, code string) domain.ProviderResult {
	start := time.Now()
	result := a.fetch(ctx, code)
	duration := time.Since(start)

	outcome := "ok"
	if !result.OK() {
		outcome = string(result.Failure().Reason)
	}
	a.metrics.ObserveProvider(outcome, duration)

	a.logger.Debug("Provider lookup finished",
		zap.String("code", code),
		zap.String("outcome", outcome),
		zap.Int("status_code", result.Failure().StatusCode),
		zap.Duration("duration", duration),
	)

	return result
}

func (a *FuzionAdapter) fetch(ctx context.Context, code string) domain.ProviderResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	url := a.baseURL + encodeURIComponent(code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Fail(domain.Failure{
			Reason:  domain.FailureTransport,
			Message: fmt.Sprintf("failed to create request: %v", err),
		})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return domain.Fail(domain.Failure{
			Reason:     domain.FailureHTTPStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportFailure(err)
	}

	return parseBody(body)
}

// parseBody accepts any JSON body whose top level is truthy and that has no truthy "error" field.
func parseBody(body []byte) domain.ProviderResult {
	if !gjson.ValidBytes(body) {
		return domain.Fail(domain.Failure{
			Reason:  domain.FailureMalformed,
			Message: string(domain.FailureMalformed),
		})
	}

	root := gjson.ParseBytes(body)
	if !truthy(root) || truthy(root.Get("error")) {
		return domain.Fail(domain.Failure{Reason: domain.FailureNoData})
	}

	return domain.Success(body)
}

// truthy mirrors JSON-ish truthiness: true, non-empty strings, non-zero numbers,
// objects and arrays are truthy; false, null, "", 0 and missing values are not.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.JSON:
		return true
	default:
		return false
	}
}

func transportFailure(err error) domain.ProviderResult {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.Fail(domain.Failure{
			Reason:  domain.FailureTimeout,
			Message: string(domain.FailureTimeout),
		})
	}

	return domain.Fail(domain.Failure{
		Reason:  domain.FailureTransport,
		Message: err.Error(),
	})
}

// encodeURIComponent percent-encodes every byte except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
