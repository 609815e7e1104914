package httpclient

import (
	"net/http"
	"time"

	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Logger receives the request logs. Defaults to the global logger.
	Logger *zap.Logger
}

func (lrt *LoggingRoundTripper) log() *zap.Logger {
	if lrt.Logger != nil {
		return lrt.Logger
	}
	return logger.Get()
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := lrt.log()

	log.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		// Cancellation and timeouts are expected outcomes for provider probes.
		log.Debug("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	log.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// Options configures NewClient.
type Options struct {
	// Timeout is the overall client timeout. Zero means no client-level timeout.
	Timeout time.Duration
	// Proxy routes requests through an outbound HTTP proxy when enabled.
	Proxy proxy.Settings
}

// NewClient returns an http.Client with logging middleware and its own transport.
func NewClient(opts Options) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = opts.Proxy.ProxyFunc()

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: opts.Timeout,
	}
}
