package httpclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/proxy"

	"github.com/elazarl/goproxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLoggingRoundTripper verifies that requests are logged.
func TestLoggingRoundTripper(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := &http.Client{
		Transport: &LoggingRoundTripper{Proxied: http.DefaultTransport, Logger: zap.New(core)},
	}

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 1, logs.FilterMessage("HTTP Request Started").Len())
	completed := logs.FilterMessage("HTTP Request Completed").All()
	require.Len(t, completed, 1)
	assert.EqualValues(t, http.StatusOK, completed[0].ContextMap()["status_code"])
}

// TestLoggingRoundTripper_Error verifies that failed requests are logged.
func TestLoggingRoundTripper_Error(t *testing.T) {
	logger.Init("development", "debug")

	client := NewClient(Options{Timeout: 1 * time.Second})
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

// TestNewClient_Proxy verifies that requests are routed through the configured proxy.
func TestNewClient_Proxy(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	var proxied atomic.Int32
	fwd := goproxy.NewProxyHttpServer()
	fwd.OnRequest().DoFunc(func(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
		proxied.Add(1)
		return r, nil
	})
	proxyServer := httptest.NewServer(fwd)
	defer proxyServer.Close()

	proxyURL, err := url.Parse(proxyServer.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(proxyURL.Port())
	require.NoError(t, err)

	client := NewClient(Options{
		Timeout: 2 * time.Second,
		Proxy: proxy.Settings{
			Enabled:  true,
			Hostname: proxyURL.Hostname(),
			Port:     port,
		},
	})

	resp, err := client.Get(upstream.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, proxied.Load())
}
