package proxy

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
)

// Settings contains outbound proxy configuration for the provider client.
type Settings struct {
	Enabled  bool
	Hostname string
	Port     int
	Username string
	Password string
}

// HasProxy returns true if proxy is enabled and configured.
func (p Settings) HasProxy() bool {
	return p.Enabled && p.Hostname != "" && p.Port > 0
}

// URL returns the proxy URL, including credentials when both are set.
// It returns nil when no proxy is configured.
func (p Settings) URL() *url.URL {
	if !p.HasProxy() {
		return nil
	}

	u := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(p.Hostname, strconv.Itoa(p.Port)),
	}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// String returns the proxy address without credentials, for logging.
func (p Settings) String() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(p.Hostname, strconv.Itoa(p.Port)))
}

// ProxyFunc returns a function suitable for http.Transport.Proxy.
// Without a configured proxy it honours the standard environment variables.
func (p Settings) ProxyFunc() func(*http.Request) (*url.URL, error) {
	if u := p.URL(); u != nil {
		return http.ProxyURL(u)
	}
	return http.ProxyFromEnvironment
}
