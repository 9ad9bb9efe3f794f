// Package upstream implements the three outbound client variants deadmock
// uses to forward a proxy-rule request to a real origin: direct HTTP,
// direct HTTPS, and an authenticated outbound proxy. All three share the
// ports.Upstream capability: execute(GET, url, headers) under the caller's
// context deadline.
package upstream

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/artpar/deadmock/domain/httpmsg"
	"github.com/artpar/deadmock/ports"
)

// maxIdleConnsPerHost caps concurrent idle outbound connections kept open
// per destination host.
const maxIdleConnsPerHost = 4

// Config is the outbound-proxy configuration.
type Config struct {
	UseProxy      bool
	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
}

// HasCredentials reports whether both username and password are set,
// the only condition under which Basic auth is attached to the proxy
// request.
func (c Config) HasCredentials() bool {
	return c.ProxyUsername != "" && c.ProxyPassword != ""
}

// Client implements ports.Upstream over a single *http.Client. Clients do
// not follow redirects; they set Host from the request URL automatically
// via net/http.
type Client struct {
	http *http.Client
}

var _ ports.Upstream = (*Client)(nil)

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// NewDirectHTTP builds the plaintext direct-HTTP client variant.
func NewDirectHTTP() *Client {
	return &Client{http: &http.Client{
		CheckRedirect: noRedirect,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
		},
	}}
}

// NewDirectHTTPS builds the TLS-capable direct-HTTPS client variant.
func NewDirectHTTPS() *Client {
	return &Client{http: &http.Client{
		CheckRedirect: noRedirect,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}}
}

// NewProxied builds the outbound-proxy client variant: every request is
// tunneled through cfg.ProxyURL. When both a username and password are
// configured, Basic credentials are attached to the request made to the
// proxy.
func NewProxied(cfg Config) (*Client, error) {
	proxyURL, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url %q: %w", cfg.ProxyURL, err)
	}
	if cfg.HasCredentials() {
		proxyURL.User = url.UserPassword(cfg.ProxyUsername, cfg.ProxyPassword)
	}

	return &Client{http: &http.Client{
		CheckRedirect: noRedirect,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			Proxy:               http.ProxyURL(proxyURL),
		},
	}}, nil
}

// Variant names used consistently as the telemetry "variant" label.
const (
	VariantHTTP    = "http"
	VariantHTTPS   = "https"
	VariantProxied = "proxied"
)

// Select picks the client variant for a given upstream URL: outbound-proxy
// first if configured, else TLS if the URL is https, else plain HTTP. It
// also returns the variant name for metrics labeling.
func Select(fullURL string, cfg Config) (ports.Upstream, string, error) {
	if cfg.UseProxy {
		client, err := NewProxied(cfg)
		return client, VariantProxied, err
	}
	if len(fullURL) >= 5 && fullURL[:5] == "https" {
		return NewDirectHTTPS(), VariantHTTPS, nil
	}
	return NewDirectHTTP(), VariantHTTP, nil
}

// Execute issues a request with the given method to rawURL, adding the
// given headers and honoring
// ctx's deadline for the full round trip (connect, send, headers, body).
func (c *Client) Execute(ctx context.Context, method, rawURL string, headers []httpmsg.Header) (ports.Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return ports.Result{}, fmt.Errorf("build upstream request: %w", err)
	}
	for _, h := range headers {
		req.Header.Add(h.Key, h.Value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Result{}, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.Result{}, fmt.Errorf("read upstream body: %w", err)
	}

	respHeaders := make([]httpmsg.Header, 0, len(resp.Header))
	for k, vs := range resp.Header {
		for _, v := range vs {
			respHeaders = append(respHeaders, httpmsg.Header{Key: k, Value: v})
		}
	}

	return ports.Result{Status: resp.StatusCode, Headers: respHeaders, Body: body}, nil
}
