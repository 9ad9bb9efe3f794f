package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artpar/deadmock/adapters/upstream"
	"github.com/artpar/deadmock/domain/httpmsg"
)

func TestClient_Execute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	client := upstream.NewDirectHTTP()
	result, err := client.Execute(context.Background(), "GET", srv.URL, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", result.Status)
	}
	if string(result.Body) != "hello" {
		t.Errorf("Body = %q, want hello", result.Body)
	}
}

func TestClient_Execute_SendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Extra"); got != "yes" {
			t.Errorf("X-Extra header = %q, want yes", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := upstream.NewDirectHTTP()
	_, err := client.Execute(context.Background(), "GET", srv.URL, []httpmsg.Header{{Key: "X-Extra", Value: "yes"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

func TestClient_Execute_RespectsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	client := upstream.NewDirectHTTP()
	if _, err := client.Execute(ctx, "GET", srv.URL, nil); err == nil {
		t.Fatal("expected a deadline error")
	}
}

func TestSelect_PicksVariant(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		cfg     upstream.Config
		variant string
	}{
		{"plain http", "http://example.com", upstream.Config{}, upstream.VariantHTTP},
		{"https", "https://example.com", upstream.Config{}, upstream.VariantHTTPS},
		{"proxied", "http://example.com", upstream.Config{UseProxy: true, ProxyURL: "http://proxy.internal:3128"}, upstream.VariantProxied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, variant, err := upstream.Select(tt.url, tt.cfg)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if variant != tt.variant {
				t.Errorf("variant = %q, want %q", variant, tt.variant)
			}
		})
	}
}

func TestConfig_HasCredentials(t *testing.T) {
	if (upstream.Config{}).HasCredentials() {
		t.Error("empty config should have no credentials")
	}
	if !(upstream.Config{ProxyUsername: "u", ProxyPassword: "p"}).HasCredentials() {
		t.Error("expected credentials to be detected")
	}
}
