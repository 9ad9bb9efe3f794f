package mapping_test

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/artpar/deadmock/domain/mapping"
)

func TestFile_ToMapping(t *testing.T) {
	doc := `
priority = 10

[request]
method = "GET"
url = "/users"

[[request.headers]]
key = "Accept"
value = "application/json"

[response]
status = 200
body_file_name = "users.json"

[[response.headers]]
key = "Content-Type"
value = "application/json"
`
	var f mapping.File
	if _, err := toml.Decode(doc, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}

	id := uuid.New()
	m := f.ToMapping(id)

	if m.ID != id {
		t.Errorf("ID = %s, want %s", m.ID, id)
	}
	if m.Priority != 10 {
		t.Errorf("Priority = %d, want 10", m.Priority)
	}
	if m.Request.Method == nil || *m.Request.Method != "GET" {
		t.Errorf("Request.Method = %v, want GET", m.Request.Method)
	}
	if m.Request.URL == nil || *m.Request.URL != "/users" {
		t.Errorf("Request.URL = %v, want /users", m.Request.URL)
	}
	if len(m.Request.Headers) != 1 || m.Request.Headers[0].Key != "Accept" {
		t.Fatalf("Request.Headers = %+v", m.Request.Headers)
	}
	if m.Response.BodyFileName == nil || *m.Response.BodyFileName != "users.json" {
		t.Errorf("Response.BodyFileName = %v, want users.json", m.Response.BodyFileName)
	}
	if len(m.Response.Headers) != 1 || m.Response.Headers[0].Value != "application/json" {
		t.Fatalf("Response.Headers = %+v", m.Response.Headers)
	}
}

func TestFile_ToMapping_ProxyRule(t *testing.T) {
	doc := `
priority = 1

[request]
url_pattern = "^/proxy/.*"

[response]
proxy_base_url = "http://origin.internal"

[[response.additional_proxy_request_headers]]
key = "X-Forwarded-By"
value = "deadmock"
`
	var f mapping.File
	if _, err := toml.Decode(doc, &f); err != nil {
		t.Fatalf("decode: %v", err)
	}

	m := f.ToMapping(uuid.New())
	if !m.Response.IsProxy() {
		t.Fatalf("expected a proxy rule")
	}
	if m.Request.URLPattern == nil || *m.Request.URLPattern != "^/proxy/.*" {
		t.Errorf("URLPattern = %v", m.Request.URLPattern)
	}
	if len(m.Response.AdditionalProxyRequestHeaders) != 1 {
		t.Fatalf("AdditionalProxyRequestHeaders = %+v", m.Response.AdditionalProxyRequestHeaders)
	}
}
