package mapping_test

import (
	"strings"
	"testing"

	"github.com/artpar/deadmock/domain/mapping"
)

func TestRequestPattern_IsEmpty(t *testing.T) {
	url := "/health"

	tests := []struct {
		name string
		p    mapping.RequestPattern
		want bool
	}{
		{"zero value", mapping.RequestPattern{}, true},
		{"with url", mapping.RequestPattern{URL: &url}, false},
		{"with exact header", mapping.RequestPattern{Headers: []mapping.Header{{Key: "X-A", Value: "1"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponsePattern_IsProxy(t *testing.T) {
	empty := ""
	base := "http://upstream.example.com"

	tests := []struct {
		name string
		r    mapping.ResponsePattern
		want bool
	}{
		{"no proxy url", mapping.ResponsePattern{}, false},
		{"empty proxy url", mapping.ResponsePattern{ProxyBaseURL: &empty}, false},
		{"set proxy url", mapping.ResponsePattern{ProxyBaseURL: &base}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsProxy(); got != tt.want {
				t.Errorf("IsProxy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponsePattern_StatusOrDefault(t *testing.T) {
	var status uint16 = 201
	r := mapping.ResponsePattern{Status: &status}
	if got := r.StatusOrDefault(); got != 201 {
		t.Errorf("StatusOrDefault() = %d, want 201", got)
	}

	if got := (mapping.ResponsePattern{}).StatusOrDefault(); got != 200 {
		t.Errorf("StatusOrDefault() with nil status = %d, want 200", got)
	}
}

func TestMapping_StringIncludesIDAndPriority(t *testing.T) {
	m := mapping.New(5, mapping.RequestPattern{}, mapping.ResponsePattern{})
	s := m.String()

	if !strings.Contains(s, m.ID.String()) {
		t.Errorf("String() missing id, got %s", s)
	}
	if !strings.Contains(s, `"priority": 5`) {
		t.Errorf("String() missing priority, got %s", s)
	}
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a := mapping.New(0, mapping.RequestPattern{}, mapping.ResponsePattern{})
	b := mapping.New(0, mapping.RequestPattern{}, mapping.ResponsePattern{})
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, got %s twice", a.ID)
	}
}
