package httpmsg_test

import (
	"testing"

	"github.com/artpar/deadmock/domain/httpmsg"
)

func TestRequest_Header(t *testing.T) {
	req := httpmsg.Request{
		Headers: []httpmsg.Header{
			{Key: "Content-Type", Value: "application/json"},
			{Key: "X-Request-Id", Value: "abc"},
		},
	}

	tests := []struct {
		name    string
		lookup  string
		want    string
		wantOK  bool
	}{
		{"exact case", "Content-Type", "application/json", true},
		{"different case", "content-type", "application/json", true},
		{"missing", "Authorization", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := req.Header(tt.lookup)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewResponse_ValidatesStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
	}{
		{"ok status", 200, 200},
		{"low boundary", 100, 100},
		{"high boundary", 599, 599},
		{"too low", 99, 500},
		{"too high", 600, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httpmsg.NewResponse(tt.status, nil, nil)
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", resp.Status, tt.wantStatus)
			}
		})
	}
}
