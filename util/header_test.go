package util_test

import (
	"testing"

	"github.com/artpar/deadmock/util"
)

func TestValidHeaderName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"simple", "Content-Type", true},
		{"with space", "Content Type", false},
		{"with colon", "Content:Type", false},
	}
	for _, tt := range tests {
		if got := util.ValidHeaderName(tt.in); got != tt.want {
			t.Errorf("%s: ValidHeaderName(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestValidHeaderValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "application/json", true},
		{"with cr", "bad\rvalue", false},
		{"with lf", "bad\nvalue", false},
		{"with nul", "bad\x00value", false},
	}
	for _, tt := range tests {
		if got := util.ValidHeaderValue(tt.in); got != tt.want {
			t.Errorf("%s: ValidHeaderValue(%q) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}
