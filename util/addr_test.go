package util_test

import (
	"testing"

	"github.com/artpar/deadmock/util"
)

func TestResolveAddr(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		port int
		want string
	}{
		{"both set", "0.0.0.0", 8080, "0.0.0.0:8080"},
		{"defaults", "", 0, "127.0.0.1:32276"},
		{"only ip set", "10.0.0.1", 0, "10.0.0.1:32276"},
		{"only port set", "", 9000, "127.0.0.1:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := util.ResolveAddr(tt.ip, tt.port); got != tt.want {
				t.Errorf("ResolveAddr(%q, %d) = %q, want %q", tt.ip, tt.port, got, tt.want)
			}
		})
	}
}
