// Package ports defines the interfaces (contracts) between deadmock's core
// logic and its adapters. Implementations live under adapters/.
package ports

import (
	"context"

	"github.com/artpar/deadmock/domain/httpmsg"
	"github.com/artpar/deadmock/domain/mapping"
)

// MappingStore exposes the one read operation the matcher needs: iterate
// all loaded mappings. It is read-only after startup and safe to share
// across every connection goroutine.
type MappingStore interface {
	All() []mapping.Mapping
}

// Matcher decides which mapping, if any, wins for a given request.
type Matcher interface {
	Match(req httpmsg.Request) (mapping.Mapping, bool)
}

// BodyCache resolves a body_file_name to its contents, memoizing by
// basename for the lifetime of the process.
type BodyCache interface {
	Load(basename string) (string, error)
}

// Upstream is the capability shared by all three outbound client variants:
// direct HTTP, direct HTTPS, and outbound-proxy.
type Upstream interface {
	Execute(ctx context.Context, method, url string, headers []httpmsg.Header) (Result, error)
}

// Result is the outcome of a successful upstream call.
type Result struct {
	Status  int
	Headers []httpmsg.Header
	Body    []byte
}
