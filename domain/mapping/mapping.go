// Package mapping provides the declarative request/response rule value types
// used to drive deadmock's canned and proxied responses.
package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Header is a single name/value pair used both in request match constraints
// and in response headers to emit.
type Header struct {
	Key   string
	Value string
}

// RequestPattern describes the constraints an incoming request must satisfy
// for a Mapping to be considered a match. Every field is optional; an
// entirely empty RequestPattern matches any request.
type RequestPattern struct {
	Method        *string
	MethodPattern *string
	URL           *string
	URLPattern    *string

	// Headers holds exact-value header constraints, checked existentially
	// (the request must carry a header with this name and value).
	Headers []Header

	// HeaderPatterns holds regex-value header constraints, checked
	// existentially against the request's header value.
	HeaderPatterns []Header

	// AllHeaders holds exact-value header constraints that must ALL be
	// present on the request (universal, not existential).
	AllHeaders []Header
}

// IsEmpty reports whether the pattern defines no constraints at all, in
// which case it matches every request.
func (p RequestPattern) IsEmpty() bool {
	return p.Method == nil && p.MethodPattern == nil && p.URL == nil && p.URLPattern == nil &&
		len(p.Headers) == 0 && len(p.HeaderPatterns) == 0 && len(p.AllHeaders) == 0
}

// ResponsePattern describes how to build the response for a matched
// Mapping, either a canned response or a proxy rule.
type ResponsePattern struct {
	Status                        *uint16
	Headers                       []Header
	BodyFileName                  *string
	ProxyBaseURL                  *string
	AdditionalProxyRequestHeaders []Header
}

// IsProxy reports whether this response is a proxy rule: canned fields
// (status, headers, body_file_name) are ignored when true.
func (r ResponsePattern) IsProxy() bool {
	return r.ProxyBaseURL != nil && *r.ProxyBaseURL != ""
}

// StatusOrDefault returns the declared status, defaulting to 200 when
// unset. It does not validate the range; callers enforce [100,599].
func (r ResponsePattern) StatusOrDefault() int {
	if r.Status == nil {
		return 200
	}
	return int(*r.Status)
}

// Mapping pairs a request pattern with a response pattern under a priority
// used to break ties among multiple matching rules. Mappings are immutable
// once constructed and are identified by a generated UUID.
type Mapping struct {
	ID       uuid.UUID
	Priority uint8
	Request  RequestPattern
	Response ResponsePattern
}

// New constructs a Mapping with a freshly generated identifier.
func New(priority uint8, req RequestPattern, resp ResponsePattern) Mapping {
	return Mapping{
		ID:       uuid.New(),
		Priority: priority,
		Request:  req,
		Response: resp,
	}
}

// jsonView mirrors Mapping's shape for pretty-printing without exposing
// json tags on the domain type itself.
type jsonView struct {
	ID       string          `json:"id"`
	Priority uint8           `json:"priority"`
	Request  RequestPattern  `json:"request"`
	Response ResponsePattern `json:"response"`
}

// String renders the mapping as indented JSON, used by the deadmock
// validate command.
func (m Mapping) String() string {
	out, err := json.MarshalIndent(jsonView{
		ID:       m.ID.String(),
		Priority: m.Priority,
		Request:  m.Request,
		Response: m.Response,
	}, "", "  ")
	if err != nil {
		return fmt.Sprintf("mapping{id=%s, priority=%d, <unprintable: %v>}", m.ID, m.Priority, err)
	}
	return string(out)
}
