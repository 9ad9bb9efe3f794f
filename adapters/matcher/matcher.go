// Package matcher implements deadmock's request matcher: given an inbound
// request and the mapping store, decide which mapping (if any) wins.
//
// Matching is grounded on the same compile-once-then-evaluate shape as a
// priority-ordered route matcher: patterns are compiled when the Matcher is
// built (mappings are immutable for the process lifetime, so there is no
// reason to recompile a regex per request), and Match walks the compiled
// set evaluating every defined constraint.
package matcher

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/artpar/deadmock/domain/httpmsg"
	"github.com/artpar/deadmock/domain/mapping"
	"github.com/artpar/deadmock/ports"
)

type headerPattern struct {
	key string
	re  *regexp.Regexp // nil if the constraint's regex failed to compile
}

type compiled struct {
	m             mapping.Mapping
	methodPattern *regexp.Regexp
	urlPattern    *regexp.Regexp
	headerPattern []headerPattern
}

// Matcher evaluates mappings against incoming requests under a fixed set
// of enabled matcher classes.
type Matcher struct {
	enabled  Class
	mappings []compiled
}

// New compiles every mapping currently in store under the given enabled
// class set. A pattern that fails to compile does not stop the Matcher from
// being built or affect other mappings, but the constraint that declared it
// never passes, so its mapping cannot match while that class is enabled.
func New(store ports.MappingStore, enabled Class) *Matcher {
	all := store.All()
	out := make([]compiled, len(all))
	for i, m := range all {
		c := compiled{m: m}
		if m.Request.MethodPattern != nil {
			c.methodPattern = safeCompile(*m.Request.MethodPattern)
		}
		if m.Request.URLPattern != nil {
			c.urlPattern = safeCompile(*m.Request.URLPattern)
		}
		for _, h := range m.Request.HeaderPatterns {
			c.headerPattern = append(c.headerPattern, headerPattern{key: h.Key, re: safeCompile(h.Value)})
		}
		out[i] = c
	}
	return &Matcher{enabled: enabled, mappings: out}
}

func safeCompile(expr string) *regexp.Regexp {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return re
}

// Match returns the winning mapping for req, or ok=false if nothing
// matches. Among all matches, the one with the highest priority wins;
// ties are broken by comparing ids, which is arbitrary but deterministic
// for the lifetime of the process.
func (mr *Matcher) Match(req httpmsg.Request) (mapping.Mapping, bool) {
	var winner *compiled
	for i := range mr.mappings {
		c := &mr.mappings[i]
		if !mr.matches(c, req) {
			continue
		}
		if winner == nil || c.m.Priority > winner.m.Priority ||
			(c.m.Priority == winner.m.Priority && less(c.m.ID, winner.m.ID)) {
			winner = c
		}
	}
	if winner == nil {
		return mapping.Mapping{}, false
	}
	return winner.m, true
}

func less(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (mr *Matcher) matches(c *compiled, req httpmsg.Request) bool {
	p := c.m.Request
	if p.IsEmpty() {
		return true
	}

	if p.Method != nil && mr.enabled.Has(ExactMethod) && req.Method != *p.Method {
		return false
	}
	if p.MethodPattern != nil && mr.enabled.Has(PatternMethod) {
		if c.methodPattern == nil || !c.methodPattern.MatchString(req.Method) {
			return false
		}
	}
	if p.URL != nil && mr.enabled.Has(ExactURL) && req.Path != *p.URL {
		return false
	}
	if p.URLPattern != nil && mr.enabled.Has(PatternURL) {
		if c.urlPattern == nil || !c.urlPattern.MatchString(req.Path) {
			return false
		}
	}
	if mr.enabled.Has(ExactHeader) {
		for _, h := range p.Headers {
			if !hasExactHeader(req, h) {
				return false
			}
		}
	}
	if mr.enabled.Has(PatternHeader) {
		for _, hp := range c.headerPattern {
			if !hasPatternHeader(req, hp) {
				return false
			}
		}
	}
	if mr.enabled.Has(ExactHeaders) {
		for _, h := range p.AllHeaders {
			if !hasExactHeader(req, h) {
				return false
			}
		}
	}
	return true
}

func hasExactHeader(req httpmsg.Request, want mapping.Header) bool {
	for _, h := range req.Headers {
		if equalFold(h.Key, want.Key) && h.Value == want.Value {
			return true
		}
	}
	return false
}

func hasPatternHeader(req httpmsg.Request, want headerPattern) bool {
	if want.re == nil {
		return false
	}
	for _, h := range req.Headers {
		if equalFold(h.Key, want.key) && want.re.MatchString(h.Value) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
