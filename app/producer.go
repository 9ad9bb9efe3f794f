// Package app wires deadmock's ports together into the response producer
// and connection pipeline: a small struct holding its collaborators by
// interface, one exported method doing the orchestration, metrics and
// logging threaded through as plain fields rather than global state.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artpar/deadmock/adapters/applog"
	"github.com/artpar/deadmock/adapters/bodycache"
	"github.com/artpar/deadmock/adapters/telemetry"
	"github.com/artpar/deadmock/adapters/upstream"
	"github.com/artpar/deadmock/domain/httpmsg"
	"github.com/artpar/deadmock/domain/mapping"
	"github.com/artpar/deadmock/ports"
	"github.com/artpar/deadmock/util"
)

// upstreamTimeout bounds one proxied request end to end: connect, send,
// headers, and body.
const upstreamTimeout = 10 * time.Second

// Producer turns a matched (or unmatched) request into a response. It never
// returns an error for conditions that are recovered in place (no match,
// missing body file, upstream failure); those are folded into the returned
// response. The returned error is reserved for conditions the pipeline
// itself must translate into a 503.
type Producer struct {
	matcher  ports.Matcher
	cache    ports.BodyCache
	proxyCfg upstream.Config
	metrics  *telemetry.Collector
	log      applog.Sinks
}

// NewProducer builds a Producer from its collaborators. metrics may be nil,
// in which case observations are skipped.
func NewProducer(matcher ports.Matcher, cache ports.BodyCache, proxyCfg upstream.Config, metrics *telemetry.Collector, log applog.Sinks) *Producer {
	return &Producer{matcher: matcher, cache: cache, proxyCfg: proxyCfg, metrics: metrics, log: log}
}

// Produce decides the response for req: no match, a canned body, or a
// proxied upstream call.
func (p *Producer) Produce(ctx context.Context, req httpmsg.Request) (httpmsg.Response, error) {
	start := time.Now()
	m, ok := p.matcher.Match(req)
	if p.metrics != nil {
		p.metrics.MatchDuration.Observe(time.Since(start).Seconds())
		outcome := "matched"
		if !ok {
			outcome = "no_match"
		}
		p.metrics.MatchesTotal.WithLabelValues(outcome).Inc()
	}
	if !ok {
		p.log.Info.Info().Str("method", req.Method).Str("path", req.Path).Msg("no matching mapping")
		return util.NoMatchResponse(), nil
	}

	if m.Response.IsProxy() {
		return p.produceUpstream(ctx, m, req), nil
	}
	return p.produceCanned(m), nil
}

func (p *Producer) produceCanned(m mapping.Mapping) httpmsg.Response {
	status := m.Response.StatusOrDefault()
	if status < 100 || status > 599 {
		p.log.Error.Error().Int("status", status).Str("mapping", m.ID.String()).Msg("mapping declared an out-of-range status")
		return util.InternalErrorResponse()
	}

	headers := validHeaders(m.Response.Headers)

	if m.Response.BodyFileName == nil {
		return httpmsg.NewResponse(status, headers, []byte("Unable to process body"))
	}

	contents, err := p.cache.Load(*m.Response.BodyFileName)
	if err != nil {
		outcome := "error"
		body := err.Error()
		var notFound *bodycache.ErrNotFound
		if errors.As(err, &notFound) {
			outcome = "not_found"
			body = "Body file not found!"
		}
		if p.metrics != nil {
			p.metrics.CacheLookups.WithLabelValues(outcome).Inc()
		}
		p.log.Info.Info().Str("body_file", *m.Response.BodyFileName).Err(err).Msg("body file unavailable")
		return httpmsg.NewResponse(status, headers, []byte(body))
	}
	if p.metrics != nil {
		p.metrics.CacheLookups.WithLabelValues("hit").Inc()
	}
	return httpmsg.NewResponse(status, headers, []byte(contents))
}

func (p *Producer) produceUpstream(ctx context.Context, m mapping.Mapping, req httpmsg.Request) httpmsg.Response {
	fullURL := *m.Response.ProxyBaseURL + req.RawURI

	client, variant, err := upstream.Select(fullURL, p.proxyCfg)
	if err != nil {
		p.log.Error.Error().Err(err).Str("url", fullURL).Msg("could not build upstream client")
		return util.ProducerErrorResponse("upstream client unavailable")
	}

	callCtx, cancel := context.WithTimeout(ctx, upstreamTimeout)
	defer cancel()

	headers := make([]httpmsg.Header, 0, len(m.Response.AdditionalProxyRequestHeaders))
	for _, h := range m.Response.AdditionalProxyRequestHeaders {
		headers = append(headers, httpmsg.Header(h))
	}

	start := time.Now()
	result, err := client.Execute(callCtx, "GET", fullURL, headers)
	elapsed := time.Since(start)
	if err != nil {
		outcome := "error"
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			outcome = "timeout"
		}
		if p.metrics != nil {
			p.metrics.ObserveUpstream(variant, outcome, elapsed)
		}
		p.log.Info.Info().Str("url", fullURL).Str("outcome", outcome).Err(err).Msg("upstream call failed")
		return util.ProducerErrorResponse("upstream request failed: " + err.Error())
	}

	if p.metrics != nil {
		p.metrics.ObserveUpstream(variant, "ok", elapsed)
	}

	status := result.Status
	if status == 0 {
		status = 200
	}
	body := strings.ToValidUTF8(string(result.Body), "�")
	return httpmsg.NewResponse(status, filterHTTPHeaders(result.Headers), []byte(body))
}

func validHeaders(in []mapping.Header) []httpmsg.Header {
	out := make([]httpmsg.Header, 0, len(in))
	for _, h := range in {
		if !util.ValidHeaderName(h.Key) || !util.ValidHeaderValue(h.Value) {
			continue
		}
		out = append(out, httpmsg.Header{Key: h.Key, Value: h.Value})
	}
	return out
}

func filterHTTPHeaders(in []httpmsg.Header) []httpmsg.Header {
	out := make([]httpmsg.Header, 0, len(in))
	for _, h := range in {
		if !util.ValidHeaderName(h.Key) || !util.ValidHeaderValue(h.Value) {
			continue
		}
		out = append(out, h)
	}
	return out
}
