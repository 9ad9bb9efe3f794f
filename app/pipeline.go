package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	"github.com/artpar/deadmock/adapters/applog"
	"github.com/artpar/deadmock/adapters/inbound"
	"github.com/artpar/deadmock/adapters/telemetry"
	"github.com/artpar/deadmock/util"
)

// Pipeline frames one TCP connection as a sequence of request/response
// pairs: decode, produce, encode, repeat until the peer disconnects or
// sends something the codec can't parse. One Pipeline serves exactly one
// connection; it holds no state shared with any other connection's
// pipeline.
type Pipeline struct {
	producer *Producer
	metrics  *telemetry.Collector
	log      applog.Sinks
}

// NewPipeline builds a Pipeline around a shared Producer. metrics may be
// nil.
func NewPipeline(producer *Producer, metrics *telemetry.Collector, log applog.Sinks) *Pipeline {
	return &Pipeline{producer: producer, metrics: metrics, log: log}
}

// Serve drives conn until the peer closes it or a codec error forces the
// connection shut. A per-request producer failure does not close the
// connection: it is translated into a 503 and the loop continues. A decode
// failure does close the connection, since the byte stream can no longer
// be trusted to frame further requests.
func (p *Pipeline) Serve(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	if p.metrics != nil {
		p.metrics.ConnectionsTotal.Inc()
		p.metrics.ConnectionsOpen.Inc()
		defer p.metrics.ConnectionsOpen.Dec()
	}

	r := bufio.NewReader(conn)
	for {
		req, err := inbound.DecodeRequest(r)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				p.log.Error.Error().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("codec error, closing connection")
			}
			return
		}

		resp, err := p.producer.Produce(ctx, req)
		if err != nil {
			p.log.Error.Error().Err(err).Msg("producer error")
			resp = util.ProducerErrorResponse(err.Error())
		}

		if err := inbound.EncodeResponse(conn, resp); err != nil {
			p.log.Error.Error().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("write error, closing connection")
			return
		}
	}
}
