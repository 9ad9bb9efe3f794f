// Package server implements deadmock's connection acceptor: bind a TCP
// listener and spawn one goroutine per accepted connection, each driven by
// its own app.Pipeline. It works against a raw net.Listener rather than
// net/http.Server, since the pipeline frames HTTP/1.1 itself.
package server

import (
	"context"
	"errors"
	"net"

	"github.com/artpar/deadmock/adapters/applog"
)

// ConnHandler serves a single accepted connection until it closes.
type ConnHandler interface {
	Serve(ctx context.Context, conn net.Conn)
}

// Server accepts TCP connections on a fixed address and hands each one to
// a ConnHandler in its own goroutine.
type Server struct {
	addr    string
	handler ConnHandler
	log     applog.Sinks
}

// New builds a Server bound to addr (host:port), not yet listening.
func New(addr string, handler ConnHandler, log applog.Sinks) *Server {
	return &Server{addr: addr, handler: handler, log: log}
}

// ListenAndServe binds addr and accepts connections until ctx is canceled
// or the listener is closed. Other accept errors are logged and accepting
// continues. It blocks for the lifetime of the listener.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.Info.Info().Str("addr", s.addr).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error.Error().Err(err).Msg("accept error")
			continue
		}
		go s.handler.Serve(ctx, conn)
	}
}
