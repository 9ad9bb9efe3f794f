package app_test

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/artpar/deadmock/adapters/applog"
	"github.com/artpar/deadmock/adapters/bodycache"
	"github.com/artpar/deadmock/adapters/upstream"
	"github.com/artpar/deadmock/app"
	"github.com/artpar/deadmock/domain/mapping"
)

func TestPipeline_ServesMultipleRequestsOnOneConnection(t *testing.T) {
	m := mapping.New(0, mapping.RequestPattern{}, mapping.ResponsePattern{})
	producer := app.NewProducer(fakeMatcher{m: m, ok: true}, bodycache.New(t.TempDir()), upstream.Config{}, nil, applog.Discard())
	pipeline := app.NewPipeline(producer, nil, applog.Discard())

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	go pipeline.Serve(context.Background(), serverConn)

	for i := 0; i < 2; i++ {
		if _, err := clientConn.Write([]byte("GET / HTTP/1.1\r\nHost: example.com\r\n\r\n")); err != nil {
			t.Fatalf("write request %d: %v", i, err)
		}

		clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
		resp, err := http.ReadResponse(bufio.NewReader(clientConn), nil)
		if err != nil {
			t.Fatalf("read response %d: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode != 200 {
			t.Errorf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}
}
