// Package inbound frames a TCP byte stream as a sequence of HTTP/1.1
// request/response pairs.
//
// Decoding is built on bufio.Reader + net/http.ReadRequest rather than a
// hand-rolled parser: the standard library already owns HTTP/1.1 framing,
// and nothing gained from reimplementing it (see DESIGN.md).
package inbound

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/artpar/deadmock/domain/httpmsg"
	"github.com/artpar/deadmock/util"
)

// ErrUnsupportedVersion is returned when a client sends anything other
// than HTTP/1.1.
var ErrUnsupportedVersion = errors.New("inbound: only HTTP/1.1 is accepted")

// DecodeRequest reads exactly one HTTP/1.1 request off r. It returns
// io.EOF when the peer closed the connection cleanly between requests.
func DecodeRequest(r *bufio.Reader) (httpmsg.Request, error) {
	raw, err := http.ReadRequest(r)
	if err != nil {
		return httpmsg.Request{}, err
	}

	// The core never inspects or forwards the inbound body; drain it so
	// the stream is correctly positioned for the next request in this
	// keep-alive connection.
	if raw.Body != nil {
		_, _ = io.Copy(io.Discard, raw.Body)
		_ = raw.Body.Close()
	}

	if raw.ProtoMajor != 1 || raw.ProtoMinor != 1 {
		return httpmsg.Request{}, ErrUnsupportedVersion
	}

	headers := make([]httpmsg.Header, 0, len(raw.Header)+1)
	if raw.Host != "" {
		headers = append(headers, httpmsg.Header{Key: "Host", Value: raw.Host})
	}
	for k, vs := range raw.Header {
		for _, v := range vs {
			headers = append(headers, httpmsg.Header{Key: k, Value: v})
		}
	}

	return httpmsg.Request{
		Method:  raw.Method,
		Path:    rawPath(raw.RequestURI),
		RawURI:  raw.RequestURI,
		Version: "HTTP/1.1",
		Headers: headers,
	}, nil
}

// rawPath extracts the path component of a request-target without
// percent-decoding it. net/http's ReadRequest decodes raw.URL.Path during
// parsing; matching must compare the bytes the client actually sent.
func rawPath(requestURI string) string {
	if i := strings.IndexByte(requestURI, '?'); i >= 0 {
		return requestURI[:i]
	}
	return requestURI
}

// EncodeResponse serializes resp as an HTTP/1.1 response: a status line,
// every header as "k: v\r\n", a terminating blank line, and the body.
// Content-Length is inserted from the body length when the mapping didn't
// already declare one. Headers with invalid names or values are silently
// dropped rather than emitted malformed.
func EncodeResponse(w io.Writer, resp httpmsg.Response) error {
	reason := http.StatusText(resp.Status)
	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", resp.Status, reason); err != nil {
		return err
	}

	hasContentLength := false
	for _, h := range resp.Headers {
		if !validHeader(h) {
			continue
		}
		if equalFold(h.Key, "Content-Length") {
			hasContentLength = true
		}
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", h.Key, h.Value); err != nil {
			return err
		}
	}
	if !hasContentLength {
		if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n", len(resp.Body)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}
	_, err := w.Write(resp.Body)
	return err
}

func validHeader(h httpmsg.Header) bool {
	return util.ValidHeaderName(h.Key) && util.ValidHeaderValue(h.Value)
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
