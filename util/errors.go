package util

import "github.com/artpar/deadmock/domain/httpmsg"

// NoMatchResponse is the canned 404 the producer emits when the matcher
// finds no winning mapping.
func NoMatchResponse() httpmsg.Response {
	body := []byte(`{"error":"Mapping not found"}`)
	return httpmsg.NewResponse(404, []httpmsg.Header{
		{Key: "Content-Type", Value: "application/json"},
	}, body)
}

// InternalErrorResponse is substituted whenever a mapping declares a
// status outside [100,599].
func InternalErrorResponse() httpmsg.Response {
	return httpmsg.NewResponse(500, []httpmsg.Header{
		{Key: "Content-Type", Value: "text/plain"},
	}, []byte("internal server error"))
}

// ProducerErrorResponse wraps an unexpected producer failure as a 503 with
// the error text as body.
func ProducerErrorResponse(msg string) httpmsg.Response {
	return httpmsg.NewResponse(503, []httpmsg.Header{
		{Key: "Content-Type", Value: "text/plain"},
	}, []byte(msg))
}
