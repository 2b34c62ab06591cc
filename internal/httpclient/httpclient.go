package httpclient

import (
	"context"
	"net/http"
)

// Request is a single outbound HTTP request.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is the fully read result of a request.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// HTTPClient abstracts HTTP dispatch for testability
type HTTPClient interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}
