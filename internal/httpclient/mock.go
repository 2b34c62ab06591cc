package httpclient

import (
	"context"
	"net/http"
	"sync"
)

// MockHTTPClient is a mock implementation of HTTPClient for testing
type MockHTTPClient struct {
	mu        sync.Mutex
	responses map[string]*Response
	errors    map[string]error
	requests  []*Request
}

// NewMockHTTPClient creates a new MockHTTPClient instance
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{
		responses: make(map[string]*Response),
		errors:    make(map[string]error),
		requests:  make([]*Request, 0),
	}
}

func mockKey(method, url string) string {
	return method + " " + url
}

// SetResponse sets a mock response for a method and URL
func (m *MockHTTPClient) SetResponse(method, url string, statusCode int, body string, headers map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	header := make(http.Header)
	for k, v := range headers {
		header.Set(k, v)
	}
	m.responses[mockKey(method, url)] = &Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Header:     header,
		Body:       []byte(body),
	}
}

// SetError sets an error to return for a method and URL
func (m *MockHTTPClient) SetError(method, url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[mockKey(method, url)] = err
}

// GetRequests returns all requests made to this client
func (m *MockHTTPClient) GetRequests() []*Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// ClearRequests clears the request history
func (m *MockHTTPClient) ClearRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = make([]*Request, 0)
}

func (m *MockHTTPClient) Execute(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	key := mockKey(req.Method, req.URL)

	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if resp, ok := m.responses[key]; ok {
		body := make([]byte, len(resp.Body))
		copy(body, resp.Body)
		return &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Header:     resp.Header.Clone(),
			Body:       body,
		}, nil
	}

	// Default: return 404
	return &Response{
		StatusCode: http.StatusNotFound,
		Status:     http.StatusText(http.StatusNotFound),
		Header:     make(http.Header),
		Body:       []byte("Not Found"),
	}, nil
}
