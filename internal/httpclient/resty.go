package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mainbong/restly/internal/logger"
)

// RestyClient implements HTTPClient on top of resty.
type RestyClient struct {
	client *resty.Client
}

// NewDefaultHTTPClient creates a RestyClient without a timeout or user agent
func NewDefaultHTTPClient() *RestyClient {
	return NewRestyClient(0, "")
}

// NewRestyClient creates a RestyClient. A zero timeout leaves the transport default in place.
func NewRestyClient(timeout time.Duration, userAgent string) *RestyClient {
	c := resty.New()
	c.SetLogger(restyLogger{})
	// the composer sends whatever body the user typed, GET included
	c.SetAllowGetMethodPayload(true)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if userAgent != "" {
		c.SetHeader("User-Agent", userAgent)
	}
	return &RestyClient{client: c}
}

func (r *RestyClient) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Body) > 0 {
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// restyLogger routes resty's own diagnostics into the application log.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { logger.Error("resty: "+format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { logger.Warn("resty: "+format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { logger.Debug("resty: "+format, v...) }
