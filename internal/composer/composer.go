package composer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mainbong/restly/internal/httpclient"
	"github.com/mainbong/restly/internal/logger"
)

// Alert titles and the acknowledge label passed to the AlertSink.
const (
	TitleError          = "Error"
	TitleResponseHeader = "ResponseHeader"
	AckLabel            = "OK"
)

// AlertSink presents a message to the user and returns once it was acknowledged.
type AlertSink interface {
	Alert(ctx context.Context, message, title, ackLabel string) error
}

// AlertFunc adapts a function to AlertSink.
type AlertFunc func(ctx context.Context, message, title, ackLabel string) error

func (f AlertFunc) Alert(ctx context.Context, message, title, ackLabel string) error {
	return f(ctx, message, title, ackLabel)
}

type subscription struct {
	fn func(Field)
}

// Composer holds the request being edited and the last response received.
type Composer struct {
	client httpclient.HTTPClient
	alerts AlertSink

	mu          sync.RWMutex
	url         string
	method      Method
	contentType string
	body        string
	response    Response
	inFlight    bool

	subMu       sync.Mutex
	subscribers []*subscription
}

// NewComposer creates a composer that dispatches with the default HTTP client
func NewComposer(alerts AlertSink) *Composer {
	return NewComposerWithClient(httpclient.NewDefaultHTTPClient(), alerts)
}

// NewComposerWithClient creates a composer with a custom HTTPClient
func NewComposerWithClient(client httpclient.HTTPClient, alerts AlertSink) *Composer {
	return &Composer{
		client: client,
		alerts: alerts,
	}
}

// Subscribe registers fn to be called after every change of a tracked field.
// Calls happen synchronously, in subscription order, before the mutating
// method returns. The returned function removes the subscription.
func (c *Composer) Subscribe(fn func(Field)) func() {
	sub := &subscription{fn: fn}
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, sub)
	c.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			for i, s := range c.subscribers {
				if s == sub {
					c.subscribers = append(c.subscribers[:i:i], c.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Composer) notify(field Field) {
	c.subMu.Lock()
	subs := make([]*subscription, len(c.subscribers))
	copy(subs, c.subscribers)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(field)
	}
}

func (c *Composer) URL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url
}

func (c *Composer) SetURL(value string) {
	c.mu.Lock()
	c.url = value
	c.mu.Unlock()
	c.notify(FieldURL)
}

func (c *Composer) Method() Method {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.method
}

func (c *Composer) SetMethod(value Method) {
	c.mu.Lock()
	c.method = value
	c.mu.Unlock()
	c.notify(FieldMethod)
}

func (c *Composer) ContentType() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contentType
}

func (c *Composer) SetContentType(value string) {
	c.mu.Lock()
	c.contentType = value
	c.mu.Unlock()
	c.notify(FieldContentType)
}

func (c *Composer) Body() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.body
}

func (c *Composer) SetBody(value string) {
	c.mu.Lock()
	c.body = value
	c.mu.Unlock()
	c.notify(FieldBody)
}

// Response returns a snapshot of the response fields.
func (c *Composer) Response() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.response
}

func (c *Composer) ResponseBody() string {
	return c.Response().Body
}

func (c *Composer) ResponseHeader() string {
	return c.Response().HeaderSummary
}

func (c *Composer) ResponseContentType() string {
	return c.Response().ContentType
}

func (c *Composer) setResponseHeader(value string) {
	c.mu.Lock()
	c.response.HeaderSummary = value
	c.mu.Unlock()
	c.notify(FieldResponseHeader)
}

func (c *Composer) setResponseBody(value string) {
	c.mu.Lock()
	c.response.Body = value
	c.mu.Unlock()
	c.notify(FieldResponseBody)
}

func (c *Composer) setResponseContentType(value string) {
	c.mu.Lock()
	c.response.ContentType = value
	c.mu.Unlock()
	c.notify(FieldResponseContentType)
}

// InFlight reports whether a Submit call is currently dispatching.
func (c *Composer) InFlight() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inFlight
}

// CanSubmit reports whether the submit action should be enabled.
func (c *Composer) CanSubmit() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.inFlight && !isBlank(c.url) && !isBlank(string(c.method))
}

// CanShowHeader reports whether there is a header summary to display.
func (c *Composer) CanShowHeader() bool {
	return !isBlank(c.ResponseHeader())
}

// Submit sends the composed request and captures the response.
// Failures are reported to the alert sink and returned in the Result;
// the response fields are left empty in that case.
func (c *Composer) Submit(ctx context.Context) Result {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		logger.Debug("submit ignored: request already in flight")
		return resultFromError(ErrSubmitInFlight)
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	c.setResponseHeader("")
	c.setResponseBody("")
	c.setResponseContentType("")

	req, err := c.buildRequest()
	if err != nil {
		return c.fail(ctx, err)
	}

	logger.Info("sending request: %s %s", req.Method, req.URL)
	resp, err := c.client.Execute(ctx, req)
	if err != nil {
		return c.fail(ctx, err)
	}
	logger.Info("response received: %s %s -> %d (%d bytes)", req.Method, req.URL, resp.StatusCode, len(resp.Body))

	response := Response{
		Body:          string(resp.Body),
		HeaderSummary: FormatHeaders(resp.Header),
		ContentType:   mediaType(resp.Header.Get("Content-Type")),
	}
	c.setResponseBody(response.Body)
	c.setResponseHeader(response.HeaderSummary)
	c.setResponseContentType(response.ContentType)

	return Result{Kind: ResultOK, Response: response}
}

func (c *Composer) buildRequest() (*httpclient.Request, error) {
	c.mu.RLock()
	rawURL, method, contentType, body := c.url, c.method, c.contentType, c.body
	c.mu.RUnlock()

	if !isBlank(body) && isBlank(contentType) {
		return nil, ErrContentTypeMissing
	}

	target, err := parseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	verb, err := method.verb()
	if err != nil {
		return nil, err
	}

	req := &httpclient.Request{
		Method: verb,
		URL:    target.String(),
	}
	if !isBlank(body) {
		req.Body = []byte(body)
		req.Headers = map[string]string{
			"Content-Type": strings.TrimSpace(contentType) + "; charset=utf-8",
		}
	}
	return req, nil
}

// parseTarget accepts only absolute URLs with a host.
func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute url", ErrMalformedURL, raw)
	}
	return u, nil
}

func (c *Composer) fail(ctx context.Context, err error) Result {
	result := resultFromError(err)
	logger.Warn("request failed (%s): %v", result.Kind, err)
	c.alert(ctx, result.Message(), TitleError)
	return result
}

// ShowHeader presents the header summary through the alert sink.
func (c *Composer) ShowHeader(ctx context.Context) error {
	header := c.ResponseHeader()
	if isBlank(header) || c.alerts == nil {
		return nil
	}
	return c.alerts.Alert(ctx, header, TitleResponseHeader, AckLabel)
}

func (c *Composer) alert(ctx context.Context, message, title string) {
	if c.alerts == nil {
		return
	}
	if err := c.alerts.Alert(ctx, message, title, AckLabel); err != nil {
		logger.Warn("failed to show alert %q: %v", title, err)
	}
}
