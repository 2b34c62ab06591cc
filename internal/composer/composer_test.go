package composer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mainbong/restly/internal/httpclient"
)

type alertCall struct {
	message string
	title   string
	ack     string
}

type recordingAlerts struct {
	mu    sync.Mutex
	calls []alertCall
	err   error
}

func (r *recordingAlerts) Alert(_ context.Context, message, title, ack string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, alertCall{message: message, title: title, ack: ack})
	return r.err
}

func (r *recordingAlerts) Calls() []alertCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]alertCall(nil), r.calls...)
}

func newTestComposer() (*Composer, *httpclient.MockHTTPClient, *recordingAlerts) {
	client := httpclient.NewMockHTTPClient()
	alerts := &recordingAlerts{}
	return NewComposerWithClient(client, alerts), client, alerts
}

func TestCanSubmit(t *testing.T) {
	values := []string{"", " ", "\t\n", "x"}
	for _, u := range values {
		for _, m := range values {
			c, _, _ := newTestComposer()
			c.SetURL(u)
			c.SetMethod(Method(m))
			want := u == "x" && m == "x"
			assert.Equal(t, want, c.CanSubmit(), "url=%q method=%q", u, m)
		}
	}
}

func TestCanShowHeader(t *testing.T) {
	c, _, _ := newTestComposer()
	for _, header := range []string{"", "  ", "\n"} {
		c.setResponseHeader(header)
		assert.False(t, c.CanShowHeader(), "header=%q", header)
	}
	c.setResponseHeader("Content-Type: text/plain")
	assert.True(t, c.CanShowHeader())
}

func TestSubmit_Success(t *testing.T) {
	c, client, alerts := newTestComposer()
	client.SetResponse(http.MethodGet, "https://api.example.com/ok", http.StatusOK, `{"ok":true}`, map[string]string{
		"Content-Type": "application/json; charset=utf-8",
		"X-Trace":      "1",
	})

	c.SetURL("https://api.example.com/ok")
	c.SetMethod(MethodGet)

	result := c.Submit(context.Background())
	require.True(t, result.OK(), "unexpected result: %v", result.Err)

	assert.Equal(t, `{"ok":true}`, c.ResponseBody())
	assert.Equal(t, "application/json", c.ResponseContentType())
	assert.Equal(t, "Content-Type: application/json; charset=utf-8\nX-Trace: 1", c.ResponseHeader())
	assert.Equal(t, c.Response(), result.Response)
	assert.Empty(t, alerts.Calls())

	requests := client.GetRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Nil(t, requests[0].Body)
}

func TestSubmit_BodyWithContentType(t *testing.T) {
	c, client, _ := newTestComposer()
	client.SetResponse(http.MethodPut, "https://api.example.com/items/1", http.StatusOK, "", nil)

	c.SetURL("https://api.example.com/items/1")
	c.SetMethod(MethodPut)
	c.SetContentType("application/json")
	c.SetBody(`{"name":"x"}`)

	result := c.Submit(context.Background())
	require.True(t, result.OK())

	requests := client.GetRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, `{"name":"x"}`, string(requests[0].Body))
	assert.Equal(t, "application/json; charset=utf-8", requests[0].Headers["Content-Type"])
}

func TestSubmit_MethodMapping(t *testing.T) {
	for _, m := range Methods() {
		c, client, _ := newTestComposer()
		c.SetURL("https://example.com")
		c.SetMethod(m)
		c.Submit(context.Background())

		requests := client.GetRequests()
		require.Len(t, requests, 1)
		assert.Equal(t, string(m), requests[0].Method)
	}
}

func TestSubmit_ContentTypeMissing(t *testing.T) {
	c, client, alerts := newTestComposer()
	c.SetURL("https://example.com")
	c.SetMethod(MethodPost)
	c.SetBody("hello")

	result := c.Submit(context.Background())

	assert.Equal(t, ResultContentTypeMissing, result.Kind)
	assert.ErrorIs(t, result.Err, ErrContentTypeMissing)
	assert.Empty(t, client.GetRequests())
	require.Len(t, alerts.Calls(), 1)
	assert.Equal(t, alertCall{message: "Please select a content type.", title: "Error", ack: "OK"}, alerts.Calls()[0])
}

func TestSubmit_BlankBodyNeedsNoContentType(t *testing.T) {
	c, client, _ := newTestComposer()
	c.SetURL("https://example.com")
	c.SetMethod(MethodPost)
	c.SetBody("   ")

	result := c.Submit(context.Background())

	assert.True(t, result.OK())
	requests := client.GetRequests()
	require.Len(t, requests, 1)
	assert.Nil(t, requests[0].Body)
}

func TestSubmit_MalformedURL(t *testing.T) {
	for _, raw := range []string{"ht!tp://bad uri", "http://bad uri", "not a url", "/relative/path"} {
		c, client, alerts := newTestComposer()
		c.SetURL(raw)
		c.SetMethod(MethodGet)

		result := c.Submit(context.Background())

		assert.Equal(t, ResultMalformedURL, result.Kind, "url=%q", raw)
		assert.ErrorIs(t, result.Err, ErrMalformedURL)
		assert.Empty(t, client.GetRequests())
		require.Len(t, alerts.Calls(), 1)
		assert.Equal(t, "The URL is malformed. Please change the URL and try again.", alerts.Calls()[0].message)
		assert.Equal(t, "Error", alerts.Calls()[0].title)
	}
}

func TestSubmit_ContentTypeCheckedBeforeURL(t *testing.T) {
	c, _, _ := newTestComposer()
	c.SetURL("ht!tp://bad uri")
	c.SetMethod(MethodPost)
	c.SetBody("data")

	result := c.Submit(context.Background())
	assert.Equal(t, ResultContentTypeMissing, result.Kind)
}

func TestSubmit_Unexpected(t *testing.T) {
	c, client, alerts := newTestComposer()
	client.SetError(http.MethodGet, "https://down.example.com", errors.New("connection refused"))
	c.SetURL("https://down.example.com")
	c.SetMethod(MethodGet)

	result := c.Submit(context.Background())

	assert.Equal(t, ResultUnexpected, result.Kind)
	require.Len(t, alerts.Calls(), 1)
	assert.Equal(t, "An unexpected error occurred: connection refused", alerts.Calls()[0].message)
	assert.Equal(t, Response{}, c.Response())
}

func TestSubmit_UnsupportedMethodIsUnexpected(t *testing.T) {
	c, client, _ := newTestComposer()
	c.SetURL("https://example.com")
	c.SetMethod(Method("PATCH"))

	result := c.Submit(context.Background())

	assert.Equal(t, ResultUnexpected, result.Kind)
	assert.Empty(t, client.GetRequests())
}

func TestSubmit_ClearsResponseBeforeDispatch(t *testing.T) {
	c, client, _ := newTestComposer()
	client.SetResponse(http.MethodGet, "https://example.com/a", http.StatusOK, "first", map[string]string{"Content-Type": "text/plain"})
	c.SetURL("https://example.com/a")
	c.SetMethod(MethodGet)
	require.True(t, c.Submit(context.Background()).OK())
	require.Equal(t, "first", c.ResponseBody())

	var seen []Response
	unsubscribe := c.Subscribe(func(Field) {
		seen = append(seen, c.Response())
	})
	defer unsubscribe()

	c.SetURL("ht!tp://bad uri")
	seen = nil
	c.Submit(context.Background())

	require.Len(t, seen, 3)
	assert.Equal(t, Response{}, seen[2])
	assert.Equal(t, Response{}, c.Response())
}

func TestSubscribe_OneNotificationPerMutation(t *testing.T) {
	c, client, _ := newTestComposer()
	client.SetResponse(http.MethodGet, "https://example.com", http.StatusOK, "ok", map[string]string{"Content-Type": "text/plain"})

	counts := map[Field]int{}
	c.Subscribe(func(f Field) { counts[f]++ })

	c.SetURL("https://example.com")
	c.SetMethod(MethodGet)
	c.SetContentType("text/plain")
	c.SetBody("")

	assert.Equal(t, map[Field]int{FieldURL: 1, FieldMethod: 1, FieldContentType: 1, FieldBody: 1}, counts)

	for k := range counts {
		delete(counts, k)
	}
	require.True(t, c.Submit(context.Background()).OK())

	// cleared once, then set once
	assert.Equal(t, map[Field]int{
		FieldResponseBody:        2,
		FieldResponseHeader:      2,
		FieldResponseContentType: 2,
	}, counts)
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	c, _, _ := newTestComposer()

	var order []string
	first := c.Subscribe(func(Field) { order = append(order, "first") })
	c.Subscribe(func(Field) { order = append(order, "second") })

	c.SetURL("x")
	assert.Equal(t, []string{"first", "second"}, order)

	first()
	first()
	order = nil
	c.SetURL("y")
	assert.Equal(t, []string{"second"}, order)
}

func TestSubscribe_CanReadComposerInCallback(t *testing.T) {
	c, _, _ := newTestComposer()
	var got string
	c.Subscribe(func(f Field) {
		if f == FieldURL {
			got = c.URL()
		}
	})
	c.SetURL("https://example.com")
	assert.Equal(t, "https://example.com", got)
}

type blockingClient struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingClient) Execute(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	close(b.started)
	<-b.release
	return &httpclient.Response{StatusCode: http.StatusOK, Header: http.Header{}}, nil
}

func TestSubmit_RejectsReentrantSubmit(t *testing.T) {
	client := &blockingClient{started: make(chan struct{}), release: make(chan struct{})}
	alerts := &recordingAlerts{}
	c := NewComposerWithClient(client, alerts)
	c.SetURL("https://example.com")
	c.SetMethod(MethodGet)

	done := make(chan Result, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-client.started

	assert.True(t, c.InFlight())
	assert.False(t, c.CanSubmit())
	busy := c.Submit(context.Background())
	assert.Equal(t, ResultBusy, busy.Kind)
	assert.ErrorIs(t, busy.Err, ErrSubmitInFlight)

	close(client.release)
	assert.True(t, (<-done).OK())
	assert.False(t, c.InFlight())
	assert.True(t, c.CanSubmit())
	assert.Empty(t, alerts.Calls())
}

func TestShowHeader(t *testing.T) {
	c, _, alerts := newTestComposer()

	require.NoError(t, c.ShowHeader(context.Background()))
	assert.Empty(t, alerts.Calls())

	c.setResponseHeader("Server: test")
	require.NoError(t, c.ShowHeader(context.Background()))
	require.Len(t, alerts.Calls(), 1)
	assert.Equal(t, alertCall{message: "Server: test", title: "ResponseHeader", ack: "OK"}, alerts.Calls()[0])
	assert.Equal(t, "Server: test", c.ResponseHeader())
}

func TestSubmit_AlertFailureIsIgnored(t *testing.T) {
	client := httpclient.NewMockHTTPClient()
	alerts := &recordingAlerts{err: errors.New("dialog closed")}
	c := NewComposerWithClient(client, alerts)
	c.SetURL("bad")
	c.SetMethod(MethodGet)

	result := c.Submit(context.Background())
	assert.Equal(t, ResultMalformedURL, result.Kind)
	assert.False(t, c.InFlight())
}

func TestSubmit_NilAlertSink(t *testing.T) {
	c := NewComposerWithClient(httpclient.NewMockHTTPClient(), nil)
	c.SetURL("bad")
	c.SetMethod(MethodGet)
	assert.Equal(t, ResultMalformedURL, c.Submit(context.Background()).Kind)
	assert.NoError(t, c.ShowHeader(context.Background()))
}

func TestAlertFunc(t *testing.T) {
	var got string
	sink := AlertFunc(func(_ context.Context, message, _, _ string) error {
		got = message
		return nil
	})
	require.NoError(t, sink.Alert(context.Background(), "hi", "t", "OK"))
	assert.Equal(t, "hi", got)
}

func TestSubmit_RestyClientEndToEnd(t *testing.T) {
	type received struct {
		method, contentType, body string
	}
	requests := make(chan received, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests <- received{method: r.Method, contentType: r.Header.Get("Content-Type"), body: string(data)}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	alerts := &recordingAlerts{}
	c := NewComposerWithClient(httpclient.NewRestyClient(5*time.Second, "restly-test"), alerts)
	c.SetURL(server.URL + "/items")
	c.SetMethod(MethodPost)
	c.SetContentType("application/json")
	c.SetBody(`{"name":"a"}`)

	result := c.Submit(context.Background())
	require.True(t, result.OK(), "result: %v", result.Err)

	got := <-requests
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json; charset=utf-8", got.contentType)
	assert.Equal(t, `{"name":"a"}`, got.body)

	assert.Equal(t, `{"ok":true}`, c.ResponseBody())
	assert.Equal(t, "application/json", c.ResponseContentType())
	assert.Contains(t, c.ResponseHeader(), "Content-Type: application/json; charset=utf-8")
	assert.True(t, c.CanShowHeader())
	assert.Empty(t, alerts.Calls())
}
