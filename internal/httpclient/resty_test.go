package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClient_ExecuteGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", "abc")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewDefaultHTTPClient()
	resp, err := client.Execute(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL + "/items"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "abc", resp.Header.Get("X-Request-Id"))
}

func TestRestyClient_ExecuteWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/xml; charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "restly-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "<a>1</a>", string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewRestyClient(5*time.Second, "restly-test")
	resp, err := client.Execute(context.Background(), &Request{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Headers: map[string]string{"Content-Type": "application/xml; charset=utf-8"},
		Body:    []byte("<a>1</a>"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRestyClient_GetWithBody(t *testing.T) {
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewDefaultHTTPClient()
	_, err := client.Execute(context.Background(), &Request{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:    []byte("payload"),
	})
	require.NoError(t, err)
	assert.Equal(t, "payload", received)
}

func TestRestyClient_Non2xxIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	resp, err := NewDefaultHTTPClient().Execute(context.Background(), &Request{Method: http.MethodDelete, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "nope\n", string(resp.Body))
}

func TestRestyClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewDefaultHTTPClient().Execute(context.Background(), &Request{Method: http.MethodGet, URL: url})
	assert.Error(t, err)
}

func TestRestyClient_NilRequest(t *testing.T) {
	_, err := NewDefaultHTTPClient().Execute(context.Background(), nil)
	assert.Error(t, err)
}
