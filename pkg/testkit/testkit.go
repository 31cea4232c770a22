// Package testkit provides helpers for exercising an http.Handler in tests:
// a fluent request builder with JSON body and cookie support, and decode
// helpers for response bodies.
package testkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client wraps the handler under test. The zero value is not usable; build
// one with New.
type Client struct {
	handler http.Handler
}

// New returns a Client that fires requests against h via httptest, without
// opening a real socket.
func New(h http.Handler) *Client {
	return &Client{handler: h}
}

// Request starts building a request. Finish with Do.
func (c *Client) Request(t *testing.T, method, target string) *Builder {
	t.Helper()
	return &Builder{
		t:       t,
		client:  c,
		method:  method,
		target:  target,
		headers: map[string]string{},
	}
}

// ─── Builder ──────────────────────────────────────────────────────────────────

// Builder accumulates one request. All setters return the builder for chaining.
type Builder struct {
	t       *testing.T
	client  *Client
	method  string
	target  string
	body    []byte
	headers map[string]string
	cookies []*http.Cookie
}

// JSON marshals v as the request body and sets the content type.
func (b *Builder) JSON(v interface{}) *Builder {
	b.t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		b.t.Fatalf("testkit: marshal request body: %v", err)
	}
	b.body = data
	b.headers["Content-Type"] = "application/json"
	return b
}

// Header sets a request header.
func (b *Builder) Header(key, value string) *Builder {
	b.headers[key] = value
	return b
}

// Cookie attaches a cookie to the request.
func (b *Builder) Cookie(ck *http.Cookie) *Builder {
	b.cookies = append(b.cookies, ck)
	return b
}

// Do fires the request through the handler and returns the recorder.
func (b *Builder) Do() *httptest.ResponseRecorder {
	b.t.Helper()

	req := httptest.NewRequest(b.method, b.target, bytes.NewReader(b.body))
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	b.client.handler.ServeHTTP(rec, req)
	return rec
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// DecodeJSON unmarshals the recorded body into dest, failing the test on
// malformed JSON.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("testkit: decode response body %q: %v", rec.Body.String(), err)
	}
}

// CookieNamed returns the named Set-Cookie from the recorded response, or
// nil when absent.
func CookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
