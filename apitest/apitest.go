// Package apitest provides test helpers for exercising routers and spec
// handlers over a real HTTP connection.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Client sends requests to an httptest.Server wrapping a handler.
type Client struct {
	Server *httptest.Server
	Header http.Header
}

// NewClient starts a server for h. It is closed when the test ends.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv, Header: make(http.Header)}
}

// Response holds a response with its body decoded as JSON into Body.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
}

// RawResponse holds a response with its body unread by any decoder.
type RawResponse struct {
	Status  int
	Headers http.Header
	Body    []byte
}

// Get sends a GET request and decodes the JSON response.
func Get[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return decode[Resp](t, c.Do(t, http.MethodGet, path, nil))
}

// Post sends a POST request with a JSON body and decodes the JSON response.
func Post[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return decode[Resp](t, c.Do(t, http.MethodPost, path, body))
}

// Put sends a PUT request with a JSON body and decodes the JSON response.
func Put[Req, Resp any](t testing.TB, c *Client, path string, body *Req) *Response[Resp] {
	t.Helper()
	return decode[Resp](t, c.Do(t, http.MethodPut, path, body))
}

// Delete sends a DELETE request and decodes the JSON response.
func Delete[Resp any](t testing.TB, c *Client, path string) *Response[Resp] {
	t.Helper()
	return decode[Resp](t, c.Do(t, http.MethodDelete, path, nil))
}

// Do sends a request and returns the raw response. A non-nil body is sent
// as JSON.
func (c *Client) Do(t testing.TB, method, path string, body any) *RawResponse {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("apitest: marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("apitest: read body: %v", err)
	}

	return &RawResponse{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    data,
	}
}

func decode[Resp any](t testing.TB, raw *RawResponse) *Response[Resp] {
	t.Helper()

	result := &Response[Resp]{
		Status:  raw.Status,
		Headers: raw.Headers,
	}
	if raw.Status == http.StatusNoContent || len(raw.Body) == 0 {
		return result
	}

	var decoded Resp
	if err := json.Unmarshal(raw.Body, &decoded); err != nil {
		t.Errorf("apitest: decode %d response: %v", raw.Status, err)
		return result
	}
	result.Body = &decoded
	return result
}
