// Package api wraps HTTP access to the reconcile backend. The wrapper does
// not treat non-2xx responses as errors; callers classify the returned
// Response themselves, mirroring how every screen of the mobile client
// builds its own failure message from the raw response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"easy2go/internal/logger"
	"easy2go/internal/session"
)

// Client issues requests against a fixed backend base URL, attaching the
// bearer token and role header of the current session when present.
type Client struct {
	baseURL string
	token   string
	role    session.Role
	http    *http.Client
	log     zerolog.Logger
}

// Response is the raw outcome of a request. A transport failure never
// produces one; a completed HTTP exchange always does, whatever the status.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns nil for a 2xx response and a StatusError otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{StatusCode: r.StatusCode, Body: r.Body}
}

// DecodeJSON parses the body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// New builds a client for baseURL. The session's token and role ride along
// on every request; either may be empty.
func New(baseURL string, sess session.Session, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   sess.Token,
		role:    sess.Role,
		http:    &http.Client{Timeout: timeout},
		log:     logger.WithComponent("api"),
	}, nil
}

func (c *Client) headers(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.role != "" {
		req.Header.Set("X-ROLE", string(c.role))
	}
}

// Do issues a request with an optional query and JSON body and returns the
// raw response. Only transport-level problems surface as errors.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.headers(req)

	c.log.Debug().
		Str("method", method).
		Str("url", u).
		Msg("Issuing request")

	return c.roundTrip(req)
}

// Upload posts a multipart body with a single file part under the given
// field name. Header rules match Do.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.headers(req)

	c.log.Debug().
		Str("url", c.baseURL+path).
		Str("field", field).
		Str("filename", filename).
		Msg("Uploading file")

	return c.roundTrip(req)
}

func (c *Client) roundTrip(req *http.Request) (*Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Int("status", res.StatusCode).
		Int("bytes", len(data)).
		Msg("Response received")

	return &Response{StatusCode: res.StatusCode, Body: data}, nil
}
