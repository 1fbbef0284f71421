// Package api implements the HTTP client for the remote feedback resource.
//
// All transport failures are translated into typed outcomes at this
// boundary: 401 becomes errs.ErrUnauthorized, any other non-2xx becomes a
// *RequestError carrying status and body. Alternate `_id` keys returned by
// some backends are normalized to `id` here and nowhere else.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
)

// TokenProvider supplies the current bearer token, empty when absent.
type TokenProvider interface {
	Token() string
}

// RequestError is a non-2xx, non-401 outcome of an API call.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status=%d body=%q", e.Status, e.Body)
}

// Client wraps HTTP calls to the backend feedback resource.
type Client struct {
	baseURL string
	tokens  TokenProvider
	httpc   *http.Client
}

// New constructs a Client for the given base URL. The token provider may
// be nil for an unauthenticated client.
func New(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// wireFeedback tolerates backends that key entries by `_id`.
type wireFeedback struct {
	ID     string `json:"id"`
	AltID  string `json:"_id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (w wireFeedback) toModel() model.Feedback {
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	return model.Feedback{ID: id, Text: w.Text, Rating: w.Rating}
}

// List fetches all feedback entries.
func (c *Client) List(ctx context.Context) ([]model.Feedback, error) {
	var out []wireFeedback
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, &out); err != nil {
		return nil, err
	}
	entries := make([]model.Feedback, 0, len(out))
	for _, w := range out {
		entries = append(entries, w.toModel())
	}
	return entries, nil
}

// Create posts a draft; the server assigns the canonical id.
func (c *Client) Create(ctx context.Context, d model.Draft) (model.Feedback, error) {
	var out wireFeedback
	if err := c.do(ctx, http.MethodPost, "/feedback", d, &out); err != nil {
		return model.Feedback{}, err
	}
	return out.toModel(), nil
}

// Update replaces the entry with the given id.
func (c *Client) Update(ctx context.Context, id string, d model.Draft) (model.Feedback, error) {
	var out wireFeedback
	if err := c.do(ctx, http.MethodPut, "/feedback/"+id, d, &out); err != nil {
		return model.Feedback{}, err
	}
	return out.toModel(), nil
}

// Remove deletes the entry with the given id.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/feedback/"+id, nil, nil)
}

// VerifyPassword exchanges the shared password for a bearer token.
// A wrong password surfaces as errs.ErrAuthFailed, a temporary lock as
// errs.ErrRateLimited.
func (c *Client) VerifyPassword(ctx context.Context, password string) (string, error) {
	in := struct {
		Password string `json:"password"`
	}{Password: password}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, http.MethodPost, "/feedback/verify-password", in, &out)
	if err == nil {
		return out.AccessToken, nil
	}
	if errors.Is(err, errs.ErrUnauthorized) {
		return "", errs.ErrAuthFailed
	}
	var re *RequestError
	if errors.As(err, &re) && re.Status == http.StatusTooManyRequests {
		return "", errs.ErrRateLimited
	}
	return "", err
}

// do performs one round trip, attaching the bearer token when held.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errs.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
