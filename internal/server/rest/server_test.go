package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/service"
)

var testKey = []byte("test-signing-key")

type fakeFeedback struct {
	entries []model.Feedback

	createErr error
	updateErr error
	removeErr error
	listErr   error

	removed []string
}

var _ service.FeedbackService = (*fakeFeedback)(nil)

func (f *fakeFeedback) List(context.Context) ([]model.Feedback, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeFeedback) Create(_ context.Context, d model.Draft) (model.Feedback, error) {
	if f.createErr != nil {
		return model.Feedback{}, f.createErr
	}
	if err := d.Validate(); err != nil {
		return model.Feedback{}, err
	}
	e := model.Feedback{ID: "new-id", Text: d.Text, Rating: d.Rating}
	f.entries = append([]model.Feedback{e}, f.entries...)
	return e, nil
}

func (f *fakeFeedback) Update(_ context.Context, id string, d model.Draft) (model.Feedback, error) {
	if f.updateErr != nil {
		return model.Feedback{}, f.updateErr
	}
	return model.Feedback{ID: id, Text: d.Text, Rating: d.Rating}, nil
}

func (f *fakeFeedback) Remove(_ context.Context, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, id)
	return nil
}

type fakeAuth struct {
	tokens model.Tokens
	err    error

	gotPassword string
	gotIP       string
}

var _ service.AuthService = (*fakeAuth)(nil)

func (a *fakeAuth) VerifyPasswordWithIP(_ context.Context, password, ip string) (model.Tokens, error) {
	a.gotPassword = password
	a.gotIP = ip
	return a.tokens, a.err
}

func newTestServer(t *testing.T, fb *fakeFeedback, auth *fakeAuth) *httptest.Server {
	t.Helper()
	if auth == nil {
		auth = &fakeAuth{}
	}
	srv := New(fb, auth, testKey, zap.NewNop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func signedToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestList_RequiresAuth(t *testing.T) {
	ts := newTestServer(t, &fakeFeedback{}, nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/feedback", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 without token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/feedback", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 with garbage token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/feedback", signedToken(t, service.TokenSubject, -time.Minute), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 with expired token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/feedback", signedToken(t, "intruder", time.Minute), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 with wrong subject, got %d", resp.StatusCode)
	}
}

func TestList_OK(t *testing.T) {
	fb := &fakeFeedback{entries: []model.Feedback{
		{ID: "b", Text: "the newer review text", Rating: 7},
		{ID: "a", Text: "the older review text", Rating: 5},
	}}
	ts := newTestServer(t, fb, nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/feedback", signedToken(t, service.TokenSubject, time.Minute), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out []model.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" {
		t.Fatalf("bad listing: %+v", out)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t, &fakeFeedback{}, nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/feedback", signedToken(t, service.TokenSubject, time.Minute), nil)
	var out []model.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("want empty JSON array, got %+v", out)
	}
}

func TestCreate_CreatedAndValidation(t *testing.T) {
	fb := &fakeFeedback{}
	ts := newTestServer(t, fb, nil)
	tok := signedToken(t, service.TokenSubject, time.Minute)

	resp := doJSON(t, http.MethodPost, ts.URL+"/feedback", tok, model.Draft{Text: "a perfectly fine review", Rating: 8})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201, got %d", resp.StatusCode)
	}
	var created model.Feedback
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Rating != 8 {
		t.Fatalf("bad created entry: %+v", created)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/feedback", tok, model.Draft{Text: "short", Rating: 8})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 on invalid draft, got %d", resp.StatusCode)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	fb := &fakeFeedback{updateErr: errs.ErrNotFound}
	ts := newTestServer(t, fb, nil)

	resp := doJSON(t, http.MethodPut, ts.URL+"/feedback/missing",
		signedToken(t, service.TokenSubject, time.Minute),
		model.Draft{Text: "a perfectly fine review", Rating: 4})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
}

func TestRemove_OK(t *testing.T) {
	fb := &fakeFeedback{}
	ts := newTestServer(t, fb, nil)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/feedback/id-1",
		signedToken(t, service.TokenSubject, time.Minute), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var out map[string]bool
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out["ok"] {
		t.Fatalf("want ok=true, got %+v", out)
	}
	if len(fb.removed) != 1 || fb.removed[0] != "id-1" {
		t.Fatalf("remove not forwarded: %+v", fb.removed)
	}
}

func TestVerifyPassword_Statuses(t *testing.T) {
	auth := &fakeAuth{tokens: model.Tokens{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Minute)}}
	ts := newTestServer(t, &fakeFeedback{}, auth)

	resp := doJSON(t, http.MethodPost, ts.URL+"/feedback/verify-password", "", map[string]string{"password": "s3cret"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var tok model.Tokens
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tok.AccessToken != "tok" {
		t.Fatalf("bad token payload: %+v", tok)
	}
	if auth.gotPassword != "s3cret" {
		t.Fatalf("password not forwarded: %q", auth.gotPassword)
	}
	if auth.gotIP == "" {
		t.Fatalf("expected remote IP to be forwarded")
	}

	auth.err = errs.ErrUnauthorized
	resp = doJSON(t, http.MethodPost, ts.URL+"/feedback/verify-password", "", map[string]string{"password": "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 on wrong password, got %d", resp.StatusCode)
	}

	auth.err = errs.ErrRateLimited
	resp = doJSON(t, http.MethodPost, ts.URL+"/feedback/verify-password", "", map[string]string{"password": "wrong"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("want 429 when rate limited, got %d", resp.StatusCode)
	}
}

func TestVerifyPassword_NotShadowedByIDRoute(t *testing.T) {
	// The verify route must never be treated as PUT/DELETE on an entry
	// named "verify-password".
	fb := &fakeFeedback{}
	auth := &fakeAuth{err: errs.ErrUnauthorized}
	ts := newTestServer(t, fb, auth)

	resp := doJSON(t, http.MethodPost, ts.URL+"/feedback/verify-password", "", map[string]string{"password": "x"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 from auth service, got %d", resp.StatusCode)
	}
	if len(fb.removed) != 0 {
		t.Fatalf("verify must not hit feedback handlers")
	}
}

func TestInternalErrorMapped(t *testing.T) {
	fb := &fakeFeedback{listErr: errors.New("db down")}
	ts := newTestServer(t, fb, nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/feedback", signedToken(t, service.TokenSubject, time.Minute), nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["error"] == "" {
		t.Fatalf("want error payload, got %+v", out)
	}
}
