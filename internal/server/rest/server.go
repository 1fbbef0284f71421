// Package rest exposes the feedback HTTP API handlers.
package rest

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/feedboard/feedboard/internal/errs"
	"github.com/feedboard/feedboard/internal/model"
	"github.com/feedboard/feedboard/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	feedback service.FeedbackService
	auth     service.AuthService
	signKey  []byte
	log      *zap.Logger
}

// New constructs a REST server with injected services.
func New(feedback service.FeedbackService, auth service.AuthService, signKey []byte, log *zap.Logger) *Server {
	return &Server{feedback: feedback, auth: auth, signKey: signKey, log: log}
}

// Router builds the HTTP route table. The verify-password route is
// registered before the {id} routes so it is never captured as an id.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Recover(s.log), Logging(s.log))

	r.HandleFunc("/feedback/verify-password", s.handleVerifyPassword).Methods(http.MethodPost)
	r.Handle("/feedback", s.requireAuth(s.handleList)).Methods(http.MethodGet)
	r.Handle("/feedback", s.requireAuth(s.handleCreate)).Methods(http.MethodPost)
	r.Handle("/feedback/{id}", s.requireAuth(s.handleUpdate)).Methods(http.MethodPut)
	r.Handle("/feedback/{id}", s.requireAuth(s.handleRemove)).Methods(http.MethodDelete)
	return r
}

// --- Auth ---

type verifyRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	tok, err := s.auth.VerifyPasswordWithIP(r.Context(), req.Password, remoteIP(r))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid password")
		case errors.Is(err, errs.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "too many attempts")
		default:
			s.log.Error("verify password", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal")
		}
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

// --- Feedback ---

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.feedback.List(r.Context())
	if err != nil {
		s.log.Error("list feedback", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	if entries == nil {
		entries = []model.Feedback{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	f, err := s.feedback.Create(r.Context(), d)
	if err != nil {
		s.writeServiceError(w, "create feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var d model.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body")
		return
	}
	f, err := s.feedback.Update(r.Context(), id, d)
	if err != nil {
		s.writeServiceError(w, "update feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.feedback.Remove(r.Context(), id); err != nil {
		s.writeServiceError(w, "remove feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.log.Error(op, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// requireAuth extracts "Authorization: Bearer <JWT>", verifies HS256 and
// checks the editor subject before calling next.
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "no auth")
			return
		}

		var claims jwt.RegisteredClaims
		parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.signKey, nil
		})
		if err != nil || !parsed.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
		if err := v.Validate(&claims); err != nil || claims.Subject != service.TokenSubject {
			writeError(w, http.StatusUnauthorized, "token expired or not valid yet")
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) (string, error) {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
		t := strings.TrimSpace(v[7:])
		if t != "" {
			return t, nil
		}
	}
	return "", errors.New("no bearer token")
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
