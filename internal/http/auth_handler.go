package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"medipredict/internal/store"
)

// AuthHandler proxies login/register to the auth service and caches the
// resulting session so predict/history handlers can resolve the user
// behind a bearer token.
type AuthHandler struct {
	client   *AuthClient
	sessions *store.SessionStore
	logger   *zap.Logger
}

func NewAuthHandler(client *AuthClient, sessions *store.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login forwards the credentials and, on success, records the session
// under the returned access token. The upstream body is passed through
// unchanged.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	resp, err := h.client.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeUpstream(w, err, "login failed")
		return
	}

	sess := store.Session{UserID: req.Email, Email: req.Email}
	if err := h.sessions.Put(ctx, resp.AccessToken, sess); err != nil {
		h.logger.Warn("failed to cache session", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Raw)
}

// Register forwards the registration; no session is created (the user
// logs in afterwards).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		writeDetail(w, http.StatusBadRequest, "email, password and full_name are required")
		return
	}

	raw, err := h.client.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		h.writeUpstream(w, err, "registration failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// writeUpstream mirrors an upstream failure (status + detail) or falls
// back to 502 when the auth service could not be reached.
func (h *AuthHandler) writeUpstream(w http.ResponseWriter, err error, fallback string) {
	var ue *upstreamError
	if errors.As(err, &ue) {
		detail := ue.Detail
		if detail == "" {
			detail = fallback
		}
		writeDetail(w, ue.StatusCode, detail)
		return
	}
	h.logger.Error(fallback, zap.Error(err))
	writeDetail(w, http.StatusBadGateway, fallback)
}
