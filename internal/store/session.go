package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session records which user a bearer token belongs to. Sessions are
// written when a login succeeds against the auth service and read to
// resolve the user behind an incoming credential; the token lifecycle
// itself (issuing, expiry) stays with the auth service.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SessionStore caches sessions in a KV under "session:<token>".
type SessionStore struct {
	kv  KV
	ttl time.Duration
}

func NewSessionStore(kv KV, ttl time.Duration) *SessionStore {
	return &SessionStore{kv: kv, ttl: ttl}
}

func (s *SessionStore) Put(ctx context.Context, token string, sess Session) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(ctx, sessionKey(token), string(raw), s.ttl)
}

// Get resolves a token. ErrMiss when unknown or expired.
func (s *SessionStore) Get(ctx context.Context, token string) (Session, error) {
	var sess Session
	raw, err := s.kv.Get(ctx, sessionKey(token))
	if err != nil {
		return sess, err
	}
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return sess, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Drop(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionKey(token))
}

func sessionKey(token string) string { return "session:" + token }
