package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"retail-admin-web/internal/model"
)

// Keys under which the two persisted values live.
const (
	KeyToken   = "token"
	KeyProfile = "usuario"
)

// ErrNoToken is returned by Token when the session holds no credential.
var ErrNoToken = errors.New("session has no token")

// Session is the per-browser session context: an opaque bearer token and the
// cached user profile, persisted in a Store.
type Session struct {
	id    string
	store Store
	// ctx is the request context used where oauth2.TokenSource gives no ctx.
	ctx context.Context
	now func() time.Time
}

// New binds a session id to a store for the lifetime of one request.
func New(ctx context.Context, id string, store Store) *Session {
	return &Session{id: id, store: store, ctx: ctx, now: time.Now}
}

func (s *Session) ID() string { return s.id }

// Token implements oauth2.TokenSource.
func (s *Session) Token() (*oauth2.Token, error) {
	raw, ok, err := s.store.Get(s.ctx, s.id, KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}, nil
}

// ClearToken forgets the stored token but keeps the cached profile.
func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, s.id, KeyToken)
}

// Login persists the token and profile returned by the backend.
func (s *Session) Login(ctx context.Context, token string, p model.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("session.Login marshal: %w", err)
	}
	if err := s.store.Set(ctx, s.id, KeyToken, token); err != nil {
		return err
	}
	return s.store.Set(ctx, s.id, KeyProfile, string(raw))
}

// Logout removes both persisted values.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, s.id, KeyToken, KeyProfile)
}

// Snapshot is the session state read at one point in time.
type Snapshot struct {
	Token   string
	Profile *model.Profile
}

// Authenticated reports whether a usable (present, unexpired) token exists.
func (s Snapshot) Authenticated(now time.Time) bool {
	return s.Token != "" && !TokenExpired(s.Token, now)
}

// Role returns the profile role, or "" without a profile.
func (s Snapshot) Role() model.Role {
	if s.Profile == nil {
		return ""
	}
	return s.Profile.Role()
}

// Load reads token and profile. A corrupt profile is dropped and reported as absent.
func (s *Session) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	token, _, err := s.store.Get(ctx, s.id, KeyToken)
	if err != nil {
		return snap, err
	}
	snap.Token = token

	raw, ok, err := s.store.Get(ctx, s.id, KeyProfile)
	if err != nil {
		return snap, err
	}
	if ok && raw != "" {
		var p model.Profile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			snap.Profile = &p
		} else {
			_ = s.store.Delete(ctx, s.id, KeyProfile)
		}
	}
	return snap, nil
}

// Now returns the session clock.
func (s *Session) Now() time.Time { return s.now() }
