package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-webapps/internal/pkg/jwtutil"
)

type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Resolve maps a cookie token to a session. Missing, tampered and expired
// tokens yield an anonymous session with a nil error. A store failure also
// yields an anonymous session, together with the error.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return &Session{}, nil
	}
	claims, err := jwtutil.ParseToken(m.secret, token)
	if err != nil {
		return &Session{}, nil
	}

	state, err := m.store.Load(ctx, claims.SessionID)
	if err != nil {
		return &Session{}, fmt.Errorf("load session failed: %w", err)
	}
	if state == nil {
		return &Session{}, nil
	}
	return &Session{ID: claims.SessionID, State: *state}, nil
}

// Authenticate binds userID to a freshly generated session id and returns the
// new session with its cookie token. The previous record, if any, is dropped.
func (m *Manager) Authenticate(ctx context.Context, current *Session, userID uint) (*Session, string, error) {
	if userID == 0 {
		return nil, "", errors.New("authenticate session: empty user id")
	}

	id, err := NewID()
	if err != nil {
		return nil, "", err
	}
	state := State{UserID: userID, CreatedAt: m.now().UTC()}
	if err := m.store.Save(ctx, id, state, m.ttl); err != nil {
		return nil, "", fmt.Errorf("save session failed: %w", err)
	}

	token, err := jwtutil.GenerateToken(m.secret, m.ttl, id)
	if err != nil {
		_ = m.store.Delete(ctx, id)
		return nil, "", err
	}

	if current != nil && current.ID != "" && current.ID != id {
		// the new session is already usable; a stale record just expires
		_ = m.store.Delete(ctx, current.ID)
	}
	return &Session{ID: id, State: state}, token, nil
}

// Destroy removes the session record. Destroying an anonymous or already
// destroyed session succeeds.
func (m *Manager) Destroy(ctx context.Context, current *Session) error {
	if current == nil || current.ID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("destroy session failed: %w", err)
	}
	return nil
}
