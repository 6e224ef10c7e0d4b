// Package session keeps per-client login state keyed by an opaque id. The id
// travels in a signed cookie; the state lives in a Store.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const idSize = 16

// State is the persisted part of a session. UserID 0 means anonymous.
type State struct {
	UserID    uint      `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	// ID is empty for an anonymous session that was never persisted.
	ID    string
	State State
}

func (s *Session) Authenticated() bool {
	return s != nil && s.State.UserID != 0
}

func (s *Session) UserID() (uint, bool) {
	if !s.Authenticated() {
		return 0, false
	}
	return s.State.UserID, true
}

// Store persists session state. Load returns (nil, nil) for unknown or
// expired ids and Delete of an unknown id is not an error.
type Store interface {
	Load(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, state State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

func NewID() (string, error) {
	var raw [idSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("generate session id failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
