package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"campus-webapps/internal/model"
	"campus-webapps/internal/repository"
)

type memUsers struct {
	mu     sync.Mutex
	byID   map[uint]*model.User
	nextID uint
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uint]*model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.byID {
		if u.Username == user.Username {
			return fmt.Errorf("create user failed: %w", repository.ErrDuplicate)
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.byID[user.ID] = &stored
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (m *memUsers) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.User, 0, len(m.byID))
	for id := uint(1); id <= m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) count(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.byID {
		if u.Username == username {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.AuthEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event model.AuthEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) kinds() []model.AuthEventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.AuthEventKind, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestAuthService() (*AuthService, *memUsers, *recordingPublisher) {
	users := newMemUsers()
	events := &recordingPublisher{}
	return NewAuthService(users, NewPasswordHasher(bcrypt.MinCost), events, nil), users, events
}
