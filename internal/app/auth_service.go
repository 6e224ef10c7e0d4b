package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-webapps/internal/model"
	"campus-webapps/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// EventPublisher delivers auth events to the audit pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, event model.AuthEvent) error
}

type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// NewAuthService builds the service. events may be nil to disable auditing.
func NewAuthService(users UserStore, hasher *PasswordHasher, events EventPublisher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if fields := ValidateRegister(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	username := strings.TrimSpace(input.Username)

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, storeFailure(err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// the unique index catches registrations racing past the lookup
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameExists
		}
		return nil, storeFailure(err)
	}

	s.publish(ctx, model.AuthEventRegister, user.ID, user.Username)
	return user, nil
}

// Login never tells an unknown username apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*model.User, error) {
	if fields := ValidateLogin(input); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}
	username := strings.TrimSpace(input.Username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, storeFailure(err)
	}
	if user == nil {
		s.publish(ctx, model.AuthEventLoginFailed, 0, username)
		return nil, ErrInvalidCredential
	}

	ok, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, storeFailure(fmt.Errorf("user %d: %w", user.ID, err))
	}
	if !ok {
		s.publish(ctx, model.AuthEventLoginFailed, user.ID, username)
		return nil, ErrInvalidCredential
	}

	s.publish(ctx, model.AuthEventLogin, user.ID, user.Username)
	return user, nil
}

// RecordLogout audits a logout. userID is 0 for an anonymous session.
func (s *AuthService) RecordLogout(ctx context.Context, userID uint) {
	s.publish(ctx, model.AuthEventLogout, userID, "")
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return users, nil
}

func (s *AuthService) publish(ctx context.Context, kind model.AuthEventKind, userID uint, username string) {
	if s.events == nil {
		return
	}
	event := model.AuthEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		UserID:    userID,
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish auth event failed",
			"kind", kind, "event_id", event.EventID, "error", err)
	}
}
