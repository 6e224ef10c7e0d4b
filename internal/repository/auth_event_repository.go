package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campus-webapps/internal/model"
)

type AuthEventRepository struct {
	db *gorm.DB
}

func NewAuthEventRepository(db *gorm.DB) *AuthEventRepository {
	return &AuthEventRepository{db: db}
}

func (r *AuthEventRepository) Create(ctx context.Context, event *model.AuthEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create auth event failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("create auth event failed: %w", err)
	}
	return nil
}
