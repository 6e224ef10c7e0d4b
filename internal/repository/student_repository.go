package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campus-webapps/internal/model"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("create student failed: %w", err)
	}
	return nil
}

func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("list students failed: %w", err)
	}
	return students, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student failed: %w", err)
	}
	return &student, nil
}

// Update overwrites name, age and course. Zero values are written too, so the
// update is driven by a column map rather than the struct. A missing id is
// not an error.
func (r *StudentRepository) Update(ctx context.Context, id uint, name string, age int, course string) error {
	err := r.db.WithContext(ctx).Model(&model.Student{}).Where("id = ?", id).Updates(map[string]any{
		"name":   name,
		"age":    age,
		"course": course,
	}).Error
	if err != nil {
		return fmt.Errorf("update student failed: %w", err)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Student{}, id).Error; err != nil {
		return fmt.Errorf("delete student failed: %w", err)
	}
	return nil
}
