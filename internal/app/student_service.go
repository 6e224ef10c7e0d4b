package app

import (
	"context"

	"campus-webapps/internal/model"
)

type StudentStore interface {
	Create(ctx context.Context, student *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	Update(ctx context.Context, id uint, name string, age int, course string) error
	Delete(ctx context.Context, id uint) error
}

// StudentInput is the raw form submission.
type StudentInput struct {
	Name   string
	Age    string
	Course string
}

// StudentFields is a validated StudentInput.
type StudentFields struct {
	Name   string
	Age    int
	Course string
}

type StudentService struct {
	students StudentStore
}

func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return students, nil
}

func (s *StudentService) Create(ctx context.Context, input StudentInput) (*model.Student, error) {
	fields, errs := ValidateStudent(input)
	if errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	student := &model.Student{
		Name:   fields.Name,
		Age:    fields.Age,
		Course: fields.Course,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, storeFailure(err)
	}
	return student, nil
}

// Get returns (nil, nil) when no student has the id.
func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return student, nil
}

// Update overwrites all fields. Updating a missing id is a no-op.
func (s *StudentService) Update(ctx context.Context, id uint, input StudentInput) error {
	fields, errs := ValidateStudent(input)
	if errs != nil {
		return &ValidationError{Fields: errs}
	}
	if err := s.students.Update(ctx, id, fields.Name, fields.Age, fields.Course); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		return storeFailure(err)
	}
	return nil
}
