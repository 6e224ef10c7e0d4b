// Package view renders server-side HTML pages. Handlers build one of the page
// payloads below and hand it to a Renderer by template name.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"campus-webapps/internal/model"
)

const (
	PageRegister    = "register.html"
	PageLogin       = "login.html"
	PageWelcome     = "welcome.html"
	PageStudents    = "students.html"
	PageStudent     = "student.html"
	PageStudentEdit = "student_edit.html"
)

type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type AuthValues struct {
	Username string
}

type RegisterPage struct {
	Errors    map[string]string
	Values    AuthValues
	LoginPath string
}

type LoginPage struct {
	Error        string
	Values       AuthValues
	RegisterPath string
}

type WelcomePage struct {
	Username   string
	LogoutPath string
}

type StudentValues struct {
	Name   string
	Age    string
	Course string
}

type StudentsPage struct {
	Students []model.Student
	Errors   map[string]string
	Values   StudentValues
}

// StudentPage backs both the detail and the edit page. Student is nil when
// the id did not resolve.
type StudentPage struct {
	Student *model.Student
	Errors  map[string]string
	Values  StudentValues
}

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	set *template.Template
}

func NewTemplates() (*Templates, error) {
	set, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates failed: %w", err)
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Render(w io.Writer, name string, data any) error {
	if err := t.set.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s failed: %w", name, err)
	}
	return nil
}
