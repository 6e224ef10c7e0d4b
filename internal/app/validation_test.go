package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	cases := []struct {
		name  string
		input RegisterInput
		want  FieldErrors
	}{
		{name: "ok", input: RegisterInput{Username: "alice", Password: "secret1"}},
		{name: "exactly six", input: RegisterInput{Username: "alice", Password: "123456"}},
		{
			name:  "both missing",
			input: RegisterInput{},
			want: FieldErrors{
				FieldUsername: "Username is required",
				FieldPassword: "Password is required",
			},
		},
		{
			name:  "blank username",
			input: RegisterInput{Username: "   ", Password: "secret1"},
			want:  FieldErrors{FieldUsername: "Username is required"},
		},
		{
			name:  "blank password",
			input: RegisterInput{Username: "alice", Password: "      "},
			want:  FieldErrors{FieldPassword: "Password is required"},
		},
		{
			name:  "short password",
			input: RegisterInput{Username: "alice", Password: "abc12"},
			want:  FieldErrors{FieldPassword: "Password must be at least 6 characters"},
		},
		{
			name:  "too long password",
			input: RegisterInput{Username: "alice", Password: strings.Repeat("x", 73)},
			want:  FieldErrors{FieldPassword: "Password must be at most 72 bytes"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateRegister(tc.input))
		})
	}
}

func TestValidateLogin_FirstMissingFieldOnly(t *testing.T) {
	assert.Equal(t, FieldErrors{FieldUsername: "Username is required"}, ValidateLogin(LoginInput{}))
	assert.Equal(t, FieldErrors{FieldPassword: "Password is required"}, ValidateLogin(LoginInput{Username: "alice"}))
	assert.Nil(t, ValidateLogin(LoginInput{Username: "alice", Password: "x"}))
}

func TestValidateStudent(t *testing.T) {
	fields, errs := ValidateStudent(StudentInput{Name: " Bo ", Age: "20", Course: "CS"})
	assert.Nil(t, errs)
	assert.Equal(t, StudentFields{Name: "Bo", Age: 20, Course: "CS"}, fields)

	_, errs = ValidateStudent(StudentInput{})
	assert.Equal(t, FieldErrors{
		FieldName:   "Name is required",
		FieldAge:    "Age is required",
		FieldCourse: "Course is required",
	}, errs)

	_, errs = ValidateStudent(StudentInput{Name: "Bo", Age: "twenty", Course: "CS"})
	assert.Equal(t, FieldErrors{FieldAge: "Age must be a number"}, errs)

	_, errs = ValidateStudent(StudentInput{Name: "Bo", Age: "-1", Course: "CS"})
	assert.Equal(t, FieldErrors{FieldAge: "Age must not be negative"}, errs)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: FieldErrors{FieldPassword: "x", FieldUsername: "y"}}
	assert.Equal(t, "invalid input: password, username", err.Error())
	assert.True(t, err.Fields.Has(FieldPassword))
	assert.False(t, err.Fields.Has(FieldGeneral))
}
