package app

import (
	"strconv"
	"strings"
)

const (
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes
	MaxPasswordLength = 72
)

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldGeneral  = "general"
	FieldName     = "name"
	FieldAge      = "age"
	FieldCourse   = "course"
)

// ValidateRegister returns nil when the input can be registered.
func ValidateRegister(input RegisterInput) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(input.Username) == "" {
		errs[FieldUsername] = "Username is required"
	}

	if strings.TrimSpace(input.Password) == "" {
		errs[FieldPassword] = "Password is required"
	} else if len(input.Password) < MinPasswordLength {
		errs[FieldPassword] = "Password must be at least 6 characters"
	} else if len(input.Password) > MaxPasswordLength {
		errs[FieldPassword] = "Password must be at most 72 bytes"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLogin reports only the first missing field, username before password.
func ValidateLogin(input LoginInput) FieldErrors {
	if strings.TrimSpace(input.Username) == "" {
		return FieldErrors{FieldUsername: "Username is required"}
	}
	if input.Password == "" {
		return FieldErrors{FieldPassword: "Password is required"}
	}
	return nil
}

// ValidateStudent checks presence of every field and parses the age.
func ValidateStudent(input StudentInput) (StudentFields, FieldErrors) {
	errs := FieldErrors{}
	fields := StudentFields{
		Name:   strings.TrimSpace(input.Name),
		Course: strings.TrimSpace(input.Course),
	}

	if fields.Name == "" {
		errs[FieldName] = "Name is required"
	}

	rawAge := strings.TrimSpace(input.Age)
	if rawAge == "" {
		errs[FieldAge] = "Age is required"
	} else if age, err := strconv.Atoi(rawAge); err != nil {
		errs[FieldAge] = "Age must be a number"
	} else if age < 0 {
		errs[FieldAge] = "Age must not be negative"
	} else {
		fields.Age = age
	}

	if fields.Course == "" {
		errs[FieldCourse] = "Course is required"
	}

	if len(errs) == 0 {
		return fields, nil
	}
	return fields, errs
}
