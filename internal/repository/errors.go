package repository

import "errors"

// ErrDuplicate is returned when a write violates a unique index. It requires
// the gorm.DB to be opened with TranslateError enabled.
var ErrDuplicate = errors.New("duplicate record")
