package model

import "time"

type AuthEventKind string

const (
	AuthEventRegister    AuthEventKind = "register"
	AuthEventLogin       AuthEventKind = "login"
	AuthEventLoginFailed AuthEventKind = "login_failed"
	AuthEventLogout      AuthEventKind = "logout"
)

// AuthEvent is an audit record of an authentication action. UserID is 0 when
// the action did not resolve to a user (failed login, anonymous logout).
type AuthEvent struct {
	ID        uint          `gorm:"primaryKey" json:"-"`
	EventID   string        `gorm:"size:36;not null;uniqueIndex" json:"event_id"`
	Kind      AuthEventKind `gorm:"size:32;not null;index" json:"kind"`
	UserID    uint          `gorm:"index" json:"user_id"`
	Username  string        `gorm:"size:64" json:"username"`
	CreatedAt time.Time     `json:"created_at"`
}
