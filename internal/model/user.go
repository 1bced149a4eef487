package model

import "time"

// User roles.
const (
	UserTypeAdmin    = "admin"
	UserTypeSalesman = "salesman"
)

// User is an application account. Users live in users.json as a mapping of
// username → User (the only dict-typed collection besides settings).
type User struct {
	PasswordHash string    `json:"password_hash"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidUserType reports whether t is a known role.
func ValidUserType(t string) bool {
	return t == UserTypeAdmin || t == UserTypeSalesman
}
