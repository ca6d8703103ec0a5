package auth

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrPasswordTooShort   = errors.New("password too short")
)

const MinPasswordLen = 6

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID       string
	Username string
	Hash     []byte
	Role     Role
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizePassword(s string) string {
	return strings.TrimSpace(s)
}
