package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the capability carried by a session token. Only two exist.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "company_session"

// LoginPath is where unauthenticated requests are redirected.
const LoginPath = "/login"

// RolePolicy maps gated route patterns to the minimum role they require.
// Routes absent from the table only need an authenticated session. The table
// is the single source of authorization decisions; handlers never compare
// roles themselves.
var RolePolicy = map[string]Role{
	"/project/{id}":       RoleAdmin,
	"/employee/{ssn}":     RoleAdmin,
	"/import_dependents":  RoleAdmin,
}

// Credentials is the app_user record consulted at login.
type Credentials struct {
	UserID       int64
	Username     string
	PasswordHash string
	Role         string
}

// Claims are the verified contents of a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator signs and verifies session tokens.
type TokenGenerator interface {
	Generate(userID int64, role string) (token string, expiresAt time.Time, err error)
	Validate(tokenString string) (*Claims, error)
}

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)
