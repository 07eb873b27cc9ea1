package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/company-portal/internal"
)

// CredentialRepository looks up the stored credential record for a username.
type CredentialRepository interface {
	GetCredentials(username string) (*Credentials, error)
}

// Service performs authentication. Authorization is decided by the gates in
// handler.go against RolePolicy, never here.
type Service struct {
	credRepo CredentialRepository
	tokens   TokenGenerator
}

func NewService(credRepo CredentialRepository, tokens TokenGenerator) *Service {
	return &Service{
		credRepo: credRepo,
		tokens:   tokens,
	}
}

// Authenticate verifies the password against the stored bcrypt hash and
// returns a signed session token. Unknown usernames and wrong passwords both
// map to internal.ErrInvalidCredentials so a caller cannot tell them apart.
func (s *Service) Authenticate(dto LoginDTO) (string, time.Time, error) {
	if err := dto.Validate(); err != nil {
		return "", time.Time{}, err
	}

	creds, err := s.credRepo.GetCredentials(dto.Username)
	if err != nil {
		return "", time.Time{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return "", time.Time{}, internal.ErrInvalidCredentials
	}

	return s.tokens.Generate(creds.UserID, creds.Role)
}

// ValidateSession verifies a session token and returns the principal.
func (s *Service) ValidateSession(tokenString string) (*internal.Session, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, ErrInvalidSession
	}

	return &internal.Session{UserID: userID, Role: claims.Role}, nil
}

// JWTSessionTokens signs session claims with HMAC, the same signing scheme
// used for API tokens elsewhere in the stack.
type JWTSessionTokens struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTSessionTokens(secret string, ttl time.Duration) *JWTSessionTokens {
	return &JWTSessionTokens{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (j *JWTSessionTokens) Generate(userID int64, role string) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.TTL)

	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTSessionTokens) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidSession
}

// HashPassword creates a bcrypt hash, used by the seeder.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
