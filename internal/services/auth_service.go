package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transport-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	tokenTTL  = 24 * time.Hour
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService issues and verifies admin tokens against one configured account.
type AuthService struct {
	Secret       []byte
	Username     string
	PasswordHash string
	Now          func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Enabled reports whether admin auth is configured.
func (s AuthService) Enabled() bool {
	return len(s.Secret) > 0
}

// Login checks the credentials and returns a signed HS256 token.
func (s AuthService) Login(username, password string) (string, time.Time, error) {
	if !s.Enabled() || s.PasswordHash == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if strings.TrimSpace(username) != s.Username {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	exp := s.now().Add(tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  s.Username,
		"role": RoleAdmin,
		"exp":  exp.Unix(),
		"iat":  s.now().Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses a bearer token and returns its subject and role.
func (s AuthService) Verify(raw string) (domain.RequestContext, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.RequestContext{}, err
	}

	sub, _ := claims.GetSubject()
	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		return domain.RequestContext{}, fmt.Errorf("role %q is not allowed", role)
	}
	return domain.RequestContext{Subject: sub, Role: role}, nil
}
