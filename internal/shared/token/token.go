// Package token issues and verifies the HS256 JWTs carried by API clients.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrExpired   = errors.New("token expired")
	ErrInvalid   = errors.New("token invalid")
	ErrWrongType = errors.New("token type mismatch")
)

type Claims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"`
	Name       string `json:"name,omitempty"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// Subject is the identity a token is issued for.
type Subject struct {
	UserID     string
	EmployeeID string
	Role       string
	Name       string
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func (m *Manager) IssueAccess(sub Subject) (string, error) {
	return m.issue(sub, TypeAccess, m.accessTTL)
}

func (m *Manager) IssueRefresh(sub Subject) (string, error) {
	return m.issue(sub, TypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(sub Subject, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:     sub.UserID,
		EmployeeID: sub.EmployeeID,
		Role:       sub.Role,
		Name:       sub.Name,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and the expected token type.
func (m *Manager) Parse(raw, wantType string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid || claims.UserID == "" {
		return nil, ErrInvalid
	}
	if wantType != "" && claims.TokenType != wantType {
		return nil, ErrWrongType
	}
	return claims, nil
}
