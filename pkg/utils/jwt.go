package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTClaims represents the claims in an access token.
// BarbershopID is nil for platform staff that are not bound to a barbershop.
type JWTClaims struct {
	UserID       uuid.UUID  `json:"user_id"`
	Email        string     `json:"email"`
	BarbershopID *uuid.UUID `json:"barbershop_id,omitempty"`
	Roles        []string   `json:"roles"`
	Permissions  []string   `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenSubject describes who a token is issued to
type TokenSubject struct {
	UserID       uuid.UUID
	Email        string
	BarbershopID *uuid.UUID
	Roles        []string
	Permissions  []string
}

// JWTManager validates access tokens signed by the identity provider with a shared HS256 secret
type JWTManager struct {
	secretKey         []byte
	issuer            string
	accessTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret, issuer string, accessExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:         []byte(secret),
		issuer:            issuer,
		accessTokenExpiry: accessExpiry,
	}
}

// GenerateAccessToken signs a token for subject. Used by the dev token tool and tests.
func (m *JWTManager) GenerateAccessToken(subject TokenSubject) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:       subject.UserID,
		Email:        subject.Email,
		BarbershopID: subject.BarbershopID,
		Roles:        subject.Roles,
		Permissions:  subject.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   subject.UserID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateAccessToken validates an access token and returns the claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	var opts []jwt.ParserOption
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.UserID == uuid.Nil {
		return nil, errors.New("invalid user ID in token")
	}

	return claims, nil
}

// HasRole reports whether the claims carry role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
