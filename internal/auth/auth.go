// Package auth issues and verifies the bearer tokens of company admins.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const issuerName = "feedback-board"

var ErrInvalidToken = errors.New("invalid token")

// Claims identify an admin and the company they act for.
type Claims struct {
	UserID    string `json:"sub"`
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	CompanyID string `json:"companyId"`
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a HS256 token for user.
func (i *Issuer) Sign(user *models.User) (string, error) {
	now := i.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerName,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email:     user.Email,
		CompanyID: user.CompanyID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, issuer and expiry of raw.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.CompanyID == "" {
		return nil, fmt.Errorf("%w: missing subject or company", ErrInvalidToken)
	}
	return &Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		CompanyID: claims.CompanyID,
	}, nil
}
