// Package auth issues and verifies the admin session tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
)

// TokenTTL is the fixed lifetime of an admin token.
const TokenTTL = 24 * time.Hour

// Gate checks the single configured admin account and signs HS256 tokens.
type Gate struct {
	secret       []byte
	username     string
	password     string
	passwordHash string

	now func() time.Time
}

var _ models.CredentialGate = (*Gate)(nil)

// NewGate builds a gate. When passwordHash is set it takes precedence over
// the plain password and is compared with bcrypt.
func NewGate(secret, username, password, passwordHash string) *Gate {
	return &Gate{
		secret:       []byte(secret),
		username:     username,
		password:     password,
		passwordHash: passwordHash,
		now:          time.Now,
	}
}

func (g *Gate) checkPassword(password string) bool {
	if g.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
}

func (g *Gate) Login(username, password string) (*models.AdminToken, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := g.checkPassword(password)
	if !userOK || !passOK || g.username == "" {
		return nil, errs.ErrInvalidCredentials
	}

	now := g.now().UTC()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.AdminToken{Token: signed, ExpiresAt: time.Unix(exp.Unix(), 0).UTC()}, nil
}

func (g *Gate) Verify(token string) (*models.AdminClaims, error) {
	if token == "" {
		return nil, errs.ErrUnauthenticated
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errs.ErrTokenMalformed
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return nil, fmt.Errorf("%w: missing username claim", errs.ErrTokenMalformed)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errs.ErrTokenMalformed
	}
	return &models.AdminClaims{Username: username, ExpiresAt: exp.Time.UTC()}, nil
}
