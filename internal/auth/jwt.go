package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"meetingsManagement/models"
)

// ErrInvalidToken is returned for access tokens that fail verification.
var ErrInvalidToken = errors.New("invalid access token")

// accessClaims mirrors the claims issued by the hosted auth service.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens signed with the project JWT secret
// and turns them into sessions.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify validates tokenStr and returns the session it carries.
func (v *Verifier) Verify(tokenStr string) (*models.Session, error) {
	if len(v.secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}
	c := &accessClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, c, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("token not valid")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(c.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	s := &models.Session{
		AccessToken: tokenStr,
		User:        models.SessionUser{ID: c.Subject, Email: c.Email},
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

// CurrentSession returns the session for the access token carried by ctx.
// A missing or invalid token yields no session and no error.
func (v *Verifier) CurrentSession(ctx context.Context) (*models.Session, error) {
	tok, ok := AccessTokenFromContext(ctx)
	if !ok {
		return nil, nil
	}
	s, err := v.Verify(tok)
	if errors.Is(err, ErrInvalidToken) {
		return nil, nil
	}
	return s, err
}

// Sign issues an access token for userID. It is used by the local backend and tests.
func (v *Verifier) Sign(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
