package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of every session token.
const TokenTTL = 30 * 24 * time.Hour

const userTypeTeacher = "teacher"

var (
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMalformedToken   = errors.New("token is malformed")
)

// Delegate holds what a teacher typed at login. It travels in the token for
// display and is never an input to an authorization decision.
type Delegate struct {
	TeacherName  string `json:"teacherName,omitempty"`
	TeacherPhone string `json:"teacherPhone,omitempty"`
}

// Claims is the signed payload of a session token. UserID always names the
// account whose data the token unlocks; for teacher sessions that is the
// parent account.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType string `json:"userType,omitempty"`
	Delegate
	jwt.RegisteredClaims
}

func (c *Claims) IsTeacher() bool { return c.UserType == userTypeTeacher }

// Identity converts verified claims into the request identity.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:   c.UserID,
		Email:    c.Email,
		Teacher:  c.IsTeacher(),
		Delegate: c.Delegate,
	}
}

// PrimaryClaims builds the claim set for an account's own session.
func PrimaryClaims(userID, email string) Claims {
	return Claims{UserID: userID, Email: email}
}

// TeacherClaims builds the claim set for a delegated teacher session on the
// parent account.
func TeacherClaims(parentID, parentEmail string, d Delegate) Claims {
	return Claims{
		UserID:   parentID,
		Email:    parentEmail,
		UserType: userTypeTeacher,
		Delegate: d,
	}
}

// Tokens issues and verifies HS256 session tokens with one process-wide
// secret.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue stamps iat, exp and a random jti onto c and signs it.
func (t *Tokens) Issue(c Claims) (string, error) {
	now := t.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	c.ID = uuid.NewString()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &c).SignedString(t.secret)
}

// Verify checks the signature and expiry of token and returns its claims.
func (t *Tokens) Verify(token string) (*Claims, error) {
	claims := new(Claims)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrMalformedToken
	}
}
