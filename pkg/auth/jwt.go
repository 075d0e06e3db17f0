package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour

	typeAccess  = "access"
	typeRefresh = "refresh"
)

var (
	// ErrMissingToken is returned when no credential was supplied.
	ErrMissingToken = errors.New("auth: missing token")
	// ErrInvalidToken covers bad signatures, expiry and wrong token type.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Verifier validates a bearer credential and yields its subject.
type Verifier interface {
	Verify(token string) (subject string, err error)
}

// Claims holds the typed JWT payload. The subject is the username.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 tokens.
type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

// GenerateToken creates a signed access token for subject.
func (j *JWT) GenerateToken(subject string) (string, error) {
	return j.sign(subject, typeAccess, AccessTTL)
}

// GenerateRefreshToken creates a longer-lived token used to refresh access.
func (j *JWT) GenerateRefreshToken(subject string) (string, error) {
	return j.sign(subject, typeRefresh, RefreshTTL)
}

// Verify accepts access tokens only.
func (j *JWT) Verify(token string) (string, error) {
	return j.verify(token, typeAccess)
}

// VerifyRefresh accepts refresh tokens only.
func (j *JWT) VerifyRefresh(token string) (string, error) {
	return j.verify(token, typeRefresh)
}

func (j *JWT) sign(subject, typ string, ttl time.Duration) (string, error) {
	now := j.now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func (j *JWT) verify(raw, typ string) (string, error) {
	if raw == "" {
		return "", ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type != typ || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
