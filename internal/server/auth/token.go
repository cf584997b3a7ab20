// Package auth implements the two credential primitives of the service:
// one-way password hashing and signed bearer tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dev-th/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims — the statement set carried inside an issued token: the registered
// claims (subject holds the user id) plus the subject's username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenCodec issues and verifies compact bearer tokens proving a prior
// successful authentication. Implementations perform no I/O.
type TokenCodec interface {
	Issue(userID string, username string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// JWTCodec signs HS256 JWTs with a process-wide secret key. The key is
// immutable after construction, so Verify is safe for concurrent use.
type JWTCodec struct {
	secretKey []byte
	validity  time.Duration
}

func NewJWTCodec(secretKey []byte, validity time.Duration) *JWTCodec {
	return &JWTCodec{secretKey: secretKey, validity: validity}
}

func (c *JWTCodec) Issue(userID string, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks structure, signature and expiry. On rejection the returned
// error is exactly one of common.ErrTokenMalformed,
// common.ErrTokenBadSignature or common.ErrTokenExpired.
func (c *JWTCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenBadSignature
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}
