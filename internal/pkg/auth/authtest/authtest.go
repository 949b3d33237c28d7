// Package authtest signs bearer tokens shaped like the ones the account service
// issues, for tests that exercise authenticated routes.
package authtest

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the identity carried in a signed token
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
}

// Token returns an HS256 token for user. A negative ttl yields an already expired token.
func Token(t testing.TB, secret, issuer string, ttl time.Duration, user User) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"userId":    user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"iss":       issuer,
		"sub":       strconv.FormatInt(user.ID, 10),
		"jti":       uuid.NewString(),
		"iat":       jwt.NewNumericDate(now),
		"exp":       jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
