// Package jwttoken signs and verifies HS256 JSON Web Tokens.
package jwttoken

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"
	"time"

	"logistics/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the minimum secret size in bytes, after base64 decoding.
const MinSecretLength = 32

// Base64SecretPrefix marks a secret given as standard base64. Anything else is used
// as raw bytes.
const Base64SecretPrefix = "base64:"

const keyInfo = "logistics/jwt/hs256"

var ErrClaimNotPresent = errors.New("claim not present")

// Issuer implements ports.TokenIssuer.
//
// The signing key is derived with HKDF-SHA256 from the configured secret. A secret
// written as "base64:<payload>" is decoded first, so it produces the same key as its
// raw bytes.
type Issuer struct {
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

func NewIssuer(secret string) (*Issuer, error) {
	return NewIssuerWithClock(secret, time.Now)
}

// NewIssuerWithClock uses now for iat/exp when issuing and for expiry checks.
func NewIssuerWithClock(secret string, now func() time.Time) (*Issuer, error) {
	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}

	i := &Issuer{key: key, now: now}
	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	return i, nil
}

func deriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errs.NewValueIsRequiredError("jwt secret")
	}

	raw := []byte(secret)
	if payload, ok := strings.CutPrefix(secret, Base64SecretPrefix); ok {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("jwt secret", err)
		}
		raw = decoded
	}
	if len(raw) < MinSecretLength {
		return nil, errs.NewValueIsOutOfRangeError("jwt secret length", len(raw), MinSecretLength, "unbounded")
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, raw, nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive jwt key: %w", err)
	}
	return key, nil
}

// Issue signs a token for subject. Reserved claims (sub, iat, exp) override entries
// of the same name in claims.
func (i *Issuer) Issue(subject string, claims map[string]any, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errs.NewValueIsRequiredError("subject")
	}
	if ttl <= 0 {
		return "", errs.NewValueIsInvalidError("token ttl must be positive")
	}

	now := i.now()
	mapClaims := jwt.MapClaims{}
	maps.Copy(mapClaims, claims)
	mapClaims["sub"] = subject
	mapClaims["iat"] = jwt.NewNumericDate(now)
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(i.key)
}

func (i *Issuer) Verify(token, expectedSubject string) bool {
	subject, ok := i.Subject(token)
	return ok && subject == expectedSubject
}

func (i *Issuer) Subject(token string) (string, bool) {
	claims, ok := i.parse(token)
	if !ok {
		return "", false
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", false
	}
	return subject, true
}

// ExtractClaim returns ErrUnauthorized for tokens that do not verify and
// ErrClaimNotPresent for missing claims.
func (i *Issuer) ExtractClaim(token, name string) (any, error) {
	claims, ok := i.parse(token)
	if !ok {
		return nil, errs.NewUnauthorizedError("invalid token")
	}

	value, present := claims[name]
	if !present {
		return nil, fmt.Errorf("%w: %s", ErrClaimNotPresent, name)
	}
	return value, nil
}

// ExpiresAt reads exp without checking the signature.
func (i *Issuer) ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (i *Issuer) parse(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	parsed, err := i.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
