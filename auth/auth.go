// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrEmptyPassword  = errors.New("admin password must not be empty")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// sessionMAC returns the URL-safe HMAC of a session id
func sessionMAC(sid, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(sid))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SignSessionID produces the cookie value "<sid>.<mac>"
func SignSessionID(sid, secret string) string {
	return sid + "." + sessionMAC(sid, secret)
}

// VerifySessionID checks a cookie value and returns the embedded session id
func VerifySessionID(value, secret string) (string, error) {
	sid, mac, ok := strings.Cut(value, ".")
	if !ok || sid == "" || mac == "" {
		return "", ErrInvalidSession
	}
	expected := sessionMAC(sid, secret)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return "", ErrInvalidSession
	}
	return sid, nil
}

// Credentials is the single shared admin login. The password is hashed once
// at startup; the plaintext is not retained.
type Credentials struct {
	username string
	hash     []byte
}

// NewCredentials hashes password with bcrypt at the given cost.
// Pass bcrypt.DefaultCost outside of tests.
func NewCredentials(username, password string, cost int) (Credentials, error) {
	if password == "" {
		return Credentials{}, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return Credentials{username: username, hash: hash}, nil
}

// Verify reports whether username and password match. The bcrypt comparison
// always runs so an unknown username takes as long as a bad password.
func (c Credentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}
