// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"32 bytes", 32, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestSignSessionID(t *testing.T) {
	signed := SignSessionID("abc123", "secret")

	if !strings.HasPrefix(signed, "abc123.") {
		t.Errorf("SignSessionID() = %q, want sid prefix", signed)
	}
	// Deterministic
	if signed != SignSessionID("abc123", "secret") {
		t.Error("SignSessionID() should be deterministic")
	}
	// URL-safe, no padding
	if strings.ContainsAny(signed, "+/=") {
		t.Errorf("SignSessionID() contains non URL-safe chars: %q", signed)
	}
}

func TestVerifySessionID(t *testing.T) {
	valid := SignSessionID("sid-1", "secret")
	_, mac, _ := strings.Cut(valid, ".")

	tests := []struct {
		name    string
		value   string
		secret  string
		wantSID string
		wantErr bool
	}{
		{"valid", valid, "secret", "sid-1", false},
		{"wrong secret", valid, "other", "", true},
		{"tampered sid", "sid-2." + mac, "secret", "", true},
		{"missing mac", "sid-1", "secret", "", true},
		{"empty mac", "sid-1.", "secret", "", true},
		{"empty sid", "." + mac, "secret", "", true},
		{"empty", "", "secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sid, err := VerifySessionID(tt.value, tt.secret)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSession) {
					t.Errorf("VerifySessionID() error = %v, want ErrInvalidSession", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifySessionID() unexpected error = %v", err)
			}
			if sid != tt.wantSID {
				t.Errorf("VerifySessionID() = %q, want %q", sid, tt.wantSID)
			}
		})
	}
}

func TestCredentialsVerify(t *testing.T) {
	creds, err := NewCredentials("admin", "changeme", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"correct", "admin", "changeme", true},
		{"wrong password", "admin", "nope", false},
		{"unknown username", "root", "changeme", false},
		{"both wrong", "root", "nope", false},
		{"username case differs", "Admin", "changeme", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creds.Verify(tt.username, tt.password); got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}

func TestNewCredentials_EmptyPassword(t *testing.T) {
	if _, err := NewCredentials("admin", "", bcrypt.MinCost); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("NewCredentials() error = %v, want ErrEmptyPassword", err)
	}
}

func TestNewCredentials_DoesNotKeepPlaintext(t *testing.T) {
	creds, err := NewCredentials("admin", "plain-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(creds.hash), "plain-secret") {
		t.Error("hash should not contain the plaintext password")
	}
}
