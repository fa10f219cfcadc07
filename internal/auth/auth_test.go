// Filmatlas - Personal Movie Tracking and Recommendations
// Copyright 2026 The Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/filmatlas/filmatlas/internal/config"
)

func testManager(t *testing.T, timeout time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		SessionTimeout: timeout,
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Fatal("NewJWTManager with empty secret should fail")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager(t, time.Hour)

	token, err := m.GenerateToken(42, "filmfan")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "filmfan" {
		t.Errorf("claims = %d/%s, want 42/filmfan", claims.UserID, claims.Username)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	m := testManager(t, -time.Minute)
	token, err := m.GenerateToken(1, "old")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("ValidateToken should reject an expired token")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	m := testManager(t, time.Hour)
	token, err := m.GenerateToken(1, "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "ffffffffffffffffffffffffffffffff",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("ValidateToken should reject a token signed with another secret")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	m := testManager(t, time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.ValidateToken(tok); err == nil {
			t.Errorf("ValidateToken(%q) should fail", tok)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword(hash, "correct-horse")
	if err != nil || !ok {
		t.Errorf("VerifyPassword(correct) = %v, %v, want true, nil", ok, err)
	}

	ok, err = VerifyPassword(hash, "wrong-horse")
	if err != nil || ok {
		t.Errorf("VerifyPassword(wrong) = %v, %v, want false, nil", ok, err)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("x", 100), 4); err == nil {
		t.Fatal("HashPassword should reject passwords over 72 bytes")
	}
}

func TestVerifyPassword_CorruptHash(t *testing.T) {
	if _, err := VerifyPassword("not-a-bcrypt-hash", "pw"); err == nil {
		t.Fatal("VerifyPassword with a corrupt hash should error")
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	m := testManager(t, time.Hour)
	token, err := m.GenerateToken(7, "viewer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotClaims *Claims
	handler := Authenticate(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "tampered token", authHeader: "Bearer " + token + "x", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotClaims == nil || gotClaims.UserID != 7 {
					t.Errorf("claims in context = %+v, want UserID 7", gotClaims)
				}
			}
		})
	}
}

func TestClaimsFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if claims := ClaimsFromContext(req.Context()); claims != nil {
		t.Errorf("ClaimsFromContext() = %+v, want nil", claims)
	}
}
