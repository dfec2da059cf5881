package auth

import (
	"testing"
	"time"
)

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New("", time.Hour, 24*time.Hour); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	a, err := New("test-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	access, refresh, err := a.GenTokens(42, RoleManager)
	if err != nil {
		t.Fatalf("GenTokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if access == refresh {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := a.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserId != 42 {
		t.Errorf("UserId = %d, want 42", claims.UserId)
	}
	if claims.Role != RoleManager {
		t.Errorf("Role = %q, want %q", claims.Role, RoleManager)
	}
	if claims.Type != "access" {
		t.Errorf("Type = %q, want %q", claims.Type, "access")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	a, err := New("secret-a", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, err := New("secret-b", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	access, _, err := a.GenTokens(1, RoleEmployee)
	if err != nil {
		t.Fatalf("GenTokens: %v", err)
	}

	if _, err := b.ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	a, err := New("test-secret", -time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	access, _, err := a.GenTokens(1, RoleEmployee)
	if err != nil {
		t.Fatalf("GenTokens: %v", err)
	}

	if _, err := a.ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateRefreshToken(t *testing.T) {
	a, err := New("test-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	access, refresh, err := a.GenTokens(7, RoleAdmin)
	if err != nil {
		t.Fatalf("GenTokens: %v", err)
	}

	claims, err := a.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserId != 7 || claims.Role != RoleAdmin {
		t.Errorf("claims = %d/%q, want 7/%q", claims.UserId, claims.Role, RoleAdmin)
	}

	if _, err := a.ValidateRefreshToken(access); err == nil {
		t.Fatal("expected an access token to be rejected as a refresh token")
	}
}

func TestClaimsAuthorized(t *testing.T) {
	claims := Claims{Role: RoleManager}

	if !claims.Authorized(RoleAdmin, RoleManager) {
		t.Error("manager should be authorized for admin+manager routes")
	}
	if claims.Authorized(RoleAdmin) {
		t.Error("manager should not be authorized for admin-only routes")
	}
	if claims.Authorized() {
		t.Error("empty role list should authorize nobody")
	}
}
