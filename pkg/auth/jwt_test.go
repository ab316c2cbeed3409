package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "loan-engine-test",
		Expiration: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()
	tenantID := uuid.New()
	roles := []string{RoleAdmin, RoleUnderwriter}

	tokenString, err := svc.GenerateToken(userID, tenantID, roles)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	claims, err := svc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.TenantID != tenantID {
		t.Errorf("TenantID = %v, want %v", claims.TenantID, tenantID)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("Roles length = %d, want 2", len(claims.Roles))
	}
	if claims.Issuer != "loan-engine-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "loan-engine-test")
	}
	if claims.Subject != userID.String() {
		t.Errorf("Subject = %q, want %q", claims.Subject, userID.String())
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "loan-engine-test",
		Expiration: -1 * time.Hour, // already expired
	})
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}

	tokenString, err := svc.GenerateToken(uuid.New(), uuid.New(), []string{RoleBorrower})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for expired token, got nil")
	}
}

func TestValidateToken_InvalidSignature(t *testing.T) {
	svc1, _ := NewJWTService(JWTConfig{Secret: "secret-one", Issuer: "loan-engine-test", Expiration: 15 * time.Minute})
	svc2, _ := NewJWTService(JWTConfig{Secret: "secret-two", Issuer: "loan-engine-test", Expiration: 15 * time.Minute})

	tokenString, err := svc1.GenerateToken(uuid.New(), uuid.New(), []string{RoleBorrower})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := svc2.ValidateToken(tokenString); err == nil {
		t.Fatal("ValidateToken() expected error for invalid signature, got nil")
	}
}

func TestNewJWTService_NoConfig(t *testing.T) {
	if _, err := NewJWTService(JWTConfig{}); err == nil {
		t.Fatal("NewJWTService() expected error for empty config, got nil")
	}
}

func TestHasRole(t *testing.T) {
	claims := Claims{
		Roles: []string{RoleAdmin, RoleAuditor},
	}

	if !claims.HasRole(RoleAdmin) {
		t.Error("HasRole(RoleAdmin) = false, want true")
	}
	if claims.HasRole(RoleBorrower) {
		t.Error("HasRole(RoleBorrower) = true, want false")
	}
	if claims.HasRole("nonexistent") {
		t.Error("HasRole(nonexistent) = true, want false")
	}
}

func TestClaimsFromContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Error("ClaimsFromContext() ok = true for empty context, want false")
	}

	expected := &Claims{
		UserID: uuid.New(),
		Roles:  []string{RoleUnderwriter},
	}
	ctx = ContextWithClaims(ctx, expected)
	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false, want true")
	}
	if got.UserID != expected.UserID {
		t.Errorf("ClaimsFromContext().UserID = %v, want %v", got.UserID, expected.UserID)
	}
}
