package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", RoleName: RoleHR}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.UserID != "u1" || parsed.RoleName != RoleHR || parsed.Subject != "u1" {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("one", Claims{UserID: "u1", RoleName: RoleHR}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("two", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("s", Claims{UserID: "u1", RoleName: RoleHR}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseTokenRequiresExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1", RoleName: RoleHR}).SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := ParseToken("s", token); err == nil {
		t.Fatal("expected missing exp to be rejected")
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed(RoleHR, PermImportRun) || !Allowed(RoleSystemAdmin, PermImportRun) {
		t.Fatal("HR and SystemAdmin may run imports")
	}
	if Allowed(RoleEmployee, PermImportRun) || Allowed("", PermImportRun) {
		t.Fatal("other roles may not run imports")
	}
}

func TestEmployeeCannotViewRuns(t *testing.T) {
	if Allowed(RoleEmployee, PermImportView) {
		t.Fatal("employees may not list import runs")
	}
	if !Allowed(RoleHR, PermImportView) {
		t.Fatal("HR may list import runs")
	}
}
