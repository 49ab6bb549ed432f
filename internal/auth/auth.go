package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleHR          = "HR"
	RoleSystemAdmin = "SystemAdmin"
	RoleEmployee    = "Employee"
)

const (
	PermImportRun  = "imports.run"
	PermImportView = "imports.view"
)

// RolePermissions lists what each role may do over the ops API.
var RolePermissions = map[string][]string{
	RoleHR:          {PermImportRun, PermImportView},
	RoleSystemAdmin: {PermImportRun, PermImportView},
	RoleEmployee:    {},
}

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID   string `json:"uid"`
	RoleName string `json:"role"`
	jwt.RegisteredClaims
}

// UserContext is the caller identity attached to a request.
type UserContext struct {
	UserID   string
	RoleName string
}

func Allowed(role, permission string) bool {
	return slices.Contains(RolePermissions[role], permission)
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
