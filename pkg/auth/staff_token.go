package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// StaffRole is the role claim required on staff endpoints.
	StaffRole = "staff"
	issuer    = "reliableteam-site"
)

var ErrNoSecret = errors.New("auth: ADMIN_JWT_SECRET is not configured")

// StaffClaims identifies a staff member allowed to read inquiries.
type StaffClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueStaffToken signs an HS256 token for subject valid for ttl.
func IssueStaffToken(secret, subject, email string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := StaffClaims{
		Email: email,
		Role:  StaffRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseStaffToken verifies signature, expiry, issuer and role.
func ParseStaffToken(secret, tokenString string) (*StaffClaims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	claims := &StaffClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if claims.Role != StaffRole {
		return nil, fmt.Errorf("auth: role %q is not allowed", claims.Role)
	}
	if claims.Subject == "" {
		return nil, errors.New("auth: token has no subject")
	}
	return claims, nil
}
