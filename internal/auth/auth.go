package auth

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER   = "github.com/haguru/bugtracker"
	SUBJECT  = "AUTHENTICATION"
	AUDIENCE = "api.bugtracker"

	DefaultTokenTTL = time.Hour
)

// Identity is the session payload carried inside the token.
type Identity struct {
	UserID      string          `json:"_id"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

// Can reports whether the identity holds the permission.
func (i Identity) Can(permission string) bool {
	return i.Permissions[permission]
}

type CustomClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateToken signs an ES256 token for identity that expires after ttl.
func CreateToken(identity Identity, ttl time.Duration, privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", fmt.Errorf("private key is required to sign tokens")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := CustomClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			Audience:  []string{AUDIENCE},
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signToken, nil
}

// VerifyToken parses an ES256 token issued by this service.
func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(ISSUER),
		jwt.WithAudience(AUDIENCE),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or claims")
}
