package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validKeyFile   = "test_valid_private.pem"
	invalidKeyFile = "test_invalid_private.pem"
)

// testJwtPrivateKey is generated in TestMain and shared by the package tests.
var testJwtPrivateKey *ecdsa.PrivateKey

func TestMain(m *testing.M) {
	validKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	testJwtPrivateKey = validKey

	validKeyOut, err := os.Create(validKeyFile)
	if err != nil {
		log.Fatalf("Failed to create valid private key file: %v", err)
	}
	if err := EncodeECDSAPrivateKeyToPEM(validKeyOut, validKey); err != nil {
		log.Fatalf("Failed to write valid private key to PEM: %v", err)
	}
	if err := validKeyOut.Close(); err != nil {
		log.Fatalf("Failed to close valid private key file: %v", err)
	}

	invalid := "-----BEGIN INVALID KEY-----\nbm90LWEtcmVhbC1rZXk=\n-----END INVALID KEY-----\n"
	if err := os.WriteFile(invalidKeyFile, []byte(invalid), 0o600); err != nil {
		log.Fatalf("Failed to write invalid key to PEM: %v", err)
	}

	code := m.Run()

	for _, f := range []string{validKeyFile, invalidKeyFile} {
		if err := os.Remove(f); err != nil {
			log.Printf("Warning: failed to remove %s: %v", f, err)
		}
	}

	os.Exit(code)
}

func testIdentity() Identity {
	return Identity{
		UserID:      "650c1f1e8f1b2c3d4e5f6a7b",
		Email:       "jane@example.com",
		Role:        "quality analyst",
		Permissions: map[string]bool{PermissionClassifyBug: true},
	}
}

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name       string
		identity   Identity
		ttl        time.Duration
		privateKey *ecdsa.PrivateKey
		wantTTL    time.Duration
		wantErr    bool
	}{
		{
			name:       "Successful token creation",
			identity:   testIdentity(),
			ttl:        15 * time.Minute,
			privateKey: testJwtPrivateKey,
			wantTTL:    15 * time.Minute,
		},
		{
			name:       "Zero ttl falls back to the default",
			identity:   Identity{},
			privateKey: testJwtPrivateKey,
			wantTTL:    DefaultTokenTTL,
		},
		{
			name:     "Error with nil private key",
			identity: testIdentity(),
			ttl:      time.Minute,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString, err := CreateToken(tt.identity, tt.ttl, tt.privateKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, tokenString)

			parsed, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
				return &tt.privateKey.PublicKey, nil
			}, jwt.WithValidMethods([]string{"ES256"}))
			require.NoError(t, err)
			require.True(t, parsed.Valid)

			claims, ok := parsed.Claims.(*CustomClaims)
			require.True(t, ok)
			assert.Equal(t, tt.identity.UserID, claims.UserID)
			assert.Equal(t, tt.identity.Email, claims.Email)
			assert.Equal(t, tt.identity.Role, claims.Role)
			assert.Equal(t, len(tt.identity.Permissions), len(claims.Permissions))

			now := time.Now()
			require.NotNil(t, claims.ExpiresAt)
			assert.WithinDuration(t, now.Add(tt.wantTTL), claims.ExpiresAt.Time, 5*time.Second)
			assert.WithinDuration(t, now, claims.IssuedAt.Time, 5*time.Second)
			assert.WithinDuration(t, now, claims.NotBefore.Time, 5*time.Second)
			assert.Equal(t, ISSUER, claims.Issuer)
			assert.Equal(t, SUBJECT, claims.Subject)
			assert.Equal(t, jwt.ClaimStrings{AUDIENCE}, claims.Audience)
			_, err = uuid.Parse(claims.ID)
			assert.NoError(t, err, "jti must be a UUID")
		})
	}
}

func TestVerifyToken(t *testing.T) {
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	valid, err := CreateToken(testIdentity(), time.Hour, testJwtPrivateKey)
	require.NoError(t, err)

	expiredClaims := CustomClaims{
		Identity: testIdentity(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    ISSUER,
			Audience:  []string{AUDIENCE},
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodES256, expiredClaims).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	foreignIssuer := expiredClaims
	foreignIssuer.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	foreignIssuer.Issuer = "someone-else"
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodES256, foreignIssuer).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	differentKey, err := CreateToken(testIdentity(), time.Hour, otherKey)
	require.NoError(t, err)

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, foreignIssuer).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		wantErr     bool
	}{
		{name: "valid token", tokenString: valid},
		{name: "invalid token format", tokenString: "invalid-token-format", wantErr: true},
		{name: "tampered token", tokenString: valid[:len(valid)-4] + "AAAA", wantErr: true},
		{name: "expired token", tokenString: expired, wantErr: true},
		{name: "foreign issuer", tokenString: foreign, wantErr: true},
		{name: "signed by different key", tokenString: differentKey, wantErr: true},
		{name: "hmac signed", tokenString: hmac, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := VerifyToken(tt.tokenString, &testJwtPrivateKey.PublicKey)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "650c1f1e8f1b2c3d4e5f6a7b", claims.UserID)
			assert.True(t, claims.Can(PermissionClassifyBug))
			assert.False(t, claims.Can(PermissionDeleteUser))
		})
	}
}
