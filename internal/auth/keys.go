package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const pemBlockType = "EC PRIVATE KEY"

// LoadECDSAPrivateKey loads an ECDSA private key from a PEM file.
func LoadECDSAPrivateKey(keyPath string) (*ecdsa.PrivateKey, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	privateKey, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ECDSA private key: %w", err)
	}

	return privateKey, nil
}

// LoadOrCreateECDSAPrivateKey loads the key at keyPath. When the file is missing
// and generate is set, a P-256 key is generated and written there.
// The second return value reports whether a key was generated.
func LoadOrCreateECDSAPrivateKey(keyPath string, generate bool) (*ecdsa.PrivateKey, bool, error) {
	key, err := LoadECDSAPrivateKey(keyPath)
	if err == nil {
		return key, false, nil
	}
	if !generate || !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}

	key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate ECDSA private key: %w", err)
	}

	if dir := filepath.Dir(keyPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, false, fmt.Errorf("failed to create key directory: %w", err)
		}
	}
	out, err := os.OpenFile(keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create key file: %w", err)
	}
	defer out.Close()

	if err := EncodeECDSAPrivateKeyToPEM(out, key); err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// EncodeECDSAPrivateKeyToPEM writes key to out as an EC PRIVATE KEY block.
func EncodeECDSAPrivateKeyToPEM(out io.Writer, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	if err := pem.Encode(out, &pem.Block{Type: pemBlockType, Bytes: der}); err != nil {
		return fmt.Errorf("failed to encode PEM: %w", err)
	}
	return nil
}
