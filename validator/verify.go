package validator

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// SignatureVerifier checks an RS256 signature over a token's signing
// input using a PEM-encoded public key. A false result with a nil
// error means the key was usable but the signature did not match.
type SignatureVerifier interface {
	Verify(publicKeyPEM string, signingInput, signature []byte) (bool, error)
}

// RS256Verifier verifies RSASSA-PKCS1-v1_5 SHA-256 signatures. It is
// the verifier used when none is injected.
type RS256Verifier struct{}

// Verify imports the PEM key and checks signature over signingInput.
func (RS256Verifier) Verify(publicKeyPEM string, signingInput, signature []byte) (bool, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return false, errors.New("signing key is not valid PEM")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return false, fmt.Errorf("could not parse signing key: %w", err)
	}

	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return false, fmt.Errorf("expected an RSA signing key, got %T", parsed)
	}

	digest := sha256.Sum256(signingInput)
	if err := rsa.VerifyPKCS1v15(rsaKey, crypto.SHA256, digest[:], signature); err != nil {
		return false, nil
	}
	return true, nil
}
