package jwks

import "fmt"

// ConfigError reports invalid client construction arguments.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid key set client configuration: " + e.Reason
}

// KeySetFetchError is returned when every attempt to retrieve the key
// set has failed. It wraps the failure of the last attempt.
type KeySetFetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *KeySetFetchError) Error() string {
	return fmt.Sprintf("could not fetch key set from %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *KeySetFetchError) Unwrap() error {
	return e.Err
}

// KeyNotFoundError is returned when the fetched key set holds no key
// with the requested id.
type KeyNotFoundError struct {
	KeyID string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("Unable to find a signing key that matches '%s'", e.KeyID)
}

// UnsupportedKeyTypeError is returned for keys that are not RSA keys.
type UnsupportedKeyTypeError struct {
	KeyID   string
	KeyType string
}

func (e *UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("key '%s' has unsupported key type '%s', only RSA is supported", e.KeyID, e.KeyType)
}

// MalformedKeyError is returned for RSA keys that cannot be decoded
// into a modulus and public exponent.
type MalformedKeyError struct {
	KeyID  string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("key '%s' is malformed: %s", e.KeyID, e.Reason)
}

// WeakKeyError is returned for RSA moduli below the OWASP minimum of
// 2048 bits.
type WeakKeyError struct {
	KeyID string
	Bits  int
}

func (e *WeakKeyError) Error() string {
	return fmt.Sprintf("key '%s' is too weak: %d-bit RSA modulus, minimum is %d bits", e.KeyID, e.Bits, minModulusBits)
}
