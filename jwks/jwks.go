package jwks

// keySet mirrors the RFC 7517 JSON structure of a key set document.
// A key set is ephemeral: it lives for one fetch-and-lookup operation
// and only the per-key encoded product outlives it in the cache.
type keySet struct {
	Keys []jsonWebKey `json:"keys"`
}

// jsonWebKey carries the subset of JWK members needed to rebuild an
// RSA public key: the key type, the key id, and the base64url-encoded
// big-endian modulus and public exponent.
type jsonWebKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

// lookup returns the key with the given id, or nil.
func (s *keySet) lookup(keyID string) *jsonWebKey {
	for i := range s.Keys {
		if s.Keys[i].Kid == keyID {
			return &s.Keys[i]
		}
	}
	return nil
}
