package jwtverifier

import (
	"errors"
	"strings"
)

const bearerPrefix = "Bearer "

// Extraction failures. ExtractBearerToken returns these so callers can
// distinguish a missing header from a malformed one.
var (
	ErrNoAuthorizationHeader        = errors.New("No authorization header provided")
	ErrMultipleAuthorizationHeaders = errors.New("Multiple authorization headers not allowed")
	ErrInvalidAuthorizationScheme   = errors.New("Authorization header format must be Bearer {token}")
	ErrEmptyBearerToken             = errors.New("Bearer token is empty")
)

// ExtractBearerToken returns the bare token carried by an Authorization
// header. The header may be absent (no values), a single value, or
// repeated (multiple values); only exactly one value is accepted. The
// "Bearer " scheme prefix is matched case-sensitively.
func ExtractBearerToken(values ...string) (string, error) {
	if len(values) == 0 {
		return "", ErrNoAuthorizationHeader
	}
	if len(values) > 1 {
		return "", ErrMultipleAuthorizationHeaders
	}

	header := values[0]
	if header == "" {
		return "", ErrNoAuthorizationHeader
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", ErrInvalidAuthorizationScheme
	}
	if token == "" {
		return "", ErrEmptyBearerToken
	}

	return token, nil
}
