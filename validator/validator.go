// Package validator implements the claim and signature checks for
// RS256-signed JWTs.
//
// A Validator runs a fixed short-circuiting check sequence over a
// token: presence, format, encoding, algorithm allowlist, issuer,
// expiration, not-before, key id, signing key resolution, and finally
// the signature itself. Every outcome is reported through a Result
// value; Validate never returns an error and never panics outward.
// The algorithm allowlist is checked before any trust is extended to
// the token's other claims, and the literal algorithm "none" is
// rejected unconditionally.
package validator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RS256 is the only signature algorithm this validator supports.
const RS256 = "RS256"

// KeyProvider resolves a PEM-encoded public signing key by key id.
// *jwks.Client satisfies this interface.
type KeyProvider interface {
	GetSigningKey(ctx context.Context, keyID string) (string, error)
}

// Logger is an optional printf-style logging interface. Adapters for
// logrus, zap, and zerolog live in the root package.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Metrics is an optional metrics interface. A Prometheus-backed
// implementation lives in the root package.
type Metrics interface {
	IncCounter(name string, tags map[string]string)
	ObserveHistogram(name string, value float64, tags map[string]string)
	SetGauge(name string, value float64, tags map[string]string)
}

// Tracer is an optional tracing interface. An OpenTelemetry-backed
// implementation lives in the root package.
type Tracer interface {
	StartSpan(operationName string, opts ...interface{}) Span
}

// Span is a single traced operation.
type Span interface {
	Finish()
	SetTag(key string, value interface{})
	LogFields(fields ...interface{})
}

// Result is the outcome of validating one token: either Valid with the
// decoded Claims, or invalid with an ErrorMessage. It is a value, not
// an error; claim and signature failures are expected outcomes.
type Result struct {
	Valid        bool
	Claims       *Claims
	ErrorMessage string
}

// Validator runs the check sequence for a single token. It holds no
// per-call state and is safe for concurrent use; instances are meant
// to be long-lived so the key provider's cache pays off.
type Validator struct {
	keys              KeyProvider
	issuer            string
	allowedAlgorithms []string
	verifier          SignatureVerifier
	logger            Logger
	metrics           Metrics
	tracer            Tracer
	now               func() time.Time
}

// New builds a Validator for the given key provider, expected issuer,
// and algorithm allowlist. The allowlist must contain exactly one
// entry equal (case-insensitively) to "RS256"; any other shape fails
// construction.
func New(keys KeyProvider, issuer string, allowedAlgorithms []string, opts ...Option) (*Validator, error) {
	if keys == nil {
		return nil, errors.New("key provider is required but was nil")
	}
	if strings.TrimSpace(issuer) == "" {
		return nil, errors.New("issuer is required but was empty")
	}
	if len(allowedAlgorithms) != 1 || !strings.EqualFold(allowedAlgorithms[0], RS256) {
		return nil, errors.New("Only the RS256 algorithm is supported.")
	}

	v := &Validator{
		keys:              keys,
		issuer:            issuer,
		allowedAlgorithms: allowedAlgorithms,
		verifier:          RS256Verifier{},
		now:               time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Validate runs the full check sequence over token. It never returns
// an error; every outcome, including an internal panic, surfaces in
// the Result.
func (v *Validator) Validate(ctx context.Context, token string) (result Result) {
	var span Span
	if v.tracer != nil {
		span = v.tracer.StartSpan("jwt.validate")
	}
	start := v.now()

	defer func() {
		if recovered := recover(); recovered != nil {
			result = invalid(panicMessage(recovered))
		}

		if v.metrics != nil {
			outcome := "valid"
			if !result.Valid {
				outcome = "invalid"
			}
			v.metrics.IncCounter("jwt_validations", map[string]string{"outcome": outcome})
			v.metrics.ObserveHistogram("jwt_validation_seconds", time.Since(start).Seconds(), nil)
		}
		if span != nil {
			span.SetTag("jwt.valid", result.Valid)
			if !result.Valid {
				span.SetTag("jwt.error", result.ErrorMessage)
			}
			span.Finish()
		}
		if v.logger != nil {
			if result.Valid {
				v.logger.Debugf("token validated successfully")
			} else {
				v.logger.Warnf("token validation failed: %s", result.ErrorMessage)
			}
		}
	}()

	return v.run(ctx, token)
}

// run is the check sequence proper. Each step short-circuits to an
// invalid Result carrying its reason.
func (v *Validator) run(ctx context.Context, token string) Result {
	if token == "" {
		return invalid("No token provided")
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return invalid("Invalid JWT format")
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		return invalid("Invalid JWT encoding")
	}
	payloadJSON, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return invalid("Invalid JWT encoding")
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return invalid("Invalid JWT encoding")
	}
	claims, err := parseClaims(payloadJSON)
	if err != nil {
		return invalid("Invalid JWT encoding")
	}

	// The algorithm check runs before any claim is trusted.
	if !v.algorithmAllowed(header.Algorithm) {
		return invalid(fmt.Sprintf("Algorithm %s not allowed. Expected one of: %s",
			header.Algorithm, strings.Join(v.allowedAlgorithms, ", ")))
	}

	if claims.Issuer != v.issuer {
		return invalid(fmt.Sprintf("Invalid issuer. Expected %s, got %s", v.issuer, claims.Issuer))
	}

	now := v.now()
	if claims.Expiry != 0 && !now.Before(time.Unix(claims.Expiry, 0)) {
		return invalid("Token has expired")
	}
	if claims.NotBefore != 0 && now.Before(time.Unix(claims.NotBefore, 0)) {
		return invalid("Token not yet valid")
	}

	if header.KeyID == "" {
		return invalid("Token header missing kid (key ID)")
	}

	publicKeyPEM, err := v.keys.GetSigningKey(ctx, header.KeyID)
	if err != nil {
		message := err.Error()
		if message == "" {
			message = "Unknown error"
		}
		return invalid("Failed to get signing key: " + message)
	}

	signature, err := base64.RawURLEncoding.DecodeString(segments[2])
	if err != nil {
		return invalid("Invalid signature")
	}

	signingInput := []byte(segments[0] + "." + segments[1])
	ok, err := v.verifier.Verify(publicKeyPEM, signingInput, signature)
	if err != nil {
		return invalid(errorMessage(err))
	}
	if !ok {
		return invalid("Invalid signature")
	}

	return Result{Valid: true, Claims: claims}
}

// algorithmAllowed reports whether alg is on the allowlist. "none" is
// rejected unconditionally, even if a caller managed to allowlist it,
// defeating algorithm confusion and signature stripping attacks.
func (v *Validator) algorithmAllowed(alg string) bool {
	if strings.EqualFold(alg, "none") {
		return false
	}
	for _, allowed := range v.allowedAlgorithms {
		if strings.EqualFold(alg, allowed) {
			return true
		}
	}
	return false
}

func invalid(message string) Result {
	return Result{ErrorMessage: message}
}

func errorMessage(err error) string {
	if message := err.Error(); message != "" {
		return message
	}
	return "Token validation failed"
}

func panicMessage(recovered interface{}) string {
	switch typed := recovered.(type) {
	case error:
		return errorMessage(typed)
	case string:
		if typed != "" {
			return typed
		}
	}
	return "Token validation failed"
}
