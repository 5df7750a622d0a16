/*
Package jwtverifier validates RS256-signed JWTs against the JWKS
endpoint published by a single issuer.

# Quick Start

	import jwtverifier "github.com/authkeep/go-jwt-verifier"

	func main() {
	    verifier, err := jwtverifier.New(jwtverifier.Config{
	        IssuerDomain: "auth.example.com",
	        CacheMaxSize: 20,
	        CacheTTL:     10 * time.Minute,
	    })
	    if err != nil {
	        log.Fatal(err)
	    }

	    token, err := jwtverifier.ExtractBearerToken(r.Header.Values("Authorization")...)
	    if err != nil {
	        // absent, repeated, or malformed Authorization header
	    }

	    result := verifier.Validate(r.Context(), token)
	    if !result.Valid {
	        // result.ErrorMessage says why
	    }
	    _ = result.Claims.Subject
	}

Validate never returns an error: expired tokens, bad signatures, and
unreachable key sets all surface as a Result with Valid false and an
ErrorMessage. Signing keys are fetched from the issuer's
/api/v1/oauth2/jwks endpoint on demand and held in a bounded TTL cache,
so steady-state validation does no network I/O.

# Configuration

Beyond Config, functional options tune the collaborators:

  - WithHTTPClient: HTTP client used for key set fetches
  - WithLogger: printf-style logger (adapters for logrus, zap, zerolog)
  - WithMetrics: metrics sink (Prometheus implementation included)
  - WithTracer: tracer for the validation pipeline (OpenTelemetry
    implementation included)

# Lower-level packages

The jwks package exposes the key set client directly, the validator
package the validation pipeline, and the cache package the bounded TTL
cache, for callers that need to assemble the pieces themselves.

A Verifier is immutable after construction and safe for concurrent use.
*/
package jwtverifier
