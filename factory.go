package jwtverifier

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/authkeep/go-jwt-verifier/cache"
	"github.com/authkeep/go-jwt-verifier/jwks"
	"github.com/authkeep/go-jwt-verifier/validator"
)

// jwksPath is appended to the normalized issuer URL to locate the key set.
const jwksPath = "/api/v1/oauth2/jwks"

// ErrIssuerDomainRequired is returned by New when Config.IssuerDomain is blank.
var ErrIssuerDomainRequired = errors.New("issuer domain is required")

// Result and Claims alias the validator package's types so most callers
// only need to import this package.
type (
	Result = validator.Result
	Claims = validator.Claims
)

// Config carries the settings needed to build a Verifier.
type Config struct {
	// IssuerDomain is the token issuer, with or without a scheme.
	// "auth.example.com" and "https://auth.example.com/" both resolve to
	// the issuer "https://auth.example.com".
	IssuerDomain string

	// CacheMaxSize bounds the signing-key cache. Zero keeps the default.
	CacheMaxSize int

	// CacheTTL expires cached signing keys. Zero keeps the default.
	CacheTTL time.Duration
}

// Option configures a Verifier beyond what Config covers.
type Option func(*settings)

type settings struct {
	httpClient *http.Client
	logger     Logger
	metrics    Metrics
	tracer     Tracer
}

// WithHTTPClient sets the HTTP client used for key set fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.httpClient = client
	}
}

// WithLogger sets the logger used by the key set client and the
// validation pipeline.
func WithLogger(logger Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics sink used by the key set client and the
// validation pipeline.
func WithMetrics(metrics Metrics) Option {
	return func(s *settings) {
		s.metrics = metrics
	}
}

// WithTracer sets the tracer used by the validation pipeline.
func WithTracer(tracer Tracer) Option {
	return func(s *settings) {
		s.tracer = tracer
	}
}

// Verifier validates RS256-signed JWTs against the key set published by
// a single issuer. Safe for concurrent use.
type Verifier struct {
	issuer    string
	keys      *jwks.Client
	validator *validator.Validator
}

// New wires a key set client for cfg.IssuerDomain's JWKS endpoint to a
// validation pipeline expecting that issuer.
func New(cfg Config, opts ...Option) (*Verifier, error) {
	if strings.TrimSpace(cfg.IssuerDomain) == "" {
		return nil, ErrIssuerDomainRequired
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	issuer := normalizeIssuer(cfg.IssuerDomain)

	clientOpts := []jwks.Option{}
	if cfg.CacheMaxSize > 0 {
		clientOpts = append(clientOpts, jwks.WithCacheMaxSize(cfg.CacheMaxSize))
	}
	if cfg.CacheTTL > 0 {
		clientOpts = append(clientOpts, jwks.WithCacheTTL(cfg.CacheTTL))
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, jwks.WithHTTPClient(s.httpClient))
	}
	if s.logger != nil {
		clientOpts = append(clientOpts, jwks.WithLogger(s.logger))
	}
	if s.metrics != nil {
		clientOpts = append(clientOpts, jwks.WithMetrics(s.metrics))
	}

	keys, err := jwks.NewClient(issuer+jwksPath, clientOpts...)
	if err != nil {
		return nil, err
	}

	validatorOpts := []validator.Option{}
	if s.logger != nil {
		validatorOpts = append(validatorOpts, validator.WithLogger(s.logger))
	}
	if s.metrics != nil {
		validatorOpts = append(validatorOpts, validator.WithMetrics(s.metrics))
	}
	if s.tracer != nil {
		validatorOpts = append(validatorOpts, validator.WithTracer(s.tracer))
	}

	pipeline, err := validator.New(keys, issuer, []string{validator.RS256}, validatorOpts...)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		issuer:    issuer,
		keys:      keys,
		validator: pipeline,
	}, nil
}

// Issuer returns the normalized issuer the Verifier expects tokens from.
func (v *Verifier) Issuer() string {
	return v.issuer
}

// Validate checks one compact-serialized JWT. It never returns an
// error; every failure surfaces in the Result.
func (v *Verifier) Validate(ctx context.Context, token string) Result {
	return v.validator.Validate(ctx, token)
}

// ClearCache drops all cached signing keys.
func (v *Verifier) ClearCache() {
	v.keys.Clear()
}

// CacheStats reports the current state of the signing-key cache.
func (v *Verifier) CacheStats() cache.Stats {
	return v.keys.CacheStats()
}

// normalizeIssuer turns a bare domain or URL into the canonical issuer
// form: explicit scheme, no trailing slash.
func normalizeIssuer(domain string) string {
	issuer := strings.TrimSpace(domain)
	if !strings.Contains(issuer, "://") {
		issuer = "https://" + issuer
	}
	return strings.TrimRight(issuer, "/")
}
