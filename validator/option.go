package validator

import "errors"

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithVerifier replaces the default RS256 signature verifier. This is
// the seam for injecting a different signature primitive, for example
// an HSM-backed one, or a stub in tests.
func WithVerifier(verifier SignatureVerifier) Option {
	return func(v *Validator) error {
		if verifier == nil {
			return errors.New("verifier cannot be nil")
		}
		v.verifier = verifier
		return nil
	}
}

// WithLogger sets an optional logger for the Validator.
func WithLogger(logger Logger) Option {
	return func(v *Validator) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		v.logger = logger
		return nil
	}
}

// WithMetrics sets an optional metrics sink for the Validator.
func WithMetrics(metrics Metrics) Option {
	return func(v *Validator) error {
		if metrics == nil {
			return errors.New("metrics cannot be nil")
		}
		v.metrics = metrics
		return nil
	}
}

// WithTracer sets an optional tracer for the Validator.
func WithTracer(tracer Tracer) Option {
	return func(v *Validator) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		v.tracer = tracer
		return nil
	}
}
