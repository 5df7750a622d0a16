package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Warnf(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

type noopMetrics struct{}

func (noopMetrics) IncCounter(name string, tags map[string]string)                      {}
func (noopMetrics) ObserveHistogram(name string, value float64, tags map[string]string) {}
func (noopMetrics) SetGauge(name string, value float64, tags map[string]string)         {}

type noopSpan struct{}

func (noopSpan) Finish()                              {}
func (noopSpan) SetTag(key string, value interface{}) {}
func (noopSpan) LogFields(fields ...interface{})      {}

type noopTracer struct{}

func (noopTracer) StartSpan(operationName string, opts ...interface{}) Span { return noopSpan{} }

func TestOptions(t *testing.T) {
	t.Run("it applies all options", func(t *testing.T) {
		verifier := RS256Verifier{}

		validator, err := New(
			staticKeyProvider("unused"),
			testIssuer,
			[]string{"RS256"},
			WithVerifier(verifier),
			WithLogger(noopLogger{}),
			WithMetrics(noopMetrics{}),
			WithTracer(noopTracer{}),
		)
		require.NoError(t, err)

		assert.Equal(t, verifier, validator.verifier)
		assert.NotNil(t, validator.logger)
		assert.NotNil(t, validator.metrics)
		assert.NotNil(t, validator.tracer)
	})

	t.Run("it rejects a nil verifier", func(t *testing.T) {
		_, err := New(staticKeyProvider("unused"), testIssuer, []string{"RS256"}, WithVerifier(nil))
		assert.Error(t, err)
	})

	t.Run("it rejects a nil logger", func(t *testing.T) {
		_, err := New(staticKeyProvider("unused"), testIssuer, []string{"RS256"}, WithLogger(nil))
		assert.Error(t, err)
	})

	t.Run("it rejects a nil metrics sink", func(t *testing.T) {
		_, err := New(staticKeyProvider("unused"), testIssuer, []string{"RS256"}, WithMetrics(nil))
		assert.Error(t, err)
	})

	t.Run("it rejects a nil tracer", func(t *testing.T) {
		_, err := New(staticKeyProvider("unused"), testIssuer, []string{"RS256"}, WithTracer(nil))
		assert.Error(t, err)
	})
}
