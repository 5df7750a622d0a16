package jwtverifier

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/authkeep/go-jwt-verifier/jwks"
	"github.com/authkeep/go-jwt-verifier/validator"
)

// The root Logger must plug into both collaborator packages.
var (
	_ jwks.Logger      = (*DefaultLogger)(nil)
	_ validator.Logger = (*DefaultLogger)(nil)
)

func TestDefaultLogger(t *testing.T) {
	logger := &DefaultLogger{}

	logger.Debugf("debug message: %s", "test")
	logger.Infof("info message: %s", "test")
	logger.Warnf("warn message: %s", "test")
	logger.Errorf("error message: %s", "test")
}

func TestZapLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	logger := NewZapLogger(zapLogger.Sugar())

	logger.Debugf("debug message: %s", "test")
	assert.Equal(t, 0, recorded.Len(), "debug must be filtered at info level")

	logger.Infof("info message: %s", "test")
	assert.Equal(t, 1, recorded.Len())
	assert.Equal(t, "info message: test", recorded.All()[0].Message)

	logger.Warnf("warn message: %s", "test")
	assert.Equal(t, 2, recorded.Len())
	assert.Equal(t, "warn message: test", recorded.All()[1].Message)

	logger.Errorf("error message: %s", "test")
	assert.Equal(t, 3, recorded.Len())
	assert.Equal(t, "error message: test", recorded.All()[2].Message)
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Debugf("debug message: %s", "test")
	logger.Infof("info message: %s", "test")
	logger.Warnf("warn message: %s", "test")
	logger.Errorf("error message: %s", "test")

	logOutput := buf.String()
	assert.Contains(t, logOutput, "debug message: test")
	assert.Contains(t, logOutput, "info message: test")
	assert.Contains(t, logOutput, "warn message: test")
	assert.Contains(t, logOutput, "error message: test")
}

func TestLogrusLogger(t *testing.T) {
	var buf bytes.Buffer

	logrusLogger := logrus.New()
	logrusLogger.Out = &buf
	logrusLogger.Level = logrus.InfoLevel

	logger := NewLogrusLogger(logrusLogger)

	logger.Debugf("debug message: %s", "test")
	logger.Infof("info message: %s", "test")
	logger.Warnf("warn message: %s", "test")
	logger.Errorf("error message: %s", "test")

	output := buf.String()
	assert.NotContains(t, output, "debug message: test", "debug must be filtered at info level")
	assert.Contains(t, output, "info message: test")
	assert.Contains(t, output, "warn message: test")
	assert.Contains(t, output, "error message: test")

	buf.Reset()
	logrusLogger.Level = logrus.DebugLevel

	logger.Debugf("debug message: %s", "test")
	assert.Contains(t, buf.String(), "debug message: test")
}
