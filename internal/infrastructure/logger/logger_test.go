package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with json format", func(t *testing.T) {
		l := New(Config{Level: "info", Format: "json", Output: "stdout"})
		assert.NotNil(t, l)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		l := New(Config{Level: "verbose", Format: "console", Output: "stdout"})
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production is info level", func(t *testing.T) {
		l := NewForEnvironment("production")
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("development is debug level", func(t *testing.T) {
		l := NewForEnvironment("development")
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestContext(t *testing.T) {
	t.Run("round-trips logger through context", func(t *testing.T) {
		l := zap.NewNop()
		ctx := WithContext(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("returns nop logger when context is empty", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id round-trip", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("missing request id is empty", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
