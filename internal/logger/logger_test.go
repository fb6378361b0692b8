package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	l, err := New("development", "debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New("production", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))

	_, err = New("production", "loud")
	assert.Error(t, err)
	_, err = New("chatty", "info")
	assert.Error(t, err)
}

func TestNewTest(t *testing.T) {
	assert.False(t, NewTest().Core().Enabled(zapcore.ErrorLevel))
}
