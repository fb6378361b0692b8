package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWebViewUserAgent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "  ", want: DefaultWebViewUserAgent()},
		{name: "not a browser", in: "curl/8.0", want: DefaultWebViewUserAgent()},
		{
			name: "desktop chrome kept",
			in:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
			want: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeWebViewUserAgent(tt.in))
		})
	}
}

func TestSecCHPlatform(t *testing.T) {
	assert.Equal(t, `"Android"`, SecCHPlatform(DefaultWebViewUserAgent()))
	assert.Equal(t, `"Windows"`, SecCHPlatform("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
	assert.True(t, IsMobileUA(DefaultWebViewUserAgent()))
	assert.False(t, IsMobileUA("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
}

func TestSleep_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
