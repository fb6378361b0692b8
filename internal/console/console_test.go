package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestCountdown_RedrawsOncePerSecond(t *testing.T) {
	var out bytes.Buffer
	var slept time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	require.NoError(t, Countdown(context.Background(), &out, 3, sleep))

	assert.Equal(t, 3, strings.Count(out.String(), "\r["))
	assert.Contains(t, out.String(), "Waiting 3 seconds")
	assert.Contains(t, out.String(), "Waiting 1 seconds")
	assert.True(t, strings.HasSuffix(out.String(), clearLine))
	assert.Equal(t, 3*time.Second, slept)
}

func TestCountdown_WallClock(t *testing.T) {
	if testing.Short() {
		t.Skip("waits three real seconds")
	}
	var out bytes.Buffer
	start := time.Now()
	require.NoError(t, Countdown(context.Background(), &out, 3, nil))
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Second)
	assert.Equal(t, 3, strings.Count(out.String(), "\r["))
}

func TestCountdown_StopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	sleep := func(ctx context.Context, _ time.Duration) error {
		calls++
		cancel()
		return ctx.Err()
	}

	err := Countdown(ctx, &out, 10, sleep)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestAccountHeader(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	got := AccountHeader(1, "Alice", "No proxy")
	assert.Equal(t, "========== Account 2 | Alice | ip: No proxy ==========", got)
	assert.NotContains(t, got, "\x1b[")
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	PrintBanner(&out)
	assert.Contains(t, out.String(), "Ctrl+C")
}
