package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

func samplePass() model.PassReport {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return model.PassReport{
		ID:         "p-1",
		Number:     3,
		StartedAt:  start,
		FinishedAt: start.Add(4 * time.Minute),
		Accounts: []model.AccountReport{
			{
				Index:     0,
				UserID:    "42",
				FirstName: "Ann",
				Balance:   &model.Balance{Amount: "1500"},
				Farming:   model.OK(),
				Tasks:     model.OK(),
				Ads:       model.AdsSummary{Viewed: 2, LastCount: 20, StopCause: model.ReasonLimitReached},
			},
			{Index: 1, UserID: "43", Skipped: true, SkipReason: "proxy check failed"},
		},
	}
}

func TestSmtpConfigForEmail(t *testing.T) {
	cases := []struct {
		email string
		host  string
		port  int
		ssl   bool
	}{
		{"me@gmail.com", "smtp.gmail.com", 587, false},
		{"me@outlook.com", "smtp.office365.com", 587, false},
		{"me@yahoo.co.uk", "smtp.mail.yahoo.com", 465, true},
		{"me@example.org", "smtp.example.org", 465, true},
	}
	for _, tc := range cases {
		host, port, ssl, err := smtpConfigForEmail(tc.email)
		require.NoError(t, err, tc.email)
		assert.Equal(t, tc.host, host, tc.email)
		assert.Equal(t, tc.port, port, tc.email)
		assert.Equal(t, tc.ssl, ssl, tc.email)
	}

	_, _, _, err := smtpConfigForEmail("broken")
	assert.Error(t, err)
}

func TestValidateEmailSettings(t *testing.T) {
	assert.Error(t, validateEmailSettings(config.EmailConfig{}))
	assert.Error(t, validateEmailSettings(config.EmailConfig{Email: "not an address", AuthCode: "x"}))
	assert.Error(t, validateEmailSettings(config.EmailConfig{Email: "a@b.com"}))
	assert.NoError(t, validateEmailSettings(config.EmailConfig{Email: "a@b.com", AuthCode: "x"}))
}

func TestBuildSummaryEmailBody(t *testing.T) {
	html, text, err := buildSummaryEmailBody(samplePass())
	require.NoError(t, err)

	assert.Contains(t, html, "Pass #3")
	assert.Contains(t, html, "Ann")
	assert.Contains(t, html, "1500")
	assert.Contains(t, text, "2 viewed (limit_reached)")
	assert.Contains(t, text, "proxy check failed")
	assert.Equal(t, "Pass #3 finished: 2 accounts, 2 ads viewed", buildSummarySubject(samplePass()))

	_, _, err = buildSummaryEmailBody(model.PassReport{})
	assert.Error(t, err)
}

func TestEmailNotifier_SendsQueuedReports(t *testing.T) {
	sent := make(chan model.PassReport, 1)
	n := newEmailNotifier(config.EmailConfig{Enabled: true, Email: "a@b.com", AuthCode: "code"}, logbus.New(10),
		func(_ context.Context, _ config.EmailConfig, r model.PassReport) error {
			sent <- r
			return nil
		})

	n.NotifyPassCompleted(context.Background(), samplePass())
	require.NoError(t, n.Close(context.Background()))

	select {
	case r := <-sent:
		assert.Equal(t, 3, r.Number)
	default:
		t.Fatal("report was not sent")
	}

	// after Close the notifier drops reports silently
	n.NotifyPassCompleted(context.Background(), samplePass())
}

func TestEmailNotifier_DisabledAndFailures(t *testing.T) {
	calls := 0
	disabled := newEmailNotifier(config.EmailConfig{Enabled: false}, nil,
		func(context.Context, config.EmailConfig, model.PassReport) error {
			calls++
			return nil
		})
	disabled.NotifyPassCompleted(context.Background(), samplePass())
	require.NoError(t, disabled.Close(context.Background()))
	assert.Zero(t, calls)

	bus := logbus.New(10)
	failing := newEmailNotifier(config.EmailConfig{Enabled: true, Email: "a@b.com", AuthCode: "code"}, bus,
		func(context.Context, config.EmailConfig, model.PassReport) error {
			return errors.New("smtp down")
		})
	failing.NotifyPassCompleted(context.Background(), samplePass())
	require.NoError(t, failing.Close(context.Background()))

	snap := bus.Snapshot()
	require.NotEmpty(t, snap)
	last := snap[len(snap)-1].Data.(logbus.LogData)
	assert.Equal(t, logbus.LevelWarn, last.Level)
	assert.Equal(t, "smtp down", last.Fields["error"])
}
