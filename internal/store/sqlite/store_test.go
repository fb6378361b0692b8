package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iceberg_farmer/internal/model"
)

func TestStore_SaveAndListPassReports(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		start := base.Add(time.Duration(i) * 10 * time.Minute)
		err := s.SavePassReport(ctx, model.PassReport{
			Number:     i,
			StartedAt:  start,
			FinishedAt: start.Add(time.Minute),
			Accounts: []model.AccountReport{
				{Index: 0, UserID: "7", Farming: model.OK(), Tasks: model.OK(), Ads: model.AdsSummary{Viewed: i}},
				{Index: 1, Skipped: true, SkipReason: "bad auth"},
			},
		})
		require.NoError(t, err)
	}

	got, err := s.ListPassReports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Number)
	assert.Equal(t, 2, got[1].Number)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, 3, got[0].AdsViewed())
	assert.Equal(t, 1, got[0].Skipped())
	assert.True(t, got[0].StartedAt.Equal(base.Add(30*time.Minute)))
}

func TestStore_RejectsIncompleteReport(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.Error(t, s.SavePassReport(ctx, model.PassReport{Number: 1}))
}

func TestOpen_InMemoryAndEmptyPath(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, "  ")
	assert.Error(t, err)

	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	start := time.Now()
	require.NoError(t, s.SavePassReport(ctx, model.PassReport{Number: 1, StartedAt: start, FinishedAt: start}))
	got, err := s.ListPassReports(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
