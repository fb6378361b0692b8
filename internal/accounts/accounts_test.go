package accounts

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/logbus"
)

func authFor(userJSON string) string {
	return "query_id=AAH1&user=" + url.QueryEscape(userJSON) + "&auth_date=1727000000&hash=abc"
}

func TestParseUser(t *testing.T) {
	tests := []struct {
		name      string
		auth      string
		wantID    string
		wantFirst string
		wantErr   error
	}{
		{
			name:      "numeric id",
			auth:      authFor(`{"id":123456789,"first_name":"Alice","username":"alice"}`),
			wantID:    "123456789",
			wantFirst: "Alice",
		},
		{
			name:      "string id",
			auth:      authFor(`{"id":"42","first_name":"Bob"}`),
			wantID:    "42",
			wantFirst: "Bob",
		},
		{
			name:    "missing user field",
			auth:    "query_id=AAH1&auth_date=1727000000&hash=abc",
			wantErr: errs.ErrMalformedAuth,
		},
		{
			name:    "user is not json",
			auth:    "user=hello",
			wantErr: errs.ErrMalformedAuth,
		},
		{
			name:    "empty first name",
			auth:    authFor(`{"id":1,"first_name":""}`),
			wantErr: errs.ErrMissingField,
		},
		{
			name:    "empty string",
			auth:    "",
			wantErr: errs.ErrMalformedAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := ParseUser(tt.auth)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID.String())
			assert.Equal(t, tt.wantFirst, user.FirstName)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitLines("a\r\n\r\nb\nc\n"))
	assert.Empty(t, SplitLines("\r\n\n"))
}

func TestPair(t *testing.T) {
	accs := Pair([]string{"a1", "a2", "a3"}, []string{"http://p1:8080", " http://p2:8080 "})
	require.Len(t, accs, 3)
	assert.Equal(t, "http://p1:8080", accs[0].Proxy)
	assert.Equal(t, "http://p2:8080", accs[1].Proxy)
	assert.False(t, accs[2].HasProxy())
	assert.Equal(t, 2, accs[2].Index)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(data, []byte("first\r\nsecond\n"), 0o600))

	t.Run("missing proxy file is a warning", func(t *testing.T) {
		bus := logbus.New(10)
		accs, err := Load(data, filepath.Join(dir, "nope.txt"), bus)
		require.NoError(t, err)
		require.Len(t, accs, 2)
		assert.Equal(t, "first", accs[0].Auth)
		assert.False(t, accs[0].HasProxy())

		levels := []string{}
		for _, m := range bus.Snapshot() {
			levels = append(levels, m.Data.(logbus.LogData).Level)
		}
		assert.Contains(t, levels, logbus.LevelWarn)
	})

	t.Run("missing credential file is fatal", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.txt"), "", nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty credential file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o600))
		_, err := Load(empty, "", nil)
		assert.ErrorIs(t, err, errs.ErrNoCredentials)
	})
}
