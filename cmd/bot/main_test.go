package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/logbus"
)

func logMessages(bus *logbus.Bus) []string {
	var out []string
	for _, m := range bus.Snapshot() {
		if d, ok := m.Data.(logbus.LogData); ok {
			out = append(out, d.Msg)
		}
	}
	return out
}

func TestLoadAccounts_LogsCountOnce(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(data, []byte("a\nb\n"), 0o600))
	proxies := filepath.Join(dir, "proxy.txt")
	require.NoError(t, os.WriteFile(proxies, []byte("http://10.0.0.1:8080\n"), 0o600))

	bus := logbus.New(20)
	accs, err := loadAccounts(config.FilesConfig{Data: data, Proxy: proxies}, bus)
	require.NoError(t, err)
	assert.Len(t, accs, 2)

	n := 0
	for _, m := range logMessages(bus) {
		if m == "Accounts loaded" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestLoadAccounts_MissingFile(t *testing.T) {
	bus := logbus.New(20)
	_, err := loadAccounts(config.FilesConfig{Data: filepath.Join(t.TempDir(), "none.txt")}, bus)
	require.Error(t, err)
	assert.Contains(t, logMessages(bus), "Unable to load accounts")
}
