package accounts

import (
	"fmt"
	"os"
	"strings"

	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// ReadLines returns the non-empty lines of path with carriage returns removed.
func ReadLines(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(string(b)), nil
}

func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	out := make([]string, 0, strings.Count(s, "\n")+1)
	for _, line := range strings.Split(s, "\n") {
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Load reads the credential file (required) and the proxy file (optional) and
// pairs them by line index.
func Load(dataPath, proxyPath string, bus *logbus.Bus) ([]model.Account, error) {
	auths, err := ReadLines(dataPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", dataPath, err)
	}
	if len(auths) == 0 {
		return nil, fmt.Errorf("%s: %w", dataPath, errs.ErrNoCredentials)
	}

	var proxies []string
	if proxyPath != "" {
		proxies, err = ReadLines(proxyPath)
		if err != nil {
			if bus != nil {
				bus.Log(logbus.LevelWarn, "Unable to read proxy file, running without proxies", map[string]any{
					"path":  proxyPath,
					"error": err.Error(),
				})
			}
			proxies = nil
		}
	}

	accounts := Pair(auths, proxies)
	if bus != nil {
		bus.Log(logbus.LevelInfo, "Accounts loaded", map[string]any{
			"accounts": len(accounts),
			"proxies":  len(proxies),
		})
	}
	return accounts, nil
}

// Pair matches proxy i to account i; accounts past the end of the proxy list
// connect directly.
func Pair(auths, proxies []string) []model.Account {
	out := make([]model.Account, 0, len(auths))
	for i, auth := range auths {
		acc := model.Account{Index: i, Auth: auth}
		if i < len(proxies) {
			acc.Proxy = strings.TrimSpace(proxies[i])
		}
		out = append(out, acc)
	}
	return out
}
