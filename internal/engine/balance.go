package engine

import (
	"context"
	"fmt"

	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// CheckBalance only reads; its outcome never influences the other workflows.
func (e *Engine) CheckBalance(ctx context.Context, acc model.Account, userID string) *model.Balance {
	e.log(logbus.LevelInfo, acc, fmt.Sprintf("Checking balance for account %s...", userID), nil)
	bal, err := e.provider.Balance(ctx, acc)
	if err != nil {
		e.log(logbus.LevelError, acc, "Unable to fetch balance: "+err.Error(), nil)
		return nil
	}
	e.log(logbus.LevelSuccess, acc, "Balance: "+bal.Amount.String(), nil)
	e.log(logbus.LevelInfo, acc, fmt.Sprintf("Count reset: %v", bal.CountReset), nil)
	return &bal
}
