package engine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"iceberg_farmer/internal/accounts"
	"iceberg_farmer/internal/console"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// Run repeats passes over accs, separated by the cool-down countdown, until ctx
// is cancelled.
func (e *Engine) Run(ctx context.Context, accs []model.Account) error {
	e.setRunning(true)
	defer e.setRunning(false)

	for {
		report := e.RunPass(ctx, accs)
		if err := ctx.Err(); err != nil {
			return err
		}
		e.afterPass(ctx, report)

		if err := e.countdown(ctx, e.cooldownSeconds); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			e.bus.Log(logbus.LevelWarn, "countdown interrupted", map[string]any{"error": err.Error()})
		}
	}
}

// RunPass processes every account once, strictly in order.
func (e *Engine) RunPass(ctx context.Context, accs []model.Account) model.PassReport {
	e.mu.Lock()
	e.passes++
	number := e.passes
	e.mu.Unlock()

	report := model.PassReport{
		ID:        uuid.NewString(),
		Number:    number,
		StartedAt: e.now(),
		Accounts:  make([]model.AccountReport, 0, len(accs)),
	}
	e.bus.Log(logbus.LevelDebug, "pass started", map[string]any{"pass": number, "accounts": len(accs)})

	for _, acc := range accs {
		if ctx.Err() != nil {
			break
		}
		rep, ran := e.runAccount(ctx, acc)
		report.Accounts = append(report.Accounts, rep)
		if !ran {
			continue
		}
		if err := e.sleep(ctx, e.pacing.AccountPause); err != nil {
			break
		}
	}

	report.FinishedAt = e.now()
	return report
}

// runAccount reports ran=false when the account was skipped before any workflow.
func (e *Engine) runAccount(ctx context.Context, acc model.Account) (model.AccountReport, bool) {
	rep := model.AccountReport{Index: acc.Index}

	user, err := accounts.ParseUser(acc.Auth)
	if err != nil {
		e.log(logbus.LevelError, acc, "Unable to parse auth data: "+err.Error(), nil)
		rep.Skipped = true
		rep.SkipReason = err.Error()
		return rep, false
	}
	rep.UserID = user.ID.String()
	rep.FirstName = user.FirstName

	proxyIP := "No proxy"
	if acc.HasProxy() {
		if e.verifyProxy {
			ip, err := e.provider.CheckProxyIP(ctx, acc.Proxy)
			if err != nil {
				e.log(logbus.LevelWarn, acc, "Error checking proxy IP: "+err.Error(), nil)
				rep.Skipped = true
				rep.SkipReason = err.Error()
				return rep, false
			}
			proxyIP = ip
		} else {
			proxyIP = "unverified proxy"
		}
	}
	rep.ProxyIP = proxyIP

	e.bus.Log(logbus.LevelInfo, console.AccountHeader(acc.Index, user.FirstName, proxyIP), map[string]any{
		"account": acc.Index + 1,
		"userId":  rep.UserID,
	})

	rep.Balance = e.CheckBalance(ctx, acc, rep.UserID)

	e.log(logbus.LevelInfo, acc, "Checking farming status...", nil)
	rep.Farming = e.RunFarming(ctx, acc)
	if !rep.Farming.Success {
		e.log(logbus.LevelError, acc, "Farming error: "+rep.Farming.Error, nil)
	}

	e.log(logbus.LevelInfo, acc, "Checking tasks...", nil)
	rep.Tasks = e.RunTasks(ctx, acc)
	if !rep.Tasks.Success {
		e.log(logbus.LevelError, acc, "Error processing tasks: "+rep.Tasks.Error, nil)
	}

	e.log(logbus.LevelInfo, acc, "Checking ads...", nil)
	rep.Ads = e.RunAds(ctx, acc)

	return rep, true
}

func (e *Engine) afterPass(ctx context.Context, report model.PassReport) {
	e.mu.Lock()
	cp := report
	e.lastPass = &cp
	e.mu.Unlock()

	e.bus.Publish("pass_report", report)
	e.bus.Log(logbus.LevelInfo, "Pass completed", map[string]any{
		"pass":      report.Number,
		"accounts":  len(report.Accounts),
		"skipped":   report.Skipped(),
		"adsViewed": report.AdsViewed(),
	})

	if e.journal != nil {
		if err := e.journal.SavePassReport(ctx, report); err != nil {
			e.bus.Log(logbus.LevelWarn, "Unable to write pass journal", map[string]any{"error": err.Error()})
		}
	}
	if e.notifier != nil {
		e.notifier.NotifyPassCompleted(ctx, report)
	}
}
