package engine

import (
	"context"
	"fmt"
	"net/http"

	"iceberg_farmer/internal/errs"
	"iceberg_farmer/internal/httpx"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// RunAds watches ads until the daily cap is reached or an attempt fails.
func (e *Engine) RunAds(ctx context.Context, acc model.Account) model.AdsSummary {
	var sum model.AdsSummary
	for {
		res := e.ViewAd(ctx, acc)
		if !res.Success {
			if res.Reason == model.ReasonLimitReached {
				sum.StopCause = model.ReasonLimitReached
				return sum
			}
			e.log(logbus.LevelError, acc, "Error processing ads: "+res.Error, nil)
			sum.StopCause = res.Error
			return sum
		}
		sum.Viewed++
		sum.LastCount = res.NewCount
		if err := e.sleep(ctx, e.pacing.AdGap); err != nil {
			sum.StopCause = err.Error()
			return sum
		}
	}
}

// ViewAd runs one ad interaction, retrying HTTP 400 answers up to maxAdRetries
// times. Failures come back as a Result, never as an error.
func (e *Engine) ViewAd(ctx context.Context, acc model.Account) model.Result {
	for retry := 0; ; retry++ {
		count, limited, err := e.viewAdOnce(ctx, acc)
		if err == nil {
			if limited {
				return model.Result{Success: false, Reason: model.ReasonLimitReached}
			}
			return model.Result{Success: true, NewCount: count}
		}

		if httpx.IsStatus(err, http.StatusBadRequest) && retry < maxAdRetries {
			e.log(logbus.LevelWarn, acc, fmt.Sprintf("Attempt %d failed, retrying...", retry+1), nil)
			if serr := e.sleep(ctx, e.pacing.AdRetryWait); serr != nil {
				return model.Failed(serr)
			}
			continue
		}

		e.log(logbus.LevelError, acc, fmt.Sprintf("Ad Viewing Failed After %d Attempts: %s", retry+1, err.Error()), nil)
		return model.Failed(err)
	}
}

func (e *Engine) viewAdOnce(ctx context.Context, acc model.Account) (newCount int, limited bool, err error) {
	user, err := e.provider.CurrentUser(ctx, acc)
	if err != nil {
		return 0, false, err
	}
	if user.AdsgramCounter == nil {
		return 0, false, fmt.Errorf("%w: adsgram_counter", errs.ErrMissingField)
	}
	before := *user.AdsgramCounter
	if before >= maxAdViews {
		e.log(logbus.LevelWarn, acc, fmt.Sprintf("Reached the limit of ad views (%d/%d)", maxAdViews, maxAdViews), nil)
		return before, true, nil
	}
	e.log(logbus.LevelInfo, acc, fmt.Sprintf("Current ad count: %d/%d", before, maxAdViews), nil)

	banner, err := e.provider.FetchAd(ctx, acc, user.ChatID.String())
	if err != nil {
		return 0, false, err
	}
	urls := make(map[string]string, 3)
	for _, name := range []string{"render", "show", "reward"} {
		u, ok := banner.Tracking(name)
		if !ok {
			return 0, false, fmt.Errorf("%w: tracking %q", errs.ErrMissingField, name)
		}
		urls[name] = u
	}

	if err := e.provider.Track(ctx, acc, urls["render"]); err != nil {
		return 0, false, err
	}
	if err := e.sleep(ctx, e.pacing.AdRenderDwell); err != nil {
		return 0, false, err
	}
	if err := e.provider.Track(ctx, acc, urls["show"]); err != nil {
		return 0, false, err
	}
	if err := e.sleep(ctx, e.pacing.AdShowDwell); err != nil {
		return 0, false, err
	}
	if err := e.provider.Track(ctx, acc, urls["reward"]); err != nil {
		return 0, false, err
	}

	after, err := e.provider.CurrentUser(ctx, acc)
	if err != nil {
		return 0, false, err
	}
	if after.AdsgramCounter == nil {
		return 0, false, fmt.Errorf("%w: adsgram_counter", errs.ErrMissingField)
	}
	if *after.AdsgramCounter != before+1 {
		return 0, false, fmt.Errorf("%w: expected %d, got %d", errs.ErrAdNotCounted, before+1, *after.AdsgramCounter)
	}

	e.log(logbus.LevelSuccess, acc, fmt.Sprintf("Ad Viewed Successfully. Viewed: %d/%d", *after.AdsgramCounter, maxAdViews), nil)
	return *after.AdsgramCounter, false, nil
}
