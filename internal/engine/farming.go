package engine

import (
	"context"

	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// RunFarming moves the farming cycle one step: start when idle, report the time
// left while running, harvest and restart once stop_time has passed.
func (e *Engine) RunFarming(ctx context.Context, acc model.Account) model.Result {
	farm, err := e.provider.FarmingStatus(ctx, acc)
	if err != nil {
		return model.Failed(err)
	}

	if farm == nil {
		if err := e.startFarming(ctx, acc); err != nil {
			return model.Failed(err)
		}
		return model.OK()
	}

	now := e.now()
	if farm.StopTime.After(now) {
		e.log(logbus.LevelInfo, acc, "Farming is running - Time left: "+formatClock(farm.StopTime.Sub(now)), nil)
		return model.OK()
	}

	if err := e.provider.CollectFarming(ctx, acc); err != nil {
		return model.Failed(err)
	}
	e.log(logbus.LevelSuccess, acc, "Successfully harvested farm", nil)

	if err := e.startFarming(ctx, acc); err != nil {
		return model.Failed(err)
	}
	return model.OK()
}

// startFarming logs only when the site answers 200; other 2xx answers are
// passed over silently.
func (e *Engine) startFarming(ctx context.Context, acc model.Account) error {
	farm, started, err := e.provider.StartFarming(ctx, acc)
	if err != nil {
		return err
	}
	if started {
		e.log(logbus.LevelSuccess, acc, "Started new farming - Completion time: "+formatClock(farm.Duration()), nil)
	}
	return nil
}
