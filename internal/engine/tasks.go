package engine

import (
	"context"
	"fmt"

	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
)

// RunTasks drives every new task through in_work, ready_collect and collected,
// one task at a time. A rejected transition skips the rest of that task; an
// error aborts the whole cycle.
func (e *Engine) RunTasks(ctx context.Context, acc model.Account) model.Result {
	tasks, err := e.provider.Tasks(ctx, acc)
	if err != nil {
		return model.Failed(err)
	}

	for _, task := range tasks {
		if task.Status != model.TaskStatusNew {
			continue
		}
		id := task.ID.String()

		ok, err := e.provider.UpdateTask(ctx, acc, id, model.TaskStatusInWork)
		if err != nil {
			return model.Failed(err)
		}
		if !ok {
			e.log(logbus.LevelError, acc, "Unable to start task "+id, nil)
			continue
		}

		if err := e.sleep(ctx, e.pacing.TaskDwell); err != nil {
			return model.Failed(err)
		}

		ok, err = e.provider.UpdateTask(ctx, acc, id, model.TaskStatusReadyCollect)
		if err != nil {
			return model.Failed(err)
		}
		if !ok {
			e.log(logbus.LevelError, acc, "Unable to complete task "+id, nil)
			continue
		}

		ok, err = e.provider.UpdateTask(ctx, acc, id, model.TaskStatusCollected)
		if err != nil {
			return model.Failed(err)
		}
		if ok {
			e.log(logbus.LevelSuccess, acc, fmt.Sprintf("Successfully completed task %s | Reward: %s", task.Description, task.Price), map[string]any{
				"taskId": id,
			})
		} else {
			e.log(logbus.LevelError, acc, "Unable to collect reward for task "+id, nil)
		}

		if err := e.sleep(ctx, e.pacing.TaskGap); err != nil {
			return model.Failed(err)
		}
	}
	return model.OK()
}
