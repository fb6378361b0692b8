package notify

import (
	"context"

	"iceberg_farmer/internal/model"
)

type Notifier interface {
	NotifyPassCompleted(ctx context.Context, report model.PassReport)
}
