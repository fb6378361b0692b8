package provider

import (
	"context"

	"iceberg_farmer/internal/model"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks iceberg_farmer/internal/provider Provider

// Provider is everything the engine needs from the remote site and the ad network.
// Methods return an error for transport failures and unexpected statuses.
type Provider interface {
	Name() string

	CheckProxyIP(ctx context.Context, proxy string) (string, error)

	Balance(ctx context.Context, account model.Account) (model.Balance, error)

	// FarmingStatus returns nil when no farming cycle exists.
	FarmingStatus(ctx context.Context, account model.Account) (*model.Farming, error)
	// StartFarming reports started=false, without error, for 2xx answers other than 200.
	StartFarming(ctx context.Context, account model.Account) (farming model.Farming, started bool, err error)
	CollectFarming(ctx context.Context, account model.Account) error

	Tasks(ctx context.Context, account model.Account) ([]model.Task, error)
	// UpdateTask returns the success flag of the transition response.
	UpdateTask(ctx context.Context, account model.Account, taskID string, status model.TaskStatus) (bool, error)

	CurrentUser(ctx context.Context, account model.Account) (model.CurrentUser, error)
	FetchAd(ctx context.Context, account model.Account, chatID string) (model.AdBanner, error)
	Track(ctx context.Context, account model.Account, trackingURL string) error
}
