package pickups

import (
	"context"

	"github.com/piresc/pickups/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/pickups/services/pickups PickupUC

// PickupUC defines the pickup analytics use cases
type PickupUC interface {
	// LoadDataset (re)loads pickups from the configured source and publishes it
	LoadDataset(ctx context.Context) (*models.DatasetInfo, error)
	DatasetInfo(ctx context.Context) (*models.DatasetInfo, error)

	// HourHistogram counts pickups per hour of day over the whole dataset
	HourHistogram(ctx context.Context) ([]int, error)
	HourSnapshot(ctx context.Context, hour int) (*models.HourSnapshot, error)
	Records(ctx context.Context, hour, offset, limit int) ([]models.Pickup, int, error)

	// HourPickups returns every pickup of an hour, used for map rendering
	HourPickups(ctx context.Context, hour int) ([]models.Pickup, error)
	Views() []models.View
}
