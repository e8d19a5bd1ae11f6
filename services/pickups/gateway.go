package pickups

import (
	"context"

	"github.com/piresc/pickups/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/pickups/services/pickups PickupGW

// PickupGW publishes pickup service events
type PickupGW interface {
	PublishDatasetLoaded(ctx context.Context, event models.DatasetLoadedEvent) error
}
