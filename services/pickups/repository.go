package pickups

import (
	"context"

	"github.com/piresc/pickups/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/pickups/services/pickups PickupRepo,SnapshotCache

// PickupRepo loads a fresh dataset from a pickup source
type PickupRepo interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// SnapshotCache memoizes per-hour snapshots for a dataset version
type SnapshotCache interface {
	Get(ctx context.Context, version string, hour int) (*models.HourSnapshot, error)
	Set(ctx context.Context, version string, hour int, snapshot *models.HourSnapshot) error
	// Purge drops every snapshot of a version that is no longer served
	Purge(ctx context.Context, version string) error
}

// DatasetStore holds the dataset currently being served
type DatasetStore interface {
	Current() (*models.Dataset, error)
	Swap(ds *models.Dataset) *models.Dataset
}
