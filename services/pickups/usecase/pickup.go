package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
	"github.com/piresc/pickups/internal/pkg/requestcontext"
	"github.com/piresc/pickups/internal/utils"
	"github.com/piresc/pickups/services/pickups"
	"github.com/piresc/pickups/services/pickups/stats"
)

const (
	DefaultRecordsLimit = 100
	MaxRecordsLimit     = 1000
)

// PickupUC implements pickups.PickupUC
type PickupUC struct {
	repo      pickups.PickupRepo
	store     pickups.DatasetStore
	cache     pickups.SnapshotCache
	gw        pickups.PickupGW
	views     []models.View
	precision uint

	// serializes reloads so two loads never race to Swap
	loadMu sync.Mutex

	aggMu sync.Mutex
	agg   *datasetAggregates
}

// datasetAggregates are whole-dataset results memoized per version
type datasetAggregates struct {
	version  string
	hours    []int
	midpoint *models.Midpoint
}

// NewPickupUC creates the pickup use case. gw may be nil when events are disabled.
func NewPickupUC(
	cfg *models.Config,
	repo pickups.PickupRepo,
	store pickups.DatasetStore,
	cache pickups.SnapshotCache,
	gw pickups.PickupGW,
	views []models.View,
) *PickupUC {
	precision := cfg.Data.GeohashPrecision
	if precision == 0 {
		precision = stats.DefaultPrecision
	}

	return &PickupUC{
		repo:      repo,
		store:     store,
		cache:     cache,
		gw:        gw,
		views:     views,
		precision: precision,
	}
}

// LoadDataset loads a new dataset version, publishes it and announces it.
// On failure the previously served dataset stays in place.
func (uc *PickupUC) LoadDataset(ctx context.Context) (*models.DatasetInfo, error) {
	uc.loadMu.Lock()
	defer uc.loadMu.Unlock()

	start := time.Now()
	ds, err := nrpkg.WithSegmentAndReturn(ctx, "PickupUC.LoadDataset", func() (*models.Dataset, error) {
		return uc.repo.Load(ctx)
	})
	if err != nil {
		logger.Error("Failed to load dataset", append(requestcontext.LogFields(ctx), logger.Err(err))...)
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	elapsed := time.Since(start)

	previous := uc.store.Swap(ds)
	info := ds.Info()

	fields := append(requestcontext.LogFields(ctx),
		logger.Version(info.Version),
		logger.String("source", info.Source),
		logger.Rows(info.Rows),
		logger.Duration("duration", elapsed),
	)
	if previous != nil {
		fields = append(fields, logger.String("previous_version", previous.Version))
	}
	logger.Info("Dataset loaded", fields...)

	if previous != nil && previous.Version != info.Version {
		if err := uc.cache.Purge(ctx, previous.Version); err != nil {
			logger.Warn("Failed to purge snapshots of previous dataset",
				logger.Version(previous.Version),
				logger.Err(err))
		}
	}

	if uc.gw != nil {
		event := models.DatasetLoadedEvent{DatasetInfo: info, Duration: elapsed}
		if err := uc.gw.PublishDatasetLoaded(ctx, event); err != nil {
			logger.Warn("Failed to publish dataset loaded event",
				logger.Version(info.Version),
				logger.Err(err))
		}
	}

	return &info, nil
}

// DatasetInfo describes the dataset currently served
func (uc *PickupUC) DatasetInfo(ctx context.Context) (*models.DatasetInfo, error) {
	ds, err := uc.store.Current()
	if err != nil {
		return nil, err
	}
	info := ds.Info()
	return &info, nil
}

// HourHistogram returns the number of pickups for each hour of the day
func (uc *PickupUC) HourHistogram(ctx context.Context) ([]int, error) {
	ds, err := uc.store.Current()
	if err != nil {
		return nil, err
	}
	return uc.aggregates(ds).hours, nil
}

// HourSnapshot returns everything shown for one hour, computing it on a cache miss
func (uc *PickupUC) HourSnapshot(ctx context.Context, hour int) (*models.HourSnapshot, error) {
	if err := pickups.ValidateHour(hour); err != nil {
		return nil, err
	}

	ds, err := uc.store.Current()
	if err != nil {
		return nil, err
	}

	cached, err := uc.cache.Get(ctx, ds.Version, hour)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, pickups.ErrCacheMiss) {
		logger.Warn("Snapshot cache read failed",
			logger.Version(ds.Version),
			logger.Hour(hour),
			logger.Err(err))
	}

	var snapshot *models.HourSnapshot
	_ = nrpkg.WithSegment(ctx, "PickupUC.ComputeSnapshot", func() error {
		snapshot = uc.computeSnapshot(ds, hour)
		return nil
	})

	if err := uc.cache.Set(ctx, ds.Version, hour, snapshot); err != nil {
		logger.Warn("Snapshot cache write failed",
			logger.Version(ds.Version),
			logger.Hour(hour),
			logger.Err(err))
	}

	return snapshot, nil
}

// Records pages through the raw pickups of an hour and reports their total
func (uc *PickupUC) Records(ctx context.Context, hour, offset, limit int) ([]models.Pickup, int, error) {
	if offset < 0 || limit < 0 {
		return nil, 0, pickups.ErrInvalidPage
	}
	if limit == 0 {
		limit = DefaultRecordsLimit
	}
	if limit > MaxRecordsLimit {
		limit = MaxRecordsLimit
	}

	hourPickups, err := uc.HourPickups(ctx, hour)
	if err != nil {
		return nil, 0, err
	}

	total := len(hourPickups)
	if offset >= total {
		return []models.Pickup{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return hourPickups[offset:end], total, nil
}

// HourPickups returns every pickup of the hour
func (uc *PickupUC) HourPickups(ctx context.Context, hour int) ([]models.Pickup, error) {
	if err := pickups.ValidateHour(hour); err != nil {
		return nil, err
	}

	ds, err := uc.store.Current()
	if err != nil {
		return nil, err
	}
	return stats.FilterByHour(ds.Pickups, hour), nil
}

// Views returns the configured map views
func (uc *PickupUC) Views() []models.View {
	views := make([]models.View, len(uc.views))
	copy(views, uc.views)
	return views
}

func (uc *PickupUC) aggregates(ds *models.Dataset) *datasetAggregates {
	uc.aggMu.Lock()
	defer uc.aggMu.Unlock()

	if uc.agg != nil && uc.agg.version == ds.Version {
		return uc.agg
	}

	agg := &datasetAggregates{
		version: ds.Version,
		hours:   stats.HourHistogram(ds.Pickups),
	}
	if mid, err := stats.Midpoint(ds.Pickups); err == nil {
		agg.midpoint = &mid
	}
	uc.agg = agg
	return agg
}

func (uc *PickupUC) computeSnapshot(ds *models.Dataset, hour int) *models.HourSnapshot {
	hourPickups := stats.FilterByHour(ds.Pickups, hour)

	snapshot := &models.HourSnapshot{
		Hour:     hour,
		NextHour: models.NextHour(hour),
		Pickups:  len(hourPickups),
		Minutes:  stats.MinuteHistogram(hourPickups),
		Views:    make([]models.MapView, 0, len(uc.views)),
	}
	if mid, err := stats.Midpoint(hourPickups); err == nil {
		snapshot.Midpoint = &mid
	}

	center := uc.aggregates(ds).midpoint
	for _, view := range uc.views {
		view = resolveView(view, center)
		visible := stats.PickupsInView(hourPickups, view, stats.MapWidth, stats.MapHeight)

		mapView := models.MapView{
			View:    view,
			Pickups: len(visible),
			Bins:    stats.BinPickups(visible, uc.precision),
		}
		if center != nil {
			mapView.DistanceKm = utils.CalculateDistance(
				utils.GeoPoint{Latitude: center.Latitude, Longitude: center.Longitude},
				utils.GeoPointFromView(view),
			)
		}
		snapshot.Views = append(snapshot.Views, mapView)
	}

	return snapshot
}

// resolveView centres views without coordinates on the dataset midpoint
func resolveView(view models.View, center *models.Midpoint) models.View {
	if view.Latitude == 0 && view.Longitude == 0 && center != nil {
		view.Latitude = center.Latitude
		view.Longitude = center.Longitude
	}
	return view
}
