package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
	"github.com/piresc/pickups/internal/pkg/retry"
	"github.com/piresc/pickups/services/pickups/dataset"
)

// CSVRepo loads pickups from a CSV file or URL
type CSVRepo struct {
	location string
	loader   *dataset.Loader
	retrier  *retry.Retrier
}

// NewCSVRepository creates a repository reading cfg.Data.URL
func NewCSVRepository(cfg *models.Config) *CSVRepo {
	timeout := time.Duration(cfg.Data.HTTPTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	retryConfig := retry.DefaultConfig()
	retryConfig.RetryableFunc = func(err error) bool {
		return errors.Is(err, dataset.ErrDownload)
	}

	return &CSVRepo{
		location: cfg.Data.URL,
		loader:   dataset.NewLoader(nrpkg.NewHTTPClient(timeout), cfg.Data.NRows),
		retrier:  retry.New(retryConfig, nil),
	}
}

// Load reads the whole source into a new dataset version
func (r *CSVRepo) Load(ctx context.Context) (*models.Dataset, error) {
	logger.Info("Loading pickups from CSV", logger.String("location", r.location))

	var pickups []models.Pickup
	err := r.retrier.Execute(ctx, func(ctx context.Context) error {
		var err error
		pickups, err = r.loader.Load(ctx, r.location)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load csv dataset: %w", err)
	}

	return &models.Dataset{
		Version:  uuid.New().String(),
		Source:   r.location,
		LoadedAt: models.Now(),
		Pickups:  pickups,
	}, nil
}
