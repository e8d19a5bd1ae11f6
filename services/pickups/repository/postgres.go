package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
)

const selectPickups = `SELECT pickup_at, lat, lon FROM pickups ORDER BY pickup_at`

// PostgresRepo loads pickups from the pickups table
type PostgresRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPostgresRepository creates a repository backed by db
func NewPostgresRepository(cfg *models.Config, db *sqlx.DB) *PostgresRepo {
	return &PostgresRepo{
		cfg: cfg,
		db:  db,
	}
}

// Load selects up to cfg.Data.NRows pickups ordered by pickup time
func (r *PostgresRepo) Load(ctx context.Context) (*models.Dataset, error) {
	query := selectPickups
	args := []interface{}{}
	if r.cfg.Data.NRows > 0 {
		query += ` LIMIT $1`
		args = append(args, r.cfg.Data.NRows)
	}

	var pickups []models.Pickup
	err := nrpkg.WithDatastoreSegment(ctx, newrelic.DatastorePostgres, "pickups", "SELECT", func() error {
		return r.db.SelectContext(ctx, &pickups, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pickups: %w", err)
	}

	for i := range pickups {
		pickups[i].PickupAt = pickups[i].PickupAt.UTC()
	}

	logger.Info("Loaded pickups from postgres", logger.Rows(len(pickups)))

	return &models.Dataset{
		Version:  uuid.New().String(),
		Source:   "postgres:" + r.cfg.Database.Database + "/pickups",
		LoadedAt: models.Now(),
		Pickups:  pickups,
	}, nil
}
