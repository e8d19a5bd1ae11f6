package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "pickups-service", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, 100000, cfg.Data.NRows)
	assert.Equal(t, 60, cfg.Data.HTTPTimeout)
	assert.Equal(t, 300, cfg.Data.ReloadTimeout)
	assert.Equal(t, uint(7), cfg.Data.GeohashPrecision)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.Empty(t, cfg.Redis.Host)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, 120, cfg.RateLimit.ChartsPerMinute)
}

func TestValidate(t *testing.T) {
	valid := func() *models.Config {
		t.Setenv("APP_ENV", "test")
		return InitConfig("")
	}

	tests := []struct {
		name    string
		mutate  func(cfg *models.Config)
		wantErr string
	}{
		{
			name:   "Defaults",
			mutate: func(cfg *models.Config) {},
		},
		{
			name: "Postgres with database",
			mutate: func(cfg *models.Config) {
				cfg.Data.Source = DataSourcePostgres
				cfg.Database.Host = "localhost"
				cfg.Database.Database = "pickups"
			},
		},
		{
			name:    "Postgres without database",
			mutate:  func(cfg *models.Config) { cfg.Data.Source = DataSourcePostgres },
			wantErr: "DB_HOST and DB_DATABASE",
		},
		{
			name:    "Unknown source",
			mutate:  func(cfg *models.Config) { cfg.Data.Source = "parquet" },
			wantErr: `unknown DATA_SOURCE "parquet"`,
		},
		{
			name:    "Missing csv location",
			mutate:  func(cfg *models.Config) { cfg.Data.URL = "" },
			wantErr: "DATA_URL is required",
		},
		{
			name:    "Negative rows",
			mutate:  func(cfg *models.Config) { cfg.Data.NRows = -1 },
			wantErr: "DATA_NROWS",
		},
		{
			name:    "Reload budget equal to one download",
			mutate:  func(cfg *models.Config) { cfg.Data.ReloadTimeout = cfg.Data.HTTPTimeout },
			wantErr: "DATA_RELOAD_TIMEOUT (60s) must exceed DATA_HTTP_TIMEOUT (60s)",
		},
		{
			name:    "Precision too fine",
			mutate:  func(cfg *models.Config) { cfg.Data.GeohashPrecision = 13 },
			wantErr: "GEOHASH_PRECISION",
		},
		{
			name:    "Port out of range",
			mutate:  func(cfg *models.Config) { cfg.Server.Port = 70000 },
			wantErr: "SERVER_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitConfig_FromEnvFile(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	dir := t.TempDir()
	envFile := filepath.Join(dir, "pickups.env")
	content := "DATA_SOURCE=postgres\nDATA_NROWS=500\nSERVER_PORT=9000\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// godotenv does not override variables that are already set
	t.Cleanup(func() {
		os.Unsetenv("DATA_SOURCE")
		os.Unsetenv("DATA_NROWS")
		os.Unsetenv("SERVER_PORT")
	})

	cfg := InitConfig(envFile)

	assert.Equal(t, "postgres", cfg.Data.Source)
	assert.Equal(t, 500, cfg.Data.NRows)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Run("int fallback on invalid value", func(t *testing.T) {
		t.Setenv("PICKUPS_TEST_INT", "not-a-number")
		assert.Equal(t, 42, GetEnvAsInt("PICKUPS_TEST_INT", 42))
	})

	t.Run("int parsed", func(t *testing.T) {
		t.Setenv("PICKUPS_TEST_INT", "17")
		assert.Equal(t, 17, GetEnvAsInt("PICKUPS_TEST_INT", 42))
	})

	t.Run("bool fallback on invalid value", func(t *testing.T) {
		t.Setenv("PICKUPS_TEST_BOOL", "maybe")
		assert.True(t, GetEnvAsBool("PICKUPS_TEST_BOOL", true))
	})

	t.Run("string default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnv("PICKUPS_TEST_UNSET", "fallback"))
	})
}

func TestLoadViews(t *testing.T) {
	t.Run("Defaults when no file", func(t *testing.T) {
		views, err := LoadViews("")
		require.NoError(t, err)
		require.Len(t, views, 4)
		assert.Equal(t, "all", views[0].Name)
		assert.Equal(t, 11.0, views[0].Zoom)
		assert.Equal(t, "jfk", views[2].Name)
		assert.InDelta(t, 40.6650, views[2].Latitude, 1e-9)
	})

	t.Run("YAML file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "views.yaml")
		content := `views:
  - name: Midtown
    title: Midtown Manhattan
    lat: 40.754
    lon: -73.984
    zoom: 13
  - name: all
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		views, err := LoadViews(path)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "midtown", views[0].Name)
		assert.Equal(t, 13.0, views[0].Zoom)
		assert.Equal(t, 50.0, views[0].Pitch)
		assert.Equal(t, "all", views[1].Title)
		assert.Equal(t, 12.0, views[1].Zoom)
	})

	t.Run("Duplicate names rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "views.yaml")
		content := "views:\n  - name: jfk\n  - name: JFK\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadViews(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate view")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadViews(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
