package config

import (
	"fmt"
	"strings"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/spf13/viper"
)

const defaultPitch = 50

// DefaultViews are the city-wide view and the three regional airports.
// A view with zero coordinates is centred on the dataset midpoint.
func DefaultViews() []models.View {
	return []models.View{
		{Name: "all", Title: "All New York City", Zoom: 11, Pitch: defaultPitch},
		{Name: "laguardia", Title: "La Guardia Airport", Latitude: 40.7900, Longitude: -73.8700, Zoom: 12, Pitch: defaultPitch},
		{Name: "jfk", Title: "JFK Airport", Latitude: 40.6650, Longitude: -73.7821, Zoom: 12, Pitch: defaultPitch},
		{Name: "newark", Title: "Newark Airport", Latitude: 40.7090, Longitude: -74.1805, Zoom: 12, Pitch: defaultPitch},
	}
}

// LoadViews reads map views from a YAML/JSON/TOML file.
// An empty path returns DefaultViews.
func LoadViews(path string) ([]models.View, error) {
	if path == "" {
		return DefaultViews(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read views file: %w", err)
	}

	var views []models.View
	if err := v.UnmarshalKey("views", &views); err != nil {
		return nil, fmt.Errorf("failed to decode views: %w", err)
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("views file %s defines no views", path)
	}

	seen := make(map[string]bool, len(views))
	for i := range views {
		views[i].Name = strings.ToLower(strings.TrimSpace(views[i].Name))
		if views[i].Name == "" {
			return nil, fmt.Errorf("view %d has no name", i)
		}
		if seen[views[i].Name] {
			return nil, fmt.Errorf("duplicate view %q", views[i].Name)
		}
		seen[views[i].Name] = true

		if views[i].Title == "" {
			views[i].Title = views[i].Name
		}
		if views[i].Zoom <= 0 {
			views[i].Zoom = 12
		}
		if views[i].Pitch == 0 {
			views[i].Pitch = defaultPitch
		}
	}

	return views, nil
}
