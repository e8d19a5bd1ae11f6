package stats

import (
	"errors"

	"github.com/piresc/pickups/internal/pkg/models"
)

const (
	HoursPerDay    = 24
	MinutesPerHour = 60
)

// ErrEmpty is returned when an aggregate is requested over no values
var ErrEmpty = errors.New("no values to aggregate")

// FilterByHour returns the pickups whose hour of day equals hour
func FilterByHour(pickups []models.Pickup, hour int) []models.Pickup {
	filtered := make([]models.Pickup, 0)
	for _, p := range pickups {
		if p.PickupAt.Hour() == hour {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Histogram counts values into bins equal-width bins over [lo, hi].
// Values outside the range are dropped; hi itself lands in the last bin.
func Histogram(values []int, bins, lo, hi int) []int {
	if bins <= 0 {
		return []int{}
	}
	counts := make([]int, bins)
	if hi <= lo {
		return counts
	}

	width := float64(hi-lo) / float64(bins)
	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		if v == hi {
			counts[bins-1]++
			continue
		}
		idx := int(float64(v-lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts
}

// HourHistogram counts pickups per hour of day
func HourHistogram(pickups []models.Pickup) []int {
	hours := make([]int, len(pickups))
	for i, p := range pickups {
		hours[i] = p.PickupAt.Hour()
	}
	return Histogram(hours, HoursPerDay, 0, HoursPerDay)
}

// MinuteHistogram counts pickups per minute of the hour
func MinuteHistogram(pickups []models.Pickup) []int {
	minutes := make([]int, len(pickups))
	for i, p := range pickups {
		minutes[i] = p.PickupAt.Minute()
	}
	return Histogram(minutes, MinutesPerHour, 0, MinutesPerHour)
}

// Mean returns the arithmetic mean of values
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Midpoint returns the mean latitude and longitude of the pickups
func Midpoint(pickups []models.Pickup) (models.Midpoint, error) {
	if len(pickups) == 0 {
		return models.Midpoint{}, ErrEmpty
	}

	lats := make([]float64, len(pickups))
	lons := make([]float64, len(pickups))
	for i, p := range pickups {
		lats[i] = p.Latitude
		lons[i] = p.Longitude
	}

	lat, _ := Mean(lats)
	lon, _ := Mean(lons)
	return models.Midpoint{Latitude: lat, Longitude: lon}, nil
}
