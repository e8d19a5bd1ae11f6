package stats

import (
	"testing"
	"time"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickupAt(hour, minute int, lat, lon float64) models.Pickup {
	return models.Pickup{
		PickupAt:  time.Date(2014, 9, 1, hour, minute, 0, 0, time.UTC),
		Latitude:  lat,
		Longitude: lon,
	}
}

func TestFilterByHour(t *testing.T) {
	pickups := []models.Pickup{
		pickupAt(0, 1, 40.7, -73.9),
		pickupAt(17, 0, 40.7, -73.9),
		pickupAt(17, 59, 40.8, -74.0),
		pickupAt(18, 0, 40.8, -74.0),
	}

	tests := []struct {
		name     string
		hour     int
		expected int
	}{
		{"Start of day", 0, 1},
		{"Hour boundaries", 17, 2},
		{"Next hour starts at :00", 18, 1},
		{"No pickups", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterByHour(pickups, tt.hour)
			assert.Len(t, filtered, tt.expected)
			for _, p := range filtered {
				assert.Equal(t, tt.hour, p.PickupAt.Hour())
			}
		})
	}

	assert.NotNil(t, FilterByHour(nil, 3))
}

func TestHistogram(t *testing.T) {
	tests := []struct {
		name     string
		values   []int
		bins     int
		lo, hi   int
		expected []int
	}{
		{
			name:     "Unit bins",
			values:   []int{0, 1, 1, 3},
			bins:     4,
			lo:       0,
			hi:       4,
			expected: []int{1, 2, 0, 1},
		},
		{
			name:     "Upper edge lands in last bin",
			values:   []int{4},
			bins:     4,
			lo:       0,
			hi:       4,
			expected: []int{0, 0, 0, 1},
		},
		{
			name:     "Out of range dropped",
			values:   []int{-1, 5, 2},
			bins:     4,
			lo:       0,
			hi:       4,
			expected: []int{0, 0, 1, 0},
		},
		{
			name:     "Wide bins",
			values:   []int{0, 1, 2, 3, 9, 10},
			bins:     2,
			lo:       0,
			hi:       10,
			expected: []int{4, 2},
		},
		{
			name:     "Empty input",
			values:   nil,
			bins:     3,
			lo:       0,
			hi:       3,
			expected: []int{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Histogram(tt.values, tt.bins, tt.lo, tt.hi))
		})
	}

	assert.Empty(t, Histogram([]int{1}, 0, 0, 1))
	assert.Equal(t, []int{0, 0}, Histogram([]int{1}, 2, 5, 5))
}

func TestHourHistogram(t *testing.T) {
	pickups := []models.Pickup{
		pickupAt(0, 0, 0, 0),
		pickupAt(0, 30, 0, 0),
		pickupAt(12, 0, 0, 0),
		pickupAt(23, 59, 0, 0),
	}

	hist := HourHistogram(pickups)

	require.Len(t, hist, HoursPerDay)
	assert.Equal(t, 2, hist[0])
	assert.Equal(t, 1, hist[12])
	assert.Equal(t, 1, hist[23])

	sum := 0
	for _, c := range hist {
		sum += c
	}
	assert.Equal(t, len(pickups), sum)
}

func TestMinuteHistogram(t *testing.T) {
	pickups := []models.Pickup{
		pickupAt(17, 0, 0, 0),
		pickupAt(17, 0, 0, 0),
		pickupAt(17, 59, 0, 0),
	}

	hist := MinuteHistogram(pickups)

	require.Len(t, hist, MinutesPerHour)
	assert.Equal(t, 2, hist[0])
	assert.Equal(t, 1, hist[59])

	empty := MinuteHistogram(nil)
	assert.Len(t, empty, MinutesPerHour)
	for _, c := range empty {
		assert.Zero(t, c)
	}
}

func TestMean(t *testing.T) {
	mean, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, mean)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMidpoint(t *testing.T) {
	mid, err := Midpoint([]models.Pickup{
		pickupAt(1, 0, 40.7, -73.9),
		pickupAt(1, 0, 40.8, -74.1),
	})
	require.NoError(t, err)
	assert.InDelta(t, 40.75, mid.Latitude, 1e-9)
	assert.InDelta(t, -74.0, mid.Longitude, 1e-9)

	_, err = Midpoint([]models.Pickup{})
	assert.ErrorIs(t, err, ErrEmpty)
}
