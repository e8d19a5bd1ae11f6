package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piresc/pickups/internal/pkg/models"
)

const pngMagic = "\x89PNG"

func jfkView() models.MapView {
	return models.MapView{
		View: models.View{Name: "jfk", Title: "JFK Airport", Latitude: 40.6650, Longitude: -73.7821, Zoom: 12},
	}
}

func TestRenderHourChart(t *testing.T) {
	hist := make([]int, 24)
	hist[17] = 40
	hist[23] = 12

	img, err := RenderHourChart(hist, 17)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:4]))

	t.Run("All zero", func(t *testing.T) {
		img, err := RenderHourChart(make([]int, 24), 0)
		require.NoError(t, err)
		assert.Equal(t, pngMagic, string(img[:4]))
	})
}

func TestRenderMinuteChart(t *testing.T) {
	minutes := make([]int, 60)
	minutes[5] = 3

	img, err := RenderMinuteChart(minutes)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:4]))

	t.Run("All zero", func(t *testing.T) {
		img, err := RenderMinuteChart(make([]int, 60))
		require.NoError(t, err)
		assert.Equal(t, pngMagic, string(img[:4]))
	})

	t.Run("No minutes", func(t *testing.T) {
		_, err := RenderMinuteChart(nil)
		assert.Error(t, err)
	})
}

func TestRenderMap(t *testing.T) {
	view := jfkView()
	view.Pickups = 7
	view.Bins = []models.GeoBin{
		{Geohash: "dr5x34c", Latitude: 40.6650, Longitude: -73.7821, Count: 5},
		{Geohash: "dr5x1gz", Latitude: 40.6413, Longitude: -73.7781, Count: 2},
	}

	img, err := RenderMap(view)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, string(img[:4]))

	t.Run("Empty view", func(t *testing.T) {
		img, err := RenderMap(jfkView())
		require.NoError(t, err)
		assert.Equal(t, pngMagic, string(img[:4]))
	})
}

func TestSizeClass(t *testing.T) {
	tests := []struct {
		count, max int
		expected   int
	}{
		{count: 1, max: 0, expected: 0},
		{count: 1, max: 100, expected: 0},
		{count: 26, max: 100, expected: 1},
		{count: 50, max: 100, expected: 1},
		{count: 51, max: 100, expected: 2},
		{count: 100, max: 100, expected: 3},
		{count: 1, max: 1, expected: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sizeClass(tt.count, tt.max), "count=%d max=%d", tt.count, tt.max)
	}
}

func TestTicks(t *testing.T) {
	hours := ticks(24, 3)
	require.NotEmpty(t, hours)
	assert.Equal(t, 0.0, hours[0].Value)
	assert.Equal(t, 23.0, hours[len(hours)-1].Value)
	assert.Equal(t, "23", hours[len(hours)-1].Label)

	assert.Len(t, ticks(7, 3), 3)
}

func TestYMax(t *testing.T) {
	assert.Equal(t, 1.0, yMax(nil))
	assert.Equal(t, 1.0, yMax([]int{0, 0}))
	assert.Equal(t, 9.0, yMax([]int{3, 9, 1}))
}
