package stats

import (
	"math"
	"sort"

	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/internal/utils"
)

const (
	// DefaultPrecision gives cells of roughly 150m
	DefaultPrecision uint = 7

	MapWidth  = 640
	MapHeight = 480

	tileSize = 256
)

// Bounds is a latitude/longitude rectangle
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point lies inside the rectangle, edges included
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// ViewBounds approximates the web-mercator viewport of a view rendered at
// widthPx x heightPx.
func ViewBounds(view models.View, widthPx, heightPx int) Bounds {
	if widthPx <= 0 {
		widthPx = MapWidth
	}
	if heightPx <= 0 {
		heightPx = MapHeight
	}

	lonSpan := 360 / math.Pow(2, view.Zoom) * float64(widthPx) / tileSize
	latSpan := lonSpan * math.Cos(view.Latitude*math.Pi/180) * float64(heightPx) / float64(widthPx)

	return Bounds{
		MinLat: view.Latitude - latSpan/2,
		MaxLat: view.Latitude + latSpan/2,
		MinLon: view.Longitude - lonSpan/2,
		MaxLon: view.Longitude + lonSpan/2,
	}
}

// InView reports whether a pickup is visible in the view
func InView(p models.Pickup, view models.View, widthPx, heightPx int) bool {
	return ViewBounds(view, widthPx, heightPx).Contains(p.Latitude, p.Longitude)
}

// PickupsInView returns the pickups visible in the view
func PickupsInView(pickups []models.Pickup, view models.View, widthPx, heightPx int) []models.Pickup {
	bounds := ViewBounds(view, widthPx, heightPx)
	visible := make([]models.Pickup, 0)
	for _, p := range pickups {
		if bounds.Contains(p.Latitude, p.Longitude) {
			visible = append(visible, p)
		}
	}
	return visible
}

// BinPickups groups pickups by geohash cell, most populated cells first
func BinPickups(pickups []models.Pickup, precision uint) []models.GeoBin {
	if precision == 0 {
		precision = DefaultPrecision
	}

	counts := make(map[string]int)
	for _, p := range pickups {
		hash := utils.EncodeGeohash(utils.GeoPointFromPickup(p), precision)
		counts[hash]++
	}

	bins := make([]models.GeoBin, 0, len(counts))
	for hash, count := range counts {
		center := utils.GeohashCenter(hash)
		bins = append(bins, models.GeoBin{
			Geohash:   hash,
			Latitude:  center.Latitude,
			Longitude: center.Longitude,
			Count:     count,
		})
	}

	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Count != bins[j].Count {
			return bins[i].Count > bins[j].Count
		}
		return bins[i].Geohash < bins[j].Geohash
	})
	return bins
}
