package models

import "time"

// Pickup represents a single ride pickup record
type Pickup struct {
	PickupAt  time.Time `json:"pickup_at" db:"pickup_at"`
	Latitude  float64   `json:"lat" db:"lat"`
	Longitude float64   `json:"lon" db:"lon"`
}

// Dataset is an immutable snapshot of loaded pickups
type Dataset struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
	Pickups  []Pickup  `json:"-"`
}

// Info returns the public description of the dataset
func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		Version:  d.Version,
		Source:   d.Source,
		Rows:     len(d.Pickups),
		LoadedAt: d.LoadedAt,
	}
}

// DatasetInfo describes the currently loaded dataset
type DatasetInfo struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// DatasetLoadedEvent is published after a dataset (re)load
type DatasetLoadedEvent struct {
	DatasetInfo
	Duration time.Duration `json:"duration_ns"`
}

// DatasetReloadRequest is the payload accepted on the reload subject
type DatasetReloadRequest struct {
	RequestedBy string `json:"requested_by,omitempty"`
}

// Midpoint is the mean location of a set of pickups
type Midpoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// View is a named map viewport
type View struct {
	Name      string  `json:"name" mapstructure:"name"`
	Title     string  `json:"title" mapstructure:"title"`
	Latitude  float64 `json:"lat" mapstructure:"lat"`
	Longitude float64 `json:"lon" mapstructure:"lon"`
	Zoom      float64 `json:"zoom" mapstructure:"zoom"`
	Pitch     float64 `json:"pitch" mapstructure:"pitch"`
}

// GeoBin is a geohash cell with the number of pickups inside it
type GeoBin struct {
	Geohash   string  `json:"geohash"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Count     int     `json:"count"`
}

// MapView is a view together with the binned pickups visible in it
type MapView struct {
	View
	Pickups    int      `json:"pickups"`
	DistanceKm float64  `json:"distance_km"`
	Bins       []GeoBin `json:"bins"`
}

// HourSnapshot aggregates everything the dashboard shows for one hour
type HourSnapshot struct {
	Hour     int       `json:"hour"`
	NextHour int       `json:"next_hour"`
	Pickups  int       `json:"pickups"`
	Midpoint *Midpoint `json:"midpoint"`
	Minutes  []int     `json:"minutes"`
	Views    []MapView `json:"views"`
}

// FindView returns the map view with the given name
func (s *HourSnapshot) FindView(name string) (*MapView, bool) {
	for i := range s.Views {
		if s.Views[i].Name == name {
			return &s.Views[i], true
		}
	}
	return nil, false
}
