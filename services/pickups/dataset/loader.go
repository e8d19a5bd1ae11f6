package dataset

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/pickups/internal/pkg/models"
)

const (
	ColumnDateTime = "date/time"
	ColumnLat      = "lat"
	ColumnLon      = "lon"

	// DefaultNRows is roughly 10% of the September 2014 dataset
	DefaultNRows = 100000

	// TimeLayout is the timestamp layout of the raw dataset
	TimeLayout = "1/2/2006 15:04:05"
)

var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDownload marks transient download failures worth retrying
	ErrDownload = errors.New("dataset download failed")
)

// timeLayouts are tried in order; the first is the layout of the raw dataset
var timeLayouts = []string{
	TimeLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var gzipMagic = []byte{0x1f, 0x8b}

// Loader reads pickup CSV files from disk or over HTTP
type Loader struct {
	client *http.Client
	nrows  int
}

// NewLoader creates a loader. nrows <= 0 reads every row.
func NewLoader(client *http.Client, nrows int) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Loader{client: client, nrows: nrows}
}

// Load opens location (a file path or an http(s) URL) and parses it
func (l *Loader) Load(ctx context.Context, location string) ([]models.Pickup, error) {
	rc, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	pickups, err := Parse(rc, l.nrows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	return pickups, nil
}

func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !isURL(location) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to download dataset: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: unexpected status %d", ErrDownload, resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to download dataset: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Parse reads pickups from CSV, transparently gunzipping compressed input.
// At most nrows data rows are read when nrows > 0.
func Parse(r io.Reader, nrows int) ([]models.Pickup, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(len(gzipMagic)); err == nil && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	capHint := nrows
	if capHint <= 0 {
		capHint = 1024
	}
	pickups := make([]models.Pickup, 0, capHint)

	for nrows <= 0 || len(pickups) < nrows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}

		line, _ := reader.FieldPos(0)
		pickup, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedRecord, line, err)
		}
		pickups = append(pickups, pickup)
	}

	return pickups, nil
}

type indexes struct {
	dateTime, lat, lon int
}

func columnIndexes(header []string) (indexes, error) {
	idx := indexes{dateTime: -1, lat: -1, lon: -1}
	for i, name := range header {
		switch normalizeColumn(name) {
		case ColumnDateTime:
			idx.dateTime = i
		case ColumnLat:
			idx.lat = i
		case ColumnLon:
			idx.lon = i
		}
	}

	required := []struct {
		name string
		pos  int
	}{
		{ColumnDateTime, idx.dateTime},
		{ColumnLat, idx.lat},
		{ColumnLon, idx.lon},
	}
	for _, col := range required {
		if col.pos < 0 {
			return idx, fmt.Errorf("%w: %s", ErrMissingColumn, col.name)
		}
	}
	return idx, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func parseRecord(record []string, idx indexes) (models.Pickup, error) {
	field := func(i int) (string, error) {
		if i >= len(record) {
			return "", fmt.Errorf("expected at least %d fields, got %d", i+1, len(record))
		}
		return strings.TrimSpace(record[i]), nil
	}

	raw, err := field(idx.dateTime)
	if err != nil {
		return models.Pickup{}, err
	}
	at, err := ParseTime(raw)
	if err != nil {
		return models.Pickup{}, err
	}

	rawLat, err := field(idx.lat)
	if err != nil {
		return models.Pickup{}, err
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return models.Pickup{}, fmt.Errorf("invalid latitude %q", rawLat)
	}

	rawLon, err := field(idx.lon)
	if err != nil {
		return models.Pickup{}, err
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return models.Pickup{}, fmt.Errorf("invalid longitude %q", rawLon)
	}

	return models.Pickup{PickupAt: at, Latitude: lat, Longitude: lon}, nil
}

// ParseTime parses a pickup timestamp in any of the supported layouts.
// Timestamps without a zone are interpreted as UTC.
func ParseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q", raw)
}
