package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/internal/utils"
	"github.com/piresc/pickups/services/pickups"
	"github.com/piresc/pickups/services/pickups/dataset"
	"github.com/piresc/pickups/services/pickups/stats"
)

// HoursResponse is the pickups-per-hour histogram
type HoursResponse struct {
	Hours   []int `json:"hours"`
	Pickups []int `json:"pickups"`
}

// MinutesResponse is the pickups-per-minute histogram of one hour
type MinutesResponse struct {
	Hour    int    `json:"hour"`
	Label   string `json:"label"`
	Minutes []int  `json:"minutes"`
	Pickups []int  `json:"pickups"`
}

// RecordsResponse is a page of raw pickups
type RecordsResponse struct {
	Hour    int             `json:"hour"`
	Offset  int             `json:"offset"`
	Total   int             `json:"total"`
	Records []models.Pickup `json:"records"`
}

// PickupHandler serves the pickup JSON API
type PickupHandler struct {
	pickupUC pickups.PickupUC
}

// NewPickupHandler creates a new pickup HTTP handler
func NewPickupHandler(pickupUC pickups.PickupUC) *PickupHandler {
	return &PickupHandler{
		pickupUC: pickupUC,
	}
}

// GetDataset returns information about the loaded dataset
func (h *PickupHandler) GetDataset(c echo.Context) error {
	info, err := h.pickupUC.DatasetInfo(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, "failed to get dataset info")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Dataset info retrieved", info)
}

// GetHours returns the number of pickups for every hour of the day
func (h *PickupHandler) GetHours(c echo.Context) error {
	hist, err := h.pickupUC.HourHistogram(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, "failed to get hour histogram")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Pickups per hour retrieved", HoursResponse{
		Hours:   sequence(stats.HoursPerDay),
		Pickups: hist,
	})
}

// GetHour returns the full snapshot of an hour
func (h *PickupHandler) GetHour(c echo.Context) error {
	hour, err := parseHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	snapshot, err := h.pickupUC.HourSnapshot(c.Request().Context(), hour)
	if err != nil {
		return h.handleError(c, err, "failed to get hour snapshot")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Hour snapshot retrieved", snapshot)
}

// GetMinutes returns the number of pickups for every minute of an hour
func (h *PickupHandler) GetMinutes(c echo.Context) error {
	hour, err := parseHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	snapshot, err := h.pickupUC.HourSnapshot(c.Request().Context(), hour)
	if err != nil {
		return h.handleError(c, err, "failed to get minute histogram")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Pickups per minute retrieved", MinutesResponse{
		Hour:    hour,
		Label:   models.HourRangeLabel(hour),
		Minutes: sequence(stats.MinutesPerHour),
		Pickups: snapshot.Minutes,
	})
}

// GetRecords returns a page of raw pickups for an hour
func (h *PickupHandler) GetRecords(c echo.Context) error {
	hour, err := parseHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	offset, err := queryInt(c, "offset")
	if err != nil {
		return utils.BadRequestResponse(c, "offset must be an integer")
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return utils.BadRequestResponse(c, "limit must be an integer")
	}

	records, total, err := h.pickupUC.Records(c.Request().Context(), hour, offset, limit)
	if err != nil {
		return h.handleError(c, err, "failed to get records")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Records retrieved", RecordsResponse{
		Hour:    hour,
		Offset:  offset,
		Total:   total,
		Records: records,
	})
}

// ExportRecordsCSV streams every pickup of an hour as Date/Time,Lat,Lon.
// Timestamps use the dataset layout except that the hour is zero-padded
// (9/1/2014 00:01:00 rather than 9/1/2014 0:01:00), which the loader reads back.
func (h *PickupHandler) ExportRecordsCSV(c echo.Context) error {
	hour, err := parseHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	records, err := h.pickupUC.HourPickups(c.Request().Context(), hour)
	if err != nil {
		return h.handleError(c, err, "failed to export records")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="pickups-hour-%02d.csv"`, hour))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"Date/Time", "Lat", "Lon"}); err != nil {
		return err
	}
	for _, p := range records {
		row := []string{
			p.PickupAt.Format(dataset.TimeLayout),
			strconv.FormatFloat(p.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// GetViews returns the configured map views
func (h *PickupHandler) GetViews(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Views retrieved", h.pickupUC.Views())
}

// ReloadDataset reloads the dataset from its source
func (h *PickupHandler) ReloadDataset(c echo.Context) error {
	info, err := h.pickupUC.LoadDataset(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, "failed to reload dataset")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Dataset reloaded", info)
}

func (h *PickupHandler) handleError(c echo.Context, err error, message string) error {
	status := pickups.HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(message,
			logger.String("path", c.Path()),
			logger.Err(err))
		return utils.ErrorResponseHandler(c, status, message)
	}
	return utils.ErrorResponseHandler(c, status, err.Error())
}

var errHourNotInteger = errors.New("hour must be an integer")

func parseHour(c echo.Context) (int, error) {
	hour, err := strconv.Atoi(c.Param("hour"))
	if err != nil {
		return 0, errHourNotInteger
	}
	if err := pickups.ValidateHour(hour); err != nil {
		return 0, err
	}
	return hour, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func sequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}
