package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/internal/utils"
	"github.com/piresc/pickups/services/pickups"
)

// RawRows is the number of raw records shown when "Show raw data" is checked
const RawRows = 100

const pngContentType = "image/png"

// Panel is one captioned map image on the dashboard
type Panel struct {
	Name    string
	Caption string
	Image   string
	Pickups int
}

// Page is the data behind templates/index.html
type Page struct {
	Loaded  bool
	Message string
	Hour    int
	Label   string
	Pickups int
	ShowRaw bool
	Panels  []Panel
	Records []models.Pickup
}

// DashboardHandler serves the HTML dashboard and its PNG charts
type DashboardHandler struct {
	pickupUC pickups.PickupUC
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(pickupUC pickups.PickupUC) *DashboardHandler {
	return &DashboardHandler{
		pickupUC: pickupUC,
	}
}

// Index renders the dashboard page for ?hour=H&raw=on
func (h *DashboardHandler) Index(c echo.Context) error {
	hour, err := queryHour(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	snapshot, err := h.pickupUC.HourSnapshot(ctx, hour)
	if errors.Is(err, pickups.ErrNotLoaded) {
		return c.Render(http.StatusServiceUnavailable, "index.html", Page{Message: "the dataset is not loaded yet"})
	}
	if err != nil {
		logger.Error("Failed to build dashboard", logger.Hour(hour), logger.Err(err))
		return c.String(http.StatusInternalServerError, "failed to build dashboard")
	}

	page := Page{
		Loaded:  true,
		Hour:    hour,
		Label:   models.HourRangeLabel(hour),
		Pickups: snapshot.Pickups,
		ShowRaw: isChecked(c.QueryParam("raw")),
		Panels:  panels(snapshot),
	}

	if page.ShowRaw {
		records, _, err := h.pickupUC.Records(ctx, hour, 0, RawRows)
		if err != nil {
			logger.Warn("Failed to load raw records", logger.Hour(hour), logger.Err(err))
		}
		page.Records = records
	}

	return c.Render(http.StatusOK, "index.html", page)
}

// HourChartPNG renders pickups per hour with the selected hour marked
func (h *DashboardHandler) HourChartPNG(c echo.Context) error {
	hour, err := queryHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	hist, err := h.pickupUC.HourHistogram(c.Request().Context())
	if err != nil {
		return h.handleError(c, err, "failed to get hour histogram")
	}

	img, err := RenderHourChart(hist, hour)
	if err != nil {
		return h.handleError(c, err, "failed to render hour chart")
	}
	return c.Blob(http.StatusOK, pngContentType, img)
}

// MinuteChartPNG renders pickups per minute of an hour
func (h *DashboardHandler) MinuteChartPNG(c echo.Context) error {
	hour, err := paramHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	snapshot, err := h.pickupUC.HourSnapshot(c.Request().Context(), hour)
	if err != nil {
		return h.handleError(c, err, "failed to get minute histogram")
	}

	img, err := RenderMinuteChart(snapshot.Minutes)
	if err != nil {
		return h.handleError(c, err, "failed to render minute chart")
	}
	return c.Blob(http.StatusOK, pngContentType, img)
}

// MapPNG renders the pickups of an hour inside one view
func (h *DashboardHandler) MapPNG(c echo.Context) error {
	hour, err := paramHour(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}
	name := strings.TrimSuffix(c.Param("view"), ".png")

	snapshot, err := h.pickupUC.HourSnapshot(c.Request().Context(), hour)
	if err != nil {
		return h.handleError(c, err, "failed to get hour snapshot")
	}

	view, ok := snapshot.FindView(name)
	if !ok {
		return h.handleError(c, fmt.Errorf("%w: %s", pickups.ErrUnknownView, name), "unknown view")
	}

	img, err := RenderMap(*view)
	if err != nil {
		return h.handleError(c, err, "failed to render map")
	}
	return c.Blob(http.StatusOK, pngContentType, img)
}

func (h *DashboardHandler) handleError(c echo.Context, err error, message string) error {
	status := pickups.HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(message,
			logger.String("path", c.Path()),
			logger.Err(err))
		return utils.ErrorResponseHandler(c, status, message)
	}
	return utils.ErrorResponseHandler(c, status, err.Error())
}

// panels captions the first view with the hour range, as the city-wide panel
func panels(snapshot *models.HourSnapshot) []Panel {
	out := make([]Panel, len(snapshot.Views))
	for i, view := range snapshot.Views {
		caption := view.Title
		if i == 0 {
			caption = fmt.Sprintf("%s from %s", view.Title, models.HourRangeLabel(snapshot.Hour))
		}
		out[i] = Panel{
			Name:    view.Name,
			Caption: caption,
			Image:   fmt.Sprintf("/charts/hours/%d/maps/%s.png", snapshot.Hour, view.Name),
			Pickups: view.Pickups,
		}
	}
	return out
}

var errHourNotInteger = errors.New("hour must be an integer")

func queryHour(c echo.Context) (int, error) {
	return parseHour(c.QueryParam("hour"), true)
}

func paramHour(c echo.Context) (int, error) {
	return parseHour(c.Param("hour"), false)
}

func parseHour(raw string, optional bool) (int, error) {
	if raw == "" && optional {
		return 0, nil
	}
	hour, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errHourNotInteger
	}
	if err := pickups.ValidateHour(hour); err != nil {
		return 0, err
	}
	return hour, nil
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
