package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/pickups/internal/pkg/middleware"
	nrpkg "github.com/piresc/pickups/internal/pkg/newrelic"
	"github.com/piresc/pickups/services/pickups"
	"github.com/piresc/pickups/services/pickups/handler/dashboard"
	httpHandler "github.com/piresc/pickups/services/pickups/handler/http"
	natsHandler "github.com/piresc/pickups/services/pickups/handler/nats"
)

// Handler combines all handlers for the pickups service
type Handler struct {
	pickupHTTP *httpHandler.PickupHandler
	dashboard  *dashboard.DashboardHandler
	reloadNATS *natsHandler.ReloadHandler
}

// NewHandler creates a new combined handler. subscriber may be nil when
// NATS is disabled.
func NewHandler(
	pickupUC pickups.PickupUC,
	subscriber natsHandler.Subscriber,
	reloadTimeout time.Duration,
) *Handler {
	h := &Handler{
		pickupHTTP: httpHandler.NewPickupHandler(pickupUC),
		dashboard:  dashboard.NewDashboardHandler(pickupUC),
	}
	if subscriber != nil {
		h.reloadNATS = natsHandler.NewReloadHandler(pickupUC, subscriber, reloadTimeout)
	}
	return h
}

// RegisterRoutes registers all HTTP routes. chartLimiter may be nil.
func (h *Handler) RegisterRoutes(e *echo.Echo, internalAPIKey string, chartLimiter echo.MiddlewareFunc) error {
	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}
	e.Renderer = renderer

	// Dashboard
	e.GET("/", nrpkg.TraceHandler("Dashboard.Index", h.dashboard.Index))

	charts := e.Group("/charts")
	if chartLimiter != nil {
		charts.Use(chartLimiter)
	}
	charts.GET("/hours.png", nrpkg.TraceHandler("Dashboard.HourChart", h.dashboard.HourChartPNG))
	charts.GET("/hours/:hour/minutes.png", nrpkg.TraceHandler("Dashboard.MinuteChart", h.dashboard.MinuteChartPNG))
	charts.GET("/hours/:hour/maps/:view", nrpkg.TraceHandler("Dashboard.Map", h.dashboard.MapPNG))

	// JSON API
	api := e.Group("/api/v1")
	api.GET("/dataset", nrpkg.TraceHandler("Pickups.GetDataset", h.pickupHTTP.GetDataset))
	api.GET("/views", nrpkg.TraceHandler("Pickups.GetViews", h.pickupHTTP.GetViews))
	api.GET("/hours", nrpkg.TraceHandler("Pickups.GetHours", h.pickupHTTP.GetHours))
	api.GET("/hours/:hour", nrpkg.TraceHandler("Pickups.GetHour", h.pickupHTTP.GetHour))
	api.GET("/hours/:hour/minutes", nrpkg.TraceHandler("Pickups.GetMinutes", h.pickupHTTP.GetMinutes))
	api.GET("/hours/:hour/records", nrpkg.TraceHandler("Pickups.GetRecords", h.pickupHTTP.GetRecords))
	api.GET("/hours/:hour/records.csv", nrpkg.TraceHandler("Pickups.ExportRecordsCSV", h.pickupHTTP.ExportRecordsCSV))

	// Operator routes (API key required)
	internal := e.Group("/internal", middleware.APIKeyMiddleware(internalAPIKey))
	internal.POST("/dataset/reload", nrpkg.TraceHandler("Pickups.ReloadDataset", h.pickupHTTP.ReloadDataset))

	return nil
}

// InitNATSConsumers subscribes to the reload subject when NATS is enabled
func (h *Handler) InitNATSConsumers() error {
	if h.reloadNATS == nil {
		return nil
	}
	return h.reloadNATS.InitNATSConsumers()
}
