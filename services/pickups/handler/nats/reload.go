package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/piresc/pickups/internal/pkg/constants"
	"github.com/piresc/pickups/internal/pkg/logger"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups"
)

// Subscriber is the subset of the NATS client used by the handler
type Subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// ReloadHandler reloads the dataset when asked to over NATS
type ReloadHandler struct {
	pickupUC   pickups.PickupUC
	subscriber Subscriber
	timeout    time.Duration
}

// NewReloadHandler creates a new reload NATS handler
func NewReloadHandler(pickupUC pickups.PickupUC, subscriber Subscriber, timeout time.Duration) *ReloadHandler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &ReloadHandler{
		pickupUC:   pickupUC,
		subscriber: subscriber,
		timeout:    timeout,
	}
}

// InitNATSConsumers subscribes to reload requests
func (h *ReloadHandler) InitNATSConsumers() error {
	logger.Info("Subscribing to dataset reload requests",
		logger.String("subject", constants.SubjectDatasetReload))

	if _, err := h.subscriber.Subscribe(constants.SubjectDatasetReload, h.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to reload requests: %w", err)
	}
	return nil
}

func (h *ReloadHandler) handleMessage(msg *nats.Msg) {
	info, err := h.handleReload(msg.Data)
	if msg.Reply == "" {
		return
	}

	reply := map[string]interface{}{"success": err == nil}
	if err != nil {
		reply["error"] = err.Error()
	} else {
		reply["data"] = info
	}
	data, _ := json.Marshal(reply)
	if err := msg.Respond(data); err != nil {
		logger.Warn("Failed to respond to reload request", logger.Err(err))
	}
}

// handleReload processes a reload request. An empty payload is accepted.
func (h *ReloadHandler) handleReload(data []byte) (*models.DatasetInfo, error) {
	var req models.DatasetReloadRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			logger.Warn("Ignoring malformed reload request", logger.Err(err))
			return nil, fmt.Errorf("failed to unmarshal reload request: %w", err)
		}
	}

	logger.Info("Received dataset reload request", logger.String("requested_by", req.RequestedBy))

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	info, err := h.pickupUC.LoadDataset(ctx)
	if err != nil {
		logger.Error("Dataset reload failed", logger.Err(err))
		return nil, err
	}
	return info, nil
}
