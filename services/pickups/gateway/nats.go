package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/pickups/internal/pkg/constants"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/piresc/pickups/services/pickups"
)

// Publisher is the subset of the NATS client used by the gateway
type Publisher interface {
	Publish(subject string, data []byte) error
}

type pickupGW struct {
	publisher Publisher
}

// NewPickupGW creates a gateway publishing pickup events over NATS
func NewPickupGW(publisher Publisher) pickups.PickupGW {
	return &pickupGW{
		publisher: publisher,
	}
}

// PublishDatasetLoaded announces a freshly loaded dataset version
func (g *pickupGW) PublishDatasetLoaded(ctx context.Context, event models.DatasetLoadedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset loaded event: %w", err)
	}

	if err := g.publisher.Publish(constants.SubjectDatasetLoaded, data); err != nil {
		return fmt.Errorf("failed to publish dataset loaded event: %w", err)
	}
	return nil
}
