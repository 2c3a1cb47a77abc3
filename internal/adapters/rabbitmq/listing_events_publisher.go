package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"property-listing-service/internal/constants"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/contracts"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
	"property-listing-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// listingEventDTO — тело события жизненного цикла объявления.
// Формат закреплён схемой events/listing-lifecycle/v1.json.
type listingEventDTO struct {
	Event      string             `json:"event"`
	ListingID  string             `json:"listing_id"`
	OccurredAt string             `json:"occurred_at"`
	Listing    *listingSummaryDTO `json:"listing,omitempty"`
}

type listingSummaryDTO struct {
	PropertyType string  `json:"property_type"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
}

// ListingEventsPublisher публикует события created/updated/deleted в обменник
// RabbitMQ. Перед публикацией тело проверяется по JSON-схеме контракта.
type ListingEventsPublisher struct {
	producer *rabbitmq_producer.Publisher
	logger   port.LoggerPort
}

func NewListingEventsPublisher(producer *rabbitmq_producer.Publisher, logger port.LoggerPort) (*ListingEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ListingEventsPublisher{
		producer: producer,
		logger:   logger,
	}, nil
}

func (p *ListingEventsPublisher) PublishCreated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(ctx, constants.RoutingKeyListingCreated, "created", listing.ID.String(), listing)
}

func (p *ListingEventsPublisher) PublishUpdated(ctx context.Context, listing *domain.Listing) error {
	return p.publish(ctx, constants.RoutingKeyListingUpdated, "updated", listing.ID.String(), listing)
}

func (p *ListingEventsPublisher) PublishDeleted(ctx context.Context, listingID string) error {
	return p.publish(ctx, constants.RoutingKeyListingDeleted, "deleted", listingID, nil)
}

func (p *ListingEventsPublisher) Close() error {
	return p.producer.Close()
}

func (p *ListingEventsPublisher) publish(ctx context.Context, routingKey, event, listingID string, listing *domain.Listing) error {
	adapterLogger := p.logger.WithFields(port.Fields{
		"component":   "ListingEventsPublisher",
		"routing_key": routingKey,
		"listing_id":  listingID,
	})

	dto := listingEventDTO{
		Event:      event,
		ListingID:  listingID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if listing != nil {
		dto.Listing = &listingSummaryDTO{
			PropertyType: listing.PropertyType,
			City:         listing.Location.City,
			State:        listing.Location.State,
			Price:        listing.Price,
			Status:       listing.Status,
		}
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event: %w", err)
	}

	// Невалидное по контракту событие не должно попасть в обменник
	if err := contracts.ValidateEvent(constants.ListingLifecycleEventType, constants.ListingLifecycleEventVersion, body); err != nil {
		adapterLogger.Error("Event failed contract validation", err, nil)
		return fmt.Errorf("rabbitmq adapter: event validation failed: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish listing event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s event for listing %s: %w", event, listingID, err)
	}

	adapterLogger.Info("Listing event published", nil)
	return nil
}
