package rabbitmq

import (
	"context"

	"property-listing-service/internal/core/domain"
)

// NoopPublisher используется при выключенной публикации событий
// (EVENTS_ENABLED=false): все вызовы успешны и ничего не делают.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishCreated(ctx context.Context, listing *domain.Listing) error {
	return nil
}

func (p *NoopPublisher) PublishUpdated(ctx context.Context, listing *domain.Listing) error {
	return nil
}

func (p *NoopPublisher) PublishDeleted(ctx context.Context, listingID string) error {
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
