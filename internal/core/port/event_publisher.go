package port

import (
	"context"
	"property-listing-service/internal/core/domain"
)

// ListingEventPublisherPort — исходящий порт для событий жизненного цикла
// объявления (created/updated/deleted). Публикация опциональна: при
// выключенных событиях используется no-op реализация.
type ListingEventPublisherPort interface {
	PublishCreated(ctx context.Context, listing *domain.Listing) error
	PublishUpdated(ctx context.Context, listing *domain.Listing) error
	PublishDeleted(ctx context.Context, listingID string) error

	Close() error
}
