package port

import (
	"context"
	"property-listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingStoragePort — контракт хранилища объявлений.
type ListingStoragePort interface {
	Create(ctx context.Context, listing domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, listing domain.Listing) (*domain.Listing, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Find(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error)

	// Delete удаляет запись. Если записи нет — возвращает domain.ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
