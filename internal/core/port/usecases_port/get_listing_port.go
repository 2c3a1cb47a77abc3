package usecases_port

import (
	"context"
	"property-listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// GetListingUseCase возвращает одно объявление по ID (или domain.ErrNotFound).
type GetListingUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
}

// ListListingsUseCase возвращает объявления с опциональными фильтрами.
type ListListingsUseCase interface {
	Execute(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error)
}
