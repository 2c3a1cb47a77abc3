package usecase

import (
	"context"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"

	"github.com/google/uuid"
)

type GetListingUseCase struct {
	storage port.ListingStoragePort
}

func NewGetListingUseCase(storage port.ListingStoragePort) *GetListingUseCase {
	return &GetListingUseCase{storage: storage}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.Debug("Fetching listing by ID", port.Fields{"listing_id": id.String()})

	return uc.storage.GetByID(ctx, id)
}
