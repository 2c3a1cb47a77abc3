package usecase

import (
	"context"
	"fmt"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
)

type ListListingsUseCase struct {
	storage port.ListingStoragePort
}

func NewListListingsUseCase(storage port.ListingStoragePort) *ListListingsUseCase {
	return &ListListingsUseCase{storage: storage}
}

func (uc *ListListingsUseCase) Execute(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.Debug("Fetching listings", port.Fields{"filters": filters})

	listings, err := uc.storage.Find(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to find listings: %w", err)
	}
	if listings == nil {
		listings = []domain.Listing{}
	}
	return listings, nil
}
