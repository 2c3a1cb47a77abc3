package usecase

import (
	"context"
	"errors"
	"fmt"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
	"property-listing-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

// UpdateListingUseCase накладывает патч на сохраненную запись (last-write-wins),
// валидирует результат целиком и сохраняет. Новые фотографии ДОПИСЫВАЮТСЯ к
// уже сохраненным, существующий список никогда не заменяется.
type UpdateListingUseCase struct {
	storage   port.ListingStoragePort
	photos    port.PhotoStoragePort
	publisher port.ListingEventPublisherPort
}

func NewUpdateListingUseCase(storage port.ListingStoragePort, photos port.PhotoStoragePort, publisher port.ListingEventPublisherPort) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		storage:   storage,
		photos:    photos,
		publisher: publisher,
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.ListingPatch, uploads []port.PhotoUpload) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateListing",
		"listing_id": id.String(),
	})

	ucLogger.Info("Use case started: updating listing", nil)

	current, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ucLogger.Warn("Listing not found", nil)
			return nil, err
		}
		ucLogger.Error("Storage returned an error during lookup", err, nil)
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}

	applyPatch(current, patch)
	current.ApplyDefaults()

	if messages := current.Validate(); len(messages) > 0 {
		ucLogger.Warn("Updated listing rejected by validation", port.Fields{"violations": len(messages)})
		return nil, &domain.ValidationError{Messages: messages}
	}

	saved, err := saveUploads(ctx, uc.photos, uploads)
	if err != nil {
		ucLogger.Error("Failed to store uploaded photos", err, nil)
		return nil, fmt.Errorf("failed to store uploaded photos: %w", err)
	}
	current.Photos = append(current.Photos, saved...)

	updated, err := uc.storage.Update(ctx, *current)
	if err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return nil, fmt.Errorf("failed to update listing %s: %w", id, err)
	}

	if err := uc.publisher.PublishUpdated(ctx, updated); err != nil {
		ucLogger.Error("Failed to publish listing.updated event", err, nil)
	}

	ucLogger.Info("Use case finished: listing updated", port.Fields{"photos_total": len(updated.Photos)})
	return updated, nil
}

// applyPatch переносит в запись только те поля, которые присутствуют в патче.
func applyPatch(listing *domain.Listing, patch usecases_port.ListingPatch) {
	if patch.PropertyType != nil {
		listing.PropertyType = *patch.PropertyType
	}
	if patch.Location.Address != nil {
		listing.Location.Address = *patch.Location.Address
	}
	if patch.Location.City != nil {
		listing.Location.City = *patch.Location.City
	}
	if patch.Location.State != nil {
		listing.Location.State = *patch.Location.State
	}
	if patch.Location.ZipCode != nil {
		listing.Location.ZipCode = *patch.Location.ZipCode
	}
	if patch.Location.Country != nil {
		listing.Location.Country = *patch.Location.Country
	}
	if patch.Location.Latitude != nil {
		listing.Location.Latitude = patch.Location.Latitude
	}
	if patch.Location.Longitude != nil {
		listing.Location.Longitude = patch.Location.Longitude
	}
	if patch.Price != nil {
		listing.Price = *patch.Price
	}
	if patch.Area != nil {
		listing.Area = *patch.Area
	}
	if patch.Bedrooms != nil {
		listing.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		listing.Bathrooms = *patch.Bathrooms
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.Features != nil {
		listing.Features = patch.Features
	}
	if patch.Agent.Name != nil {
		listing.Agent.Name = *patch.Agent.Name
	}
	if patch.Agent.Email != nil {
		listing.Agent.Email = *patch.Agent.Email
	}
	if patch.Agent.Phone != nil {
		listing.Agent.Phone = *patch.Agent.Phone
	}
	if patch.Status != nil {
		listing.Status = *patch.Status
	}
}
