package usecase

import (
	"context"
	"errors"
	"fmt"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"

	"github.com/google/uuid"
)

// DeleteListingUseCase удаляет объявление: сначала файлы фотографий с диска,
// затем саму запись. Отсутствие файла не прерывает удаление.
type DeleteListingUseCase struct {
	storage   port.ListingStoragePort
	photos    port.PhotoStoragePort
	publisher port.ListingEventPublisherPort
}

func NewDeleteListingUseCase(storage port.ListingStoragePort, photos port.PhotoStoragePort, publisher port.ListingEventPublisherPort) *DeleteListingUseCase {
	return &DeleteListingUseCase{
		storage:   storage,
		photos:    photos,
		publisher: publisher,
	}
}

func (uc *DeleteListingUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "DeleteListing",
		"listing_id": id.String(),
	})

	ucLogger.Info("Use case started: deleting listing", nil)

	listing, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ucLogger.Warn("Listing not found", nil)
			return err
		}
		ucLogger.Error("Storage returned an error during lookup", err, nil)
		return fmt.Errorf("failed to load listing %s: %w", id, err)
	}

	for _, photo := range listing.Photos {
		if err := uc.photos.Remove(ctx, photo); err != nil {
			ucLogger.Error("Failed to remove photo file", err, port.Fields{"photo": photo})
			return fmt.Errorf("failed to remove photo %q: %w", photo, err)
		}
	}

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage returned an error during delete", err, nil)
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}

	if err := uc.publisher.PublishDeleted(ctx, id.String()); err != nil {
		ucLogger.Error("Failed to publish listing.deleted event", err, nil)
	}

	ucLogger.Info("Use case finished: listing deleted", port.Fields{"photos_removed": len(listing.Photos)})
	return nil
}
