package usecase

import (
	"context"
	"fmt"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
)

// CreateListingUseCase инкапсулирует логику создания объявления: валидация,
// сохранение фотографий на диск, запись в хранилище и публикация события.
type CreateListingUseCase struct {
	storage   port.ListingStoragePort
	photos    port.PhotoStoragePort
	publisher port.ListingEventPublisherPort
}

func NewCreateListingUseCase(storage port.ListingStoragePort, photos port.PhotoStoragePort, publisher port.ListingEventPublisherPort) *CreateListingUseCase {
	return &CreateListingUseCase{
		storage:   storage,
		photos:    photos,
		publisher: publisher,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, listing domain.Listing, uploads []port.PhotoUpload) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "CreateListing",
		"property_type": listing.PropertyType,
		"city":          listing.Location.City,
	})

	ucLogger.Info("Use case started: creating listing", nil)

	listing.ApplyDefaults()

	// Валидация собирает ВСЕ нарушения, а не останавливается на первом.
	if messages := listing.Validate(); len(messages) > 0 {
		ucLogger.Warn("Listing rejected by validation", port.Fields{"violations": len(messages)})
		return nil, &domain.ValidationError{Messages: messages}
	}

	// Фотографии сохраняются только после успешной валидации: частично
	// заполненная запись никогда не попадает ни в хранилище, ни на диск.
	saved, err := saveUploads(ctx, uc.photos, uploads)
	if err != nil {
		ucLogger.Error("Failed to store uploaded photos", err, nil)
		return nil, fmt.Errorf("failed to store uploaded photos: %w", err)
	}
	listing.Photos = append(listing.Photos, saved...)

	created, err := uc.storage.Create(ctx, listing)
	if err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	if err := uc.publisher.PublishCreated(ctx, created); err != nil {
		// Событие вторично: запись уже сохранена, ошибку только логируем.
		ucLogger.Error("Failed to publish listing.created event", err, nil)
	}

	ucLogger.Info("Use case finished: listing created", port.Fields{"listing_id": created.ID.String()})
	return created, nil
}

// saveUploads сохраняет файлы по очереди и возвращает их публичные пути.
func saveUploads(ctx context.Context, store port.PhotoStoragePort, uploads []port.PhotoUpload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, up := range uploads {
		path, err := store.Save(ctx, up.OriginalName, up.ContentType, up.Size, up.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to save photo %q: %w", up.OriginalName, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
