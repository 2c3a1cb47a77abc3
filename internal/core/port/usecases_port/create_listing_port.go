package usecases_port

import (
	"context"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
)

// CreateListingUseCase проверяет и сохраняет новое объявление вместе с
// приложенными фотографиями. При нарушении обязательных полей возвращает
// *domain.ValidationError с полным списком сообщений.
type CreateListingUseCase interface {
	Execute(ctx context.Context, listing domain.Listing, photos []port.PhotoUpload) (*domain.Listing, error)
}
