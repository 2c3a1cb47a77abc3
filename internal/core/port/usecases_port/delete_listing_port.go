package usecases_port

import (
	"context"

	"github.com/google/uuid"
)

// DeleteListingUseCase удаляет объявление и все его фотографии с диска.
// Отсутствие отдельного файла фотографии не считается ошибкой.
type DeleteListingUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}
