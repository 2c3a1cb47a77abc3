package usecases_port

import (
	"context"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"

	"github.com/google/uuid"
)

// ListingPatch — частичное обновление: поля-указатели со значением nil
// остаются без изменений, заданные поля перезаписывают сохраненные
// (last-write-wins). Фотографии в патче отсутствуют: новые файлы всегда
// дописываются к уже сохраненным.
type ListingPatch struct {
	PropertyType *string
	Location     LocationPatch
	Price        *float64
	Area         *float64
	Bedrooms     *int
	Bathrooms    *int
	Description  *string
	Features     []string
	Agent        AgentPatch
	Status       *string
}

// LocationPatch обновляет адрес пополево, не затирая незаданные части.
type LocationPatch struct {
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	Country   *string
	Latitude  *float64
	Longitude *float64
}

// AgentPatch обновляет контакт агента пополево.
type AgentPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// UpdateListingUseCase накладывает патч на сохраненную запись, валидирует
// результат целиком и сохраняет его.
type UpdateListingUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, patch ListingPatch, photos []port.PhotoUpload) (*domain.Listing, error)
}
