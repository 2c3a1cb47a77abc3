package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"property-listing-service/internal/core/domain"
)

// ListingPayload — тело запроса на создание или обновление объявления.
// nil-поля не отправляются и при обновлении остаются без изменений.
type ListingPayload struct {
	PropertyType *string          `json:"propertyType,omitempty"`
	Location     *LocationPayload `json:"location,omitempty"`
	Price        *float64         `json:"price,omitempty"`
	Area         *float64         `json:"area,omitempty"`
	Bedrooms     *int             `json:"bedrooms,omitempty"`
	Bathrooms    *int             `json:"bathrooms,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Features     []string         `json:"features,omitempty"`
	Agent        *AgentPayload    `json:"agent,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

type LocationPayload struct {
	Address   *string  `json:"address,omitempty"`
	City      *string  `json:"city,omitempty"`
	State     *string  `json:"state,omitempty"`
	ZipCode   *string  `json:"zipCode,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type AgentPayload struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// PhotoFile — файл фотографии для отправки вместе с объявлением.
type PhotoFile struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// ListFilters — параметры запроса списка объявлений.
type ListFilters struct {
	City         string
	State        string
	Status       string
	PropertyType string
	PriceMin     *float64
	PriceMax     *float64
}

type listingsEnvelope struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []domain.Listing `json:"data"`
}

type listingEnvelope struct {
	Success bool           `json:"success"`
	Data    domain.Listing `json:"data"`
}

type errorEnvelope struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
}

// APIError — ответ сервиса со статусом вне 2xx. Messages заполнен, если
// сервис вернул список нарушений валидации.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("listing service returned status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("listing service returned status %d", e.StatusCode)
}
