package domain

import (
	"time"

	"github.com/google/uuid"
)

// Допустимые типы недвижимости (расширенный набор из формы ввода).
var PropertyTypes = []string{"Apartment", "House", "Villa", "Commercial", "Land", "Other"}

// Допустимые статусы объявления.
var Statuses = []string{"For Sale", "For Rent", "Sold", "Rented", "Pending"}

const (
	DefaultStatus  = "For Sale"
	DefaultCountry = "USA"
)

// Location — адресная часть объявления. Координаты опциональны: если они
// заданы, хранилище вычисляет по ним geohash для поиска "рядом".
type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Agent — контакты агента, разместившего объявление.
type Agent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Listing — это сохраненное, провалидированное объявление о продаже/аренде.
// Поле Photos хранит относительные публичные пути загруженных файлов
// (например "/uploads/1756708800000-front.jpg"); при обновлении новые фото
// всегда дописываются в конец, никогда не заменяют существующие.
type Listing struct {
	ID           uuid.UUID `json:"id"`
	PropertyType string    `json:"propertyType"`
	Location     Location  `json:"location"`
	Price        float64   `json:"price"`
	Area         float64   `json:"area"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Description  string    `json:"description"`
	Features     []string  `json:"features"`
	Photos       []string  `json:"photos"`
	Agent        Agent     `json:"agent"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ListingFilters — опциональные фильтры для выборки списка объявлений.
type ListingFilters struct {
	City         string
	State        string
	Status       string
	PropertyType string
	PriceMin     *float64
	PriceMax     *float64
}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// IsValidPropertyType проверяет значение по списку PropertyTypes.
func IsValidPropertyType(value string) bool { return isOneOf(value, PropertyTypes) }

// IsValidStatus проверяет значение по списку Statuses.
func IsValidStatus(value string) bool { return isOneOf(value, Statuses) }
