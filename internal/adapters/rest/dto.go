package rest

import (
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port/usecases_port"
)

// listingsResponse — ответ со списком объявлений.
type listingsResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []domain.Listing `json:"data"`
}

// listingResponse — ответ с одним объявлением.
type listingResponse struct {
	Success bool            `json:"success"`
	Data    *domain.Listing `json:"data"`
}

// deleteResponse — ответ на удаление.
type deleteResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

// listingRequest — тело запроса на создание или обновление. Все поля
// опциональны: nil означает "не задано" и при обновлении оставляет
// сохраненное значение без изменений.
type listingRequest struct {
	PropertyType *string          `json:"propertyType"`
	Location     *locationRequest `json:"location"`
	Price        *float64         `json:"price"`
	Area         *float64         `json:"area"`
	Bedrooms     *int             `json:"bedrooms"`
	Bathrooms    *int             `json:"bathrooms"`
	Description  *string          `json:"description"`
	Features     []string         `json:"features"`
	Agent        *agentRequest    `json:"agent"`
	Status       *string          `json:"status"`
}

type locationRequest struct {
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	State     *string  `json:"state"`
	ZipCode   *string  `json:"zipCode"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type agentRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// toListing собирает доменную запись для создания: незаданные поля
// получают нулевые значения и дальше проверяются валидацией.
func (req listingRequest) toListing() domain.Listing {
	var listing domain.Listing

	if req.PropertyType != nil {
		listing.PropertyType = *req.PropertyType
	}
	if req.Location != nil {
		if req.Location.Address != nil {
			listing.Location.Address = *req.Location.Address
		}
		if req.Location.City != nil {
			listing.Location.City = *req.Location.City
		}
		if req.Location.State != nil {
			listing.Location.State = *req.Location.State
		}
		if req.Location.ZipCode != nil {
			listing.Location.ZipCode = *req.Location.ZipCode
		}
		if req.Location.Country != nil {
			listing.Location.Country = *req.Location.Country
		}
		listing.Location.Latitude = req.Location.Latitude
		listing.Location.Longitude = req.Location.Longitude
	}
	if req.Price != nil {
		listing.Price = *req.Price
	}
	if req.Area != nil {
		listing.Area = *req.Area
	}
	if req.Bedrooms != nil {
		listing.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		listing.Bathrooms = *req.Bathrooms
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	listing.Features = req.Features
	if req.Agent != nil {
		if req.Agent.Name != nil {
			listing.Agent.Name = *req.Agent.Name
		}
		if req.Agent.Email != nil {
			listing.Agent.Email = *req.Agent.Email
		}
		if req.Agent.Phone != nil {
			listing.Agent.Phone = *req.Agent.Phone
		}
	}
	if req.Status != nil {
		listing.Status = *req.Status
	}

	return listing
}

// toPatch собирает частичное обновление: переносятся только заданные поля.
func (req listingRequest) toPatch() usecases_port.ListingPatch {
	patch := usecases_port.ListingPatch{
		PropertyType: req.PropertyType,
		Price:        req.Price,
		Area:         req.Area,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Description:  req.Description,
		Features:     req.Features,
		Status:       req.Status,
	}
	if req.Location != nil {
		patch.Location = usecases_port.LocationPatch{
			Address:   req.Location.Address,
			City:      req.Location.City,
			State:     req.Location.State,
			ZipCode:   req.Location.ZipCode,
			Country:   req.Location.Country,
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}
	if req.Agent != nil {
		patch.Agent = usecases_port.AgentPatch{
			Name:  req.Agent.Name,
			Email: req.Agent.Email,
			Phone: req.Agent.Phone,
		}
	}
	return patch
}
