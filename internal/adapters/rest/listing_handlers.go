package rest

import (
	"errors"
	"net/http"
	"strconv"

	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
	"property-listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ListingHandler struct {
	createListingUC usecases_port.CreateListingUseCase
	updateListingUC usecases_port.UpdateListingUseCase
	getListingUC    usecases_port.GetListingUseCase
	listListingsUC  usecases_port.ListListingsUseCase
	deleteListingUC usecases_port.DeleteListingUseCase
}

func NewListingHandler(
	createListingUC usecases_port.CreateListingUseCase,
	updateListingUC usecases_port.UpdateListingUseCase,
	getListingUC usecases_port.GetListingUseCase,
	listListingsUC usecases_port.ListListingsUseCase,
	deleteListingUC usecases_port.DeleteListingUseCase) *ListingHandler {
	return &ListingHandler{
		createListingUC: createListingUC,
		updateListingUC: updateListingUC,
		getListingUC:    getListingUC,
		listListingsUC:  listListingsUC,
		deleteListingUC: deleteListingUC,
	}
}

// GetListings обрабатывает GET /api/properties
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	filters := domain.ListingFilters{
		City:         query.Get("city"),
		State:        query.Get("state"),
		Status:       query.Get("status"),
		PropertyType: query.Get("propertyType"),
		PriceMin:     parseFloatParam(query.Get("priceMin")),
		PriceMax:     parseFloatParam(query.Get("priceMax")),
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "GetListings"})
	handlerLogger.Debug("Processing request to list properties", nil)

	listings, err := h.listListingsUC.Execute(r.Context(), filters)
	if err != nil {
		handlerLogger.Error("Failed to list properties", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	RespondWithJSON(w, http.StatusOK, listingsResponse{
		Success: true,
		Count:   len(listings),
		Data:    listings,
	})
}

// GetListing обрабатывает GET /api/properties/{propertyID}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		// Некорректный ID неотличим от несуществующего объявления
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "GetListing", "property_id": id.String()})

	listing, err := h.getListingUC.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Failed to get property", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	RespondWithJSON(w, http.StatusOK, listingResponse{Success: true, Data: listing})
}

// CreateListing обрабатывает POST /api/properties
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "CreateListing"})

	sub, err := parseListingSubmission(r)
	if err != nil {
		handlerLogger.Warn("Rejected malformed create request", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer sub.Close()

	created, err := h.createListingUC.Execute(r.Context(), sub.req.toListing(), sub.uploads)
	if err != nil {
		if vErr, ok := domain.AsValidationError(err); ok {
			WriteJSONError(w, http.StatusBadRequest, vErr.Messages)
			return
		}
		handlerLogger.Error("Failed to create property", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	RespondWithJSON(w, http.StatusCreated, listingResponse{Success: true, Data: created})
}

// UpdateListing обрабатывает PUT /api/properties/{propertyID}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "UpdateListing", "property_id": id.String()})

	sub, err := parseListingSubmission(r)
	if err != nil {
		handlerLogger.Warn("Rejected malformed update request", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer sub.Close()

	updated, err := h.updateListingUC.Execute(r.Context(), id, sub.req.toPatch(), sub.uploads)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		if vErr, ok := domain.AsValidationError(err); ok {
			WriteJSONError(w, http.StatusBadRequest, vErr.Messages)
			return
		}
		handlerLogger.Error("Failed to update property", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	RespondWithJSON(w, http.StatusOK, listingResponse{Success: true, Data: updated})
}

// DeleteListing обрабатывает DELETE /api/properties/{propertyID}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, "Property not found")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"handler": "DeleteListing", "property_id": id.String()})

	if err := h.deleteListingUC.Execute(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Property not found")
			return
		}
		handlerLogger.Error("Failed to delete property", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}

	RespondWithJSON(w, http.StatusOK, deleteResponse{Success: true, Data: map[string]interface{}{}})
}

func parseFloatParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
