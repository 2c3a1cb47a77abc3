package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
	"property-listing-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUseCases реализует все интерфейсы use case поверх подменяемых функций.
type stubUseCases struct {
	create func(ctx context.Context, listing domain.Listing, photos []port.PhotoUpload) (*domain.Listing, error)
	update func(ctx context.Context, id uuid.UUID, patch usecases_port.ListingPatch, photos []port.PhotoUpload) (*domain.Listing, error)
	get    func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	list   func(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error)
	delete func(ctx context.Context, id uuid.UUID) error
}

type stubCreate struct{ s *stubUseCases }

func (u stubCreate) Execute(ctx context.Context, l domain.Listing, p []port.PhotoUpload) (*domain.Listing, error) {
	return u.s.create(ctx, l, p)
}

type stubUpdate struct{ s *stubUseCases }

func (u stubUpdate) Execute(ctx context.Context, id uuid.UUID, patch usecases_port.ListingPatch, p []port.PhotoUpload) (*domain.Listing, error) {
	return u.s.update(ctx, id, patch, p)
}

type stubGet struct{ s *stubUseCases }

func (u stubGet) Execute(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return u.s.get(ctx, id)
}

type stubList struct{ s *stubUseCases }

func (u stubList) Execute(ctx context.Context, f domain.ListingFilters) ([]domain.Listing, error) {
	return u.s.list(ctx, f)
}

type stubDelete struct{ s *stubUseCases }

func (u stubDelete) Execute(ctx context.Context, id uuid.UUID) error {
	return u.s.delete(ctx, id)
}

func newTestServer(s *stubUseCases) *Server {
	handler := NewListingHandler(stubCreate{s}, stubUpdate{s}, stubGet{s}, stubList{s}, stubDelete{s})
	return NewServer("0", handler, "testdata", "/uploads", noopLogger{})
}

// noopLogger удовлетворяет port.LoggerPort в тестах.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields port.Fields)            {}
func (noopLogger) Info(msg string, fields port.Fields)             {}
func (noopLogger) Warn(msg string, fields port.Fields)             {}
func (noopLogger) Error(msg string, err error, fields port.Fields) {}
func (noopLogger) WithFields(fields port.Fields) port.LoggerPort   { return noopLogger{} }

func doRequest(t *testing.T, s *stubUseCases, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := newTestServer(s)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, r)
	return w
}

func TestGetListings_ReturnsEnvelope(t *testing.T) {
	listing := domain.Listing{ID: uuid.New(), PropertyType: "House"}
	s := &stubUseCases{
		list: func(ctx context.Context, f domain.ListingFilters) ([]domain.Listing, error) {
			return []domain.Listing{listing}, nil
		},
	}

	w := doRequest(t, s, "GET", "/api/properties", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp listingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, listing.ID, resp.Data[0].ID)
}

func TestGetListings_PassesFilters(t *testing.T) {
	var got domain.ListingFilters
	s := &stubUseCases{
		list: func(ctx context.Context, f domain.ListingFilters) ([]domain.Listing, error) {
			got = f
			return []domain.Listing{}, nil
		},
	}

	w := doRequest(t, s, "GET", "/api/properties?city=Mumbai&status=For+Sale&priceMin=100000&priceMax=5000000", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Mumbai", got.City)
	assert.Equal(t, "For Sale", got.Status)
	require.NotNil(t, got.PriceMin)
	assert.Equal(t, 100000.0, *got.PriceMin)
	require.NotNil(t, got.PriceMax)
	assert.Equal(t, 5000000.0, *got.PriceMax)
}

func TestGetListing_NotFound(t *testing.T) {
	s := &stubUseCases{
		get: func(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
			return nil, domain.ErrNotFound
		},
	}

	w := doRequest(t, s, "GET", "/api/properties/"+uuid.New().String(), "", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Property not found", resp["error"])
}

func TestGetListing_MalformedIDTreatedAsNotFound(t *testing.T) {
	s := &stubUseCases{}
	w := doRequest(t, s, "GET", "/api/properties/not-a-uuid", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateListing_Success(t *testing.T) {
	created := domain.Listing{ID: uuid.New(), PropertyType: "House"}
	var gotListing domain.Listing
	s := &stubUseCases{
		create: func(ctx context.Context, l domain.Listing, p []port.PhotoUpload) (*domain.Listing, error) {
			gotListing = l
			return &created, nil
		},
	}

	body := `{"propertyType": "House", "price": 3500000}`
	w := doRequest(t, s, "POST", "/api/properties", "application/json", body)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "House", gotListing.PropertyType)
	assert.Equal(t, 3500000.0, gotListing.Price)

	var resp listingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, created.ID, resp.Data.ID)
}

func TestCreateListing_ValidationErrorsReturnedAsList(t *testing.T) {
	messages := []string{"Address is required", "City is required"}
	s := &stubUseCases{
		create: func(ctx context.Context, l domain.Listing, p []port.PhotoUpload) (*domain.Listing, error) {
			return nil, &domain.ValidationError{Messages: messages}
		},
	}

	w := doRequest(t, s, "POST", "/api/properties", "application/json", `{"propertyType": "House"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool     `json:"success"`
		Error   []string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, messages, resp.Error)
}

func TestUpdateListing_BuildsPatchFromBody(t *testing.T) {
	id := uuid.New()
	var gotPatch usecases_port.ListingPatch
	s := &stubUseCases{
		update: func(ctx context.Context, gotID uuid.UUID, patch usecases_port.ListingPatch, p []port.PhotoUpload) (*domain.Listing, error) {
			assert.Equal(t, id, gotID)
			gotPatch = patch
			return &domain.Listing{ID: id}, nil
		},
	}

	body := `{"price": 4200000, "location": {"city": "Pune"}}`
	w := doRequest(t, s, "PUT", "/api/properties/"+id.String(), "application/json", body)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, gotPatch.Price)
	assert.Equal(t, 4200000.0, *gotPatch.Price)
	require.NotNil(t, gotPatch.Location.City)
	assert.Equal(t, "Pune", *gotPatch.Location.City)
	// не упомянутые поля не входят в патч
	assert.Nil(t, gotPatch.PropertyType)
	assert.Nil(t, gotPatch.Location.Address)
}

func TestDeleteListing_Success(t *testing.T) {
	id := uuid.New()
	called := false
	s := &stubUseCases{
		delete: func(ctx context.Context, gotID uuid.UUID) error {
			called = true
			assert.Equal(t, id, gotID)
			return nil
		},
	}

	w := doRequest(t, s, "DELETE", "/api/properties/"+id.String(), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)

	var resp deleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestDeleteListing_NotFound(t *testing.T) {
	s := &stubUseCases{
		delete: func(ctx context.Context, id uuid.UUID) error {
			return domain.ErrNotFound
		},
	}

	w := doRequest(t, s, "DELETE", "/api/properties/"+uuid.New().String(), "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
