package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_SendsJSONWhenNoPhotos(t *testing.T) {
	created := domain.Listing{ID: uuid.New(), PropertyType: "House"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/properties", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "House", body["propertyType"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": created})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	propertyType := "House"
	got, err := client.Create(context.Background(), ListingPayload{PropertyType: &propertyType}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreate_SendsMultipartWithPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))

		var payload ListingPayload
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &payload))
		require.NotNil(t, payload.PropertyType)
		assert.Equal(t, "Villa", *payload.PropertyType)

		files := r.MultipartForm.File["photos"]
		require.Len(t, files, 1)
		assert.Equal(t, "front.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": domain.Listing{ID: uuid.New()}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	propertyType := "Villa"
	_, err := client.Create(context.Background(), ListingPayload{PropertyType: &propertyType}, []PhotoFile{
		{Name: "front.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg")},
	})
	require.NoError(t, err)
}

func TestCreate_ValidationErrorsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   []string{"Address is required", "City is required"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Create(context.Background(), ListingPayload{}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"Address is required", "City is required"}, apiErr.Messages)
}

func TestClient_PropagatesTraceID(t *testing.T) {
	traceID := uuid.New().String()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, traceID, r.Header.Get("X-Trace-ID"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "count": 0, "data": []domain.Listing{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	ctx := contextkeys.ContextWithTraceID(context.Background(), traceID)

	_, err := client.List(ctx, ListFilters{})
	require.NoError(t, err)
}

func TestList_EncodesFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Mumbai", q.Get("city"))
		assert.Equal(t, "100000", q.Get("priceMin"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "count": 0, "data": []domain.Listing{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	priceMin := 100000.0
	_, err := client.List(context.Background(), ListFilters{City: "Mumbai", PriceMin: &priceMin})
	require.NoError(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": "Property not found"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	err := client.Delete(context.Background(), uuid.New().String())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, []string{"Property not found"}, apiErr.Messages)
}
