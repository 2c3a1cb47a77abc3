package rest

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONSubmission_NestedBody(t *testing.T) {
	body := `{
		"propertyType": "House",
		"location": {"address": "123 Main Street", "city": "Mumbai", "state": "Maharashtra", "zipCode": "400001"},
		"price": 3500000,
		"area": 1250,
		"bedrooms": 3,
		"bathrooms": 2,
		"features": ["pool", "garden"],
		"agent": {"name": "Priya Sharma", "email": "priya@example.com", "phone": "9876543210"}
	}`
	r := httptest.NewRequest("POST", "/api/properties", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	sub, err := parseListingSubmission(r)
	require.NoError(t, err)
	defer sub.Close()

	listing := sub.req.toListing()
	assert.Equal(t, "House", listing.PropertyType)
	assert.Equal(t, "123 Main Street", listing.Location.Address)
	assert.Equal(t, 3500000.0, listing.Price)
	assert.Equal(t, 3, listing.Bedrooms)
	assert.Equal(t, []string{"pool", "garden"}, listing.Features)
	assert.Equal(t, "priya@example.com", listing.Agent.Email)
	assert.Empty(t, sub.uploads)
}

func TestParseJSONSubmission_FlatKeysOverrideNested(t *testing.T) {
	body := `{
		"location": {"address": "Old Street", "city": "Mumbai"},
		"location.address": "New Street"
	}`
	r := httptest.NewRequest("PUT", "/api/properties/x", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	sub, err := parseListingSubmission(r)
	require.NoError(t, err)
	defer sub.Close()

	require.NotNil(t, sub.req.Location)
	assert.Equal(t, "New Street", *sub.req.Location.Address)
	// не перечисленные плоско поля остаются из вложенного объекта
	assert.Equal(t, "Mumbai", *sub.req.Location.City)
}

func TestParseJSONSubmission_InvalidJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/properties", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")

	_, err := parseListingSubmission(r)
	assert.Error(t, err)
}

func buildMultipart(t *testing.T, fields map[string]string, photos map[string]struct {
	contentType string
	content     string
}) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for name, photo := range photos {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="photos"; filename="` + name + `"`}
		header["Content-Type"] = []string{photo.contentType}
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(photo.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestParseMultipartSubmission_DataFieldPlusFlatOverride(t *testing.T) {
	body, contentType := buildMultipart(t, map[string]string{
		"data":             `{"propertyType": "House", "price": 100, "location": {"city": "Mumbai"}}`,
		"price":            "3500000",
		"location.address": "123 Main Street",
		"bedrooms":         "3",
		"features":         "pool, garden",
	}, nil)

	r := httptest.NewRequest("POST", "/api/properties", body)
	r.Header.Set("Content-Type", contentType)

	sub, err := parseListingSubmission(r)
	require.NoError(t, err)
	defer sub.Close()

	listing := sub.req.toListing()
	assert.Equal(t, "House", listing.PropertyType)
	// плоское поле формы перекрывает значение из "data"
	assert.Equal(t, 3500000.0, listing.Price)
	assert.Equal(t, "123 Main Street", listing.Location.Address)
	assert.Equal(t, "Mumbai", listing.Location.City)
	assert.Equal(t, 3, listing.Bedrooms)
	assert.Equal(t, []string{"pool", "garden"}, listing.Features)
}

func TestParseMultipartSubmission_Photos(t *testing.T) {
	body, contentType := buildMultipart(t, map[string]string{"propertyType": "House"}, map[string]struct {
		contentType string
		content     string
	}{
		"front.jpg": {"image/jpeg", "jpegdata"},
	})

	r := httptest.NewRequest("POST", "/api/properties", body)
	r.Header.Set("Content-Type", contentType)

	sub, err := parseListingSubmission(r)
	require.NoError(t, err)
	defer sub.Close()

	require.Len(t, sub.uploads, 1)
	assert.Equal(t, "front.jpg", sub.uploads[0].OriginalName)
	assert.Equal(t, "image/jpeg", sub.uploads[0].ContentType)
	assert.Equal(t, int64(len("jpegdata")), sub.uploads[0].Size)
}

func TestParseMultipartSubmission_RejectsNonImage(t *testing.T) {
	body, contentType := buildMultipart(t, nil, map[string]struct {
		contentType string
		content     string
	}{
		"notes.txt": {"text/plain", "hello"},
	})

	r := httptest.NewRequest("POST", "/api/properties", body)
	r.Header.Set("Content-Type", contentType)

	_, err := parseListingSubmission(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only image files are allowed")
}

func TestParseMultipartSubmission_RejectsBadNumericField(t *testing.T) {
	body, contentType := buildMultipart(t, map[string]string{"price": "a lot"}, nil)

	r := httptest.NewRequest("POST", "/api/properties", body)
	r.Header.Set("Content-Type", contentType)

	_, err := parseListingSubmission(r)
	assert.Error(t, err)
}
