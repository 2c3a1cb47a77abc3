package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"property-listing-service/internal/core/port"
)

const (
	// maxPhotoSizeBytes — лимит размера одного файла фотографии (5 МБ).
	maxPhotoSizeBytes = 5 * 1024 * 1024
	// maxPhotosPerRequest — лимит количества файлов в одном запросе.
	maxPhotosPerRequest = 10
	// maxJSONBodyBytes — лимит тела JSON-запроса.
	maxJSONBodyBytes = 1 << 20
	// maxMultipartMemory — порог, после которого файлы уходят во временные
	// файлы на диске.
	maxMultipartMemory = 32 << 20
)

// listingSubmission — разобранное тело запроса на создание/обновление:
// поля объявления плюс открытые файлы фотографий. Close обязателен.
type listingSubmission struct {
	req     listingRequest
	uploads []port.PhotoUpload
	closers []io.Closer
}

func (s *listingSubmission) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

// parseListingSubmission принимает либо application/json, либо
// multipart/form-data с JSON-полем "data" и файлами "photos".
// Плоские ключи вида "location.address" имеют приоритет над вложенным
// объектом location — так поля приходят из HTML-форм.
func parseListingSubmission(r *http.Request) (*listingSubmission, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = "application/json"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return parseMultipartSubmission(r)
	}
	return parseJSONSubmission(r)
}

func parseJSONSubmission(r *http.Request) (*listingSubmission, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) == 0 {
		return &listingSubmission{}, nil
	}

	sub := &listingSubmission{}
	if err := decodeListingJSON(body, &sub.req); err != nil {
		return nil, err
	}
	return sub, nil
}

func parseMultipartSubmission(r *http.Request) (*listingSubmission, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	sub := &listingSubmission{}

	// Поле "data" несет JSON с вложенной структурой
	if data := r.FormValue("data"); data != "" {
		if err := decodeListingJSON([]byte(data), &sub.req); err != nil {
			return nil, err
		}
	}

	// Остальные поля формы плоские и перекрывают JSON
	for key, values := range r.MultipartForm.Value {
		if key == "data" || len(values) == 0 {
			continue
		}
		if key == "features" && len(values) > 1 {
			sub.req.Features = trimAll(values)
			continue
		}
		if err := setFlatField(&sub.req, key, values[0]); err != nil {
			return nil, err
		}
	}

	files := r.MultipartForm.File["photos"]
	if len(files) > maxPhotosPerRequest {
		return nil, fmt.Errorf("cannot upload more than %d photos at once", maxPhotosPerRequest)
	}
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			sub.Close()
			return nil, fmt.Errorf("only image files are allowed, got %q for %q", contentType, fh.Filename)
		}
		if fh.Size > maxPhotoSizeBytes {
			sub.Close()
			return nil, fmt.Errorf("file %q is too large, the limit is %d bytes", fh.Filename, maxPhotoSizeBytes)
		}

		f, err := fh.Open()
		if err != nil {
			sub.Close()
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
		}
		sub.closers = append(sub.closers, f)
		sub.uploads = append(sub.uploads, port.PhotoUpload{
			OriginalName: fh.Filename,
			ContentType:  contentType,
			Size:         fh.Size,
			Content:      f,
		})
	}

	return sub, nil
}

// decodeListingJSON разбирает JSON дважды: сначала во вложенную структуру,
// затем по сырой map — чтобы применить плоские ключи с точкой поверх нее.
func decodeListingJSON(body []byte, req *listingRequest) error {
	if err := json.Unmarshal(body, req); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}
	for key, value := range raw {
		if !strings.Contains(key, ".") {
			continue
		}
		str, ok := flatValueToString(value)
		if !ok {
			continue
		}
		if err := setFlatField(req, key, str); err != nil {
			return err
		}
	}
	return nil
}

func flatValueToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// setFlatField применяет одно плоское поле формы к запросу.
// Неизвестные ключи молча пропускаются.
func setFlatField(req *listingRequest, key, value string) error {
	switch key {
	case "propertyType":
		req.PropertyType = &value
	case "description":
		req.Description = &value
	case "status":
		req.Status = &value
	case "features":
		req.Features = trimAll(strings.Split(value, ","))
	case "price", "area":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("field %q must be a number, got %q", key, value)
		}
		if key == "price" {
			req.Price = &parsed
		} else {
			req.Area = &parsed
		}
	case "bedrooms", "bathrooms":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("field %q must be an integer, got %q", key, value)
		}
		if key == "bedrooms" {
			req.Bedrooms = &parsed
		} else {
			req.Bathrooms = &parsed
		}
	case "location.address", "location.city", "location.state", "location.zipCode", "location.country":
		if req.Location == nil {
			req.Location = &locationRequest{}
		}
		switch key {
		case "location.address":
			req.Location.Address = &value
		case "location.city":
			req.Location.City = &value
		case "location.state":
			req.Location.State = &value
		case "location.zipCode":
			req.Location.ZipCode = &value
		case "location.country":
			req.Location.Country = &value
		}
	case "location.latitude", "location.longitude":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("field %q must be a number, got %q", key, value)
		}
		if req.Location == nil {
			req.Location = &locationRequest{}
		}
		if key == "location.latitude" {
			req.Location.Latitude = &parsed
		} else {
			req.Location.Longitude = &parsed
		}
	case "agent.name", "agent.email", "agent.phone":
		if req.Agent == nil {
			req.Agent = &agentRequest{}
		}
		switch key {
		case "agent.name":
			req.Agent.Name = &value
		case "agent.email":
			req.Agent.Email = &value
		case "agent.phone":
			req.Agent.Phone = &value
		}
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
