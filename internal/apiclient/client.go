// Package apiclient — HTTP-клиент REST API сервиса объявлений. Используется
// консольным агентом голосового ввода и пригоден для интеграционных тестов.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/domain"
	"property-listing-service/internal/core/port"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создает клиента. httpClient задается явно, чтобы вызывающая
// сторона управляла таймаутами и транспортом; nil дает клиента с
// таймаутом 30 секунд.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, requestURL, contentType string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// List возвращает объявления, подходящие под фильтры.
func (c *Client) List(ctx context.Context, filters ListFilters) ([]domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingApiClient",
		"method":    "List",
	})

	query := url.Values{}
	if filters.City != "" {
		query.Set("city", filters.City)
	}
	if filters.State != "" {
		query.Set("state", filters.State)
	}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.PropertyType != "" {
		query.Set("propertyType", filters.PropertyType)
	}
	if filters.PriceMin != nil {
		query.Set("priceMin", strconv.FormatFloat(*filters.PriceMin, 'f', -1, 64))
	}
	if filters.PriceMax != nil {
		query.Set("priceMax", strconv.FormatFloat(*filters.PriceMax, 'f', -1, 64))
	}

	requestURL := c.baseURL + "/api/properties"
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}
	clientLogger.Debug("Sending request to listing service", port.Fields{"url": requestURL})

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, "", nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to listing service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		clientLogger.Error("Received error response from listing service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var envelope listingsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		clientLogger.Error("Failed to decode response from listing service", err, nil)
		return nil, err
	}

	return envelope.Data, nil
}

// Get возвращает одно объявление по ID.
func (c *Client) Get(ctx context.Context, id string) (*domain.Listing, error) {
	requestURL := fmt.Sprintf("%s/api/properties/%s", c.baseURL, url.PathEscape(id))

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var envelope listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Create отправляет новое объявление. При наличии фотографий запрос уходит
// как multipart/form-data с JSON-полем "data" и файлами "photos".
func (c *Client) Create(ctx context.Context, payload ListingPayload, photos []PhotoFile) (*domain.Listing, error) {
	return c.submit(ctx, http.MethodPost, c.baseURL+"/api/properties", payload, photos, http.StatusCreated)
}

// Update отправляет частичное обновление объявления.
func (c *Client) Update(ctx context.Context, id string, payload ListingPayload, photos []PhotoFile) (*domain.Listing, error) {
	requestURL := fmt.Sprintf("%s/api/properties/%s", c.baseURL, url.PathEscape(id))
	return c.submit(ctx, http.MethodPut, requestURL, payload, photos, http.StatusOK)
}

// Delete удаляет объявление вместе с файлами фотографий.
func (c *Client) Delete(ctx context.Context, id string) error {
	requestURL := fmt.Sprintf("%s/api/properties/%s", c.baseURL, url.PathEscape(id))

	resp, err := c.doRequest(ctx, http.MethodDelete, requestURL, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) submit(ctx context.Context, method, requestURL string, payload ListingPayload, photos []PhotoFile, wantStatus int) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "ListingApiClient",
		"method":    method,
		"url":       requestURL,
	})

	var (
		body        io.Reader
		contentType string
		err         error
	)
	if len(photos) > 0 {
		body, contentType, err = buildMultipartBody(payload, photos)
		if err != nil {
			return nil, err
		}
	} else {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal listing payload: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	clientLogger.Debug("Submitting listing", port.Fields{"photos": len(photos)})

	resp, err := c.doRequest(ctx, method, requestURL, contentType, body)
	if err != nil {
		clientLogger.Error("Failed to perform request to listing service", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		clientLogger.Error("Received error response from listing service", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("listing service returned unexpected status %d, want %d", resp.StatusCode, wantStatus)
	}

	var envelope listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		clientLogger.Error("Failed to decode response from listing service", err, nil)
		return nil, err
	}
	return &envelope.Data, nil
}

func buildMultipartBody(payload ListingPayload, photos []PhotoFile) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal listing payload: %w", err)
	}
	if err := writer.WriteField("data", string(encoded)); err != nil {
		return nil, "", err
	}

	for _, photo := range photos {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename=%q`, photo.Name))
		contentType := photo.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, photo.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write photo %q: %w", photo.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// checkStatus разбирает тело ошибки в APIError для статусов вне 2xx.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && len(envelope.Error) > 0 {
		// error бывает строкой или списком сообщений
		var single string
		if json.Unmarshal(envelope.Error, &single) == nil {
			apiErr.Messages = []string{single}
		} else {
			var many []string
			if json.Unmarshal(envelope.Error, &many) == nil {
				apiErr.Messages = many
			}
		}
	}
	return apiErr
}
