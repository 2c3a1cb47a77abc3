// listing-agent — консольный агент направляемого голосового ввода: ведет
// пользователя по шагам анкеты объявления и отправляет готовый черновик
// в REST API сервиса объявлений.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logger_adapter "property-listing-service/internal/adapters/logger"
	"property-listing-service/internal/apiclient"
	"property-listing-service/internal/contextkeys"
	"property-listing-service/internal/core/port"
	"property-listing-service/internal/dialogue"
	"property-listing-service/internal/speech"

	"github.com/google/uuid"
)

func main() {
	serverURL := flag.String("server", envOrDefault("LISTING_SERVICE_URL", "http://localhost:5000"), "base URL of the listing service")
	flag.Parse()

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    slog.LevelWarn, // диалог в терминале, логи только о проблемах
		IsJSON:   false,
		UseColor: true,
	}).WithFields(port.Fields{"service_name": "listing-agent"})

	ctx := contextkeys.ContextWithLogger(context.Background(), logger)
	ctx = contextkeys.ContextWithTraceID(ctx, uuid.New().String())

	client := apiclient.NewClient(*serverURL, &http.Client{Timeout: 60 * time.Second})

	if err := run(ctx, client); err != nil {
		fmt.Fprintf(os.Stderr, "listing-agent: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *apiclient.Client) error {
	session := dialogue.NewSession()
	if err := session.Start(); err != nil {
		return err
	}

	// Ответы приходят как финальные расшифровки: в терминале строка stdin
	// играет роль зафиксированной фразы распознавателя.
	answers := make(chan string)
	quit := make(chan struct{})
	capture := speech.NewCapture(speech.NewLineSource(os.Stdin), func(text string) {
		select {
		case answers <- text:
		case <-quit:
		}
	})
	if err := capture.Start(ctx); err != nil {
		return fmt.Errorf("failed to start speech capture: %w", err)
	}
	defer func() {
		close(quit)
		capture.Stop()
	}()

	fmt.Println("Let's create a property listing. Answer each question,")
	fmt.Println("or say 'back' to return, 'skip' to skip an optional step, 'cancel' to abort.")
	fmt.Println()

	for session.State() == dialogue.StateInProgress {
		step, err := session.Current()
		if err != nil {
			return err
		}

		current, total := session.Progress()
		fmt.Printf("[%d/%d] %s\n", current, total, step.Question)
		if step.Hint != "" {
			fmt.Printf("      (%s)\n", step.Hint)
		}
		fmt.Print("> ")

		var answer string
		select {
		case answer = <-answers:
		case <-ctx.Done():
			return ctx.Err()
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "cancel":
			if err := session.Cancel(); err != nil {
				return err
			}
			fmt.Println("Listing cancelled.")
			return nil
		case "back":
			if err := session.Retreat(); err != nil {
				return err
			}
			continue
		case "skip":
			if !step.Optional {
				fmt.Println("This field is required and cannot be skipped.")
				continue
			}
			if err := session.Advance(); err != nil {
				return err
			}
			continue
		}

		if err := session.SubmitResponse(answer); err != nil {
			var fieldErr *dialogue.FieldError
			if errors.As(err, &fieldErr) {
				fmt.Printf("Sorry, %v. Please try again.\n\n", fieldErr)
				continue
			}
			return err
		}
		if err := session.Advance(); err != nil {
			return err
		}
		fmt.Println()
	}

	if session.State() != dialogue.StateCompleted {
		fmt.Println("Listing was not completed.")
		return nil
	}

	draft := session.Draft()
	printSummary(draft)

	payload, err := buildPayload(draft)
	if err != nil {
		return err
	}

	var photos []apiclient.PhotoFile
	var photoFiles []*os.File
	defer func() {
		for _, f := range photoFiles {
			f.Close()
		}
	}()
	if draft.PhotoConfirmation == "Yes" {
		photos, photoFiles, err = collectPhotos(answers, ctx)
		if err != nil {
			return err
		}
	}

	fmt.Println("Submitting listing...")
	created, err := client.Create(ctx, payload, photos)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
			fmt.Println("The service rejected the listing:")
			for _, msg := range apiErr.Messages {
				fmt.Printf("  - %s\n", msg)
			}
			return errors.New("listing was not saved")
		}
		return err
	}

	fmt.Printf("Listing saved with ID %s\n", created.ID)
	return nil
}

// collectPhotos спрашивает пути к файлам и готовит их к отправке.
func collectPhotos(answers chan string, ctx context.Context) ([]apiclient.PhotoFile, []*os.File, error) {
	fmt.Println("Enter photo file paths separated by commas (or leave empty to skip):")
	fmt.Print("> ")

	var line string
	select {
	case line = <-answers:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	var photos []apiclient.PhotoFile
	var files []*os.File
	for _, path := range strings.Split(line, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if !strings.HasPrefix(contentType, "image/") {
			fmt.Printf("Skipping %q: not an image file\n", path)
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, nil, fmt.Errorf("failed to open photo %q: %w", path, err)
		}
		files = append(files, f)
		info, err := f.Stat()
		if err == nil && info.Size() > 5*1024*1024 {
			fmt.Printf("Skipping %q: larger than 5 MB\n", path)
			continue
		}

		photos = append(photos, apiclient.PhotoFile{
			Name:        filepath.Base(path),
			ContentType: contentType,
			Content:     f,
		})
	}
	return photos, files, nil
}

// buildPayload превращает строковый черновик в типизированное тело запроса.
func buildPayload(draft dialogue.Draft) (apiclient.ListingPayload, error) {
	price, err := strconv.ParseFloat(draft.Price, 64)
	if err != nil {
		return apiclient.ListingPayload{}, fmt.Errorf("draft price %q is not a number", draft.Price)
	}
	area, err := strconv.ParseFloat(draft.Area, 64)
	if err != nil {
		return apiclient.ListingPayload{}, fmt.Errorf("draft area %q is not a number", draft.Area)
	}
	bedrooms, err := strconv.Atoi(draft.Bedrooms)
	if err != nil {
		return apiclient.ListingPayload{}, fmt.Errorf("draft bedrooms %q is not an integer", draft.Bedrooms)
	}
	bathrooms, err := strconv.Atoi(draft.Bathrooms)
	if err != nil {
		return apiclient.ListingPayload{}, fmt.Errorf("draft bathrooms %q is not an integer", draft.Bathrooms)
	}

	return apiclient.ListingPayload{
		PropertyType: &draft.PropertyType,
		Location: &apiclient.LocationPayload{
			Address: &draft.Location.Address,
			City:    &draft.Location.City,
			State:   &draft.Location.State,
			ZipCode: &draft.Location.ZipCode,
		},
		Price:       &price,
		Area:        &area,
		Bedrooms:    &bedrooms,
		Bathrooms:   &bathrooms,
		Description: &draft.Description,
		Features:    draft.Features,
		Agent: &apiclient.AgentPayload{
			Name:  &draft.Agent.Name,
			Email: &draft.Agent.Email,
			Phone: &draft.Agent.Phone,
		},
		Status: &draft.Status,
	}, nil
}

func printSummary(draft dialogue.Draft) {
	fmt.Println()
	fmt.Println("Review your listing:")
	fmt.Printf("  Property type: %s\n", draft.PropertyType)
	fmt.Printf("  Address:       %s, %s, %s %s\n", draft.Location.Address, draft.Location.City, draft.Location.State, draft.Location.ZipCode)
	fmt.Printf("  Price:         %s\n", formatIndianPrice(draft.Price))
	fmt.Printf("  Area:          %s sq ft\n", draft.Area)
	fmt.Printf("  Bedrooms:      %s, bathrooms: %s\n", draft.Bedrooms, draft.Bathrooms)
	fmt.Printf("  Description:   %s\n", draft.Description)
	if len(draft.Features) > 0 {
		fmt.Printf("  Features:      %s\n", strings.Join(draft.Features, ", "))
	}
	fmt.Printf("  Agent:         %s <%s>, %s\n", draft.Agent.Name, draft.Agent.Email, draft.Agent.Phone)
	fmt.Println()
}

// formatIndianPrice выводит цену в индийской группировке разрядов и,
// для круглых сумм, в терминах Lakh/Crore: "₹35,00,000 (35 Lakh)".
func formatIndianPrice(raw string) string {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}

	formatted := "₹" + indianGrouping(value)
	switch {
	case value >= 1e7 && value == float64(int64(value)):
		formatted += fmt.Sprintf(" (%s Crore)", strconv.FormatFloat(value/1e7, 'f', -1, 64))
	case value >= 1e5 && value == float64(int64(value)):
		formatted += fmt.Sprintf(" (%s Lakh)", strconv.FormatFloat(value/1e5, 'f', -1, 64))
	}
	return formatted
}

// indianGrouping группирует разряды по индийской системе:
// последние три цифры, дальше по две (12,34,56,789).
func indianGrouping(value float64) string {
	whole := int64(value)
	s := strconv.FormatInt(whole, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
