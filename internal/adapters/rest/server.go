package rest

import (
	"context"
	"net/http"

	core_port "property-listing-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	listingHandler *ListingHandler,
	uploadsDir string,
	uploadsPublicPath string,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Route("/api/properties", func(r chi.Router) {
		r.Get("/", listingHandler.GetListings)
		r.Post("/", listingHandler.CreateListing)

		r.Get("/{propertyID}", listingHandler.GetListing)
		r.Put("/{propertyID}", listingHandler.UpdateListing)
		r.Delete("/{propertyID}", listingHandler.DeleteListing)
	})

	// Загруженные фотографии раздаются как статика
	fileServer := http.StripPrefix(uploadsPublicPath, http.FileServer(http.Dir(uploadsDir)))
	r.Get(uploadsPublicPath+"/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
