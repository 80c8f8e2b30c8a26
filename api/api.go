package api

import (
	"context"
	"net/http"

	"catalog-services/db"
	"catalog-services/types"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/microcosm-cc/bluemonday"
	"github.com/ninja-software/log_helpers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// ProductStore is the record store holding product rows.
type ProductStore interface {
	All(ctx context.Context) ([]*types.Product, error)
	Get(ctx context.Context, productID types.ProductID) (*types.Product, error)
	Insert(ctx context.Context, product *types.Product) error
	Update(ctx context.Context, product *types.Product) error
	Delete(ctx context.Context, productID types.ProductID) error
}

// BlobStore holds uploaded file bytes, addressed by file path.
type BlobStore interface {
	Insert(ctx context.Context, blob *types.Blob, namespace string) error
	Get(ctx context.Context, filePath string) (*types.Blob, error)
	Delete(ctx context.Context, filePath string) error
}

// API server
type API struct {
	Log          *zerolog.Logger
	Routes       chi.Router
	Addr         string
	Products     ProductStore
	Blobs        BlobStore
	Conn         db.Conn
	HTMLSanitize *bluemonday.Policy
}

// NewAPI registers routes
func NewAPI(
	log *zerolog.Logger,
	conn db.Conn,
	products ProductStore,
	blobs BlobStore,
	addr string,
	frontendHostURL string,
	htmlSanitize *bluemonday.Policy,
) *API {
	api := &API{
		Log:          log_helpers.NamedLogger(log, "api"),
		Routes:       chi.NewRouter(),
		Addr:         addr,
		Products:     products,
		Blobs:        blobs,
		Conn:         conn,
		HTMLSanitize: htmlSanitize,
	}

	api.Routes.Use(middleware.RequestID)
	api.Routes.Use(middleware.RealIP)
	api.Routes.Use(cors.New(cors.Options{
		AllowedOrigins: []string{frontendHostURL},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
	}).Handler)

	api.Routes.Handle("/metrics", promhttp.Handler())
	api.Routes.Route("/api", func(r chi.Router) {
		r.Mount("/check", CheckRouter(log_helpers.NamedLogger(log, "check router"), conn))
		r.Mount("/files", FileRouter(log_helpers.NamedLogger(log, "file router"), blobs))
		r.Mount("/products", ProductRouter(log_helpers.NamedLogger(log, "product router"), api))
	})

	return api
}

// Run the API service
func (api *API) Run(ctx context.Context) error {
	api.Log.Info().Str("addr", api.Addr).Msg("Starting API")

	server := &http.Server{
		Addr:    api.Addr,
		Handler: api.Routes,
	}

	go func() {
		<-ctx.Done()
		api.Log.Info().Msg("Stopping API")
		err := server.Shutdown(ctx)
		if err != nil {
			api.Log.Warn().Err(err).Msg("")
		}
	}()

	return server.ListenAndServe()
}
