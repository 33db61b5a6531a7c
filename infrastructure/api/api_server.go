package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/helixml/blockgen"
	apimiddleware "github.com/helixml/blockgen/infrastructure/api/middleware"
	v1 "github.com/helixml/blockgen/infrastructure/api/v1"
	"github.com/helixml/blockgen/internal/config"
	mcpinternal "github.com/helixml/blockgen/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocsPath is where the Swagger UI and OpenAPI document are served.
const DocsPath = "/docs"

// APIServer provides an HTTP API backed by a blockgen Client.
type APIServer struct {
	client       *blockgen.Client
	cfg          config.AppConfig
	version      string
	server       *Server
	router       chi.Router
	routerCalled bool
	logger       *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given blockgen Client.
// When cfg carries API keys, POST /api/v1/sketches requires a valid key in
// X-API-KEY. The block catalogue, health checks, MCP and docs remain open.
func NewAPIServer(client *blockgen.Client, cfg config.AppConfig, version string) *APIServer {
	return &APIServer{
		client:  client,
		cfg:     cfg,
		version: version,
		logger:  client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(apimiddleware.CorrelationID)
		r.Use(apimiddleware.Logging(a.logger))
		if origins := a.cfg.CORS().AllowedOrigins(); len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
				AllowedHeaders: []string{
					"Accept", "Content-Type", apimiddleware.APIKeyHeader,
					apimiddleware.CorrelationIDHeader, "Mcp-Session-Id", "Mcp-Protocol-Version",
				},
				ExposedHeaders: []string{apimiddleware.CorrelationIDHeader, "Mcp-Session-Id", "Content-Disposition"},
				MaxAge:         300,
			}))
		}

		r.Get("/health", a.health)
		r.Get("/healthz", a.health)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(a.cfg.RequestTimeout()))

			r.Mount("/blocks", v1.NewBlocksRouter(a.client).Routes())

			r.Group(func(r chi.Router) {
				r.Use(apimiddleware.WriteProtectAuth(a.cfg.APIKeys()))
				r.Mount("/sketches", v1.NewSketchesRouter(a.client, a.cfg.MaxProgramBytes()).Routes())
			})
		})

		r.Mount(DocsPath, NewDocsRouter(DocsPath+"/openapi.json").Routes())

		// No timeout middleware: MCP streams responses and keeps session
		// state in response headers.
		mcpSrv := mcpinternal.NewServer(a.client, a.version, a.logger)
		r.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
	})
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": a.version,
	})
}

// ListenAndServe starts the HTTP server on the configured address.
func (a *APIServer) ListenAndServe() error {
	srv := NewServer(a.cfg.Addr(), a.cfg.RequestTimeout(), a.logger)
	a.server = &srv

	if a.routerCalled && a.router != nil {
		srv.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(srv.Router())
	}

	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
