// Package v1 implements the version 1 HTTP API routes.
package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/blockgen"
	"github.com/helixml/blockgen/application/service"
	"github.com/helixml/blockgen/domain/block"
	"github.com/helixml/blockgen/infrastructure/api/jsonapi"
	"github.com/helixml/blockgen/infrastructure/api/middleware"
)

// BlocksRouter handles block catalogue endpoints.
type BlocksRouter struct {
	client *blockgen.Client
	logger *slog.Logger
}

// NewBlocksRouter creates a new BlocksRouter.
func NewBlocksRouter(client *blockgen.Client) *BlocksRouter {
	return &BlocksRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for block endpoints.
func (r *BlocksRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{name}", r.Get)

	return router
}

// List handles GET /api/v1/blocks.
//
//	@Summary		List blocks
//	@Description	Robot blocks sorted by name, followed by the structural blocks
//	@Tags			blocks
//	@Produce		json
//	@Param			genus	query		string	false	"Filter by genus (value or command)"
//	@Success		200		{object}	jsonapi.Document
//	@Failure		400		{object}	jsonapi.Document
//	@Router			/blocks [get]
func (r *BlocksRouter) List(w http.ResponseWriter, req *http.Request) {
	genus := block.Genus(strings.ToLower(req.URL.Query().Get("genus")))
	if genus != "" && genus != block.GenusValue && genus != block.GenusCommand {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest,
			"genus must be value or command", nil), r.logger)
		return
	}

	var blocks []service.BlockInfo
	for _, b := range r.client.Blocks() {
		if genus == "" || b.Genus() == genus {
			blocks = append(blocks, b)
		}
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(jsonapi.BlockResources(blocks)))
}

// Get handles GET /api/v1/blocks/{name}.
//
//	@Summary		Get block
//	@Description	One block by wire name
//	@Tags			blocks
//	@Produce		json
//	@Param			name	path		string	true	"Block wire name"
//	@Success		200		{object}	jsonapi.Document
//	@Failure		404		{object}	jsonapi.Document
//	@Router			/blocks/{name} [get]
func (r *BlocksRouter) Get(w http.ResponseWriter, req *http.Request) {
	name := strings.ToLower(chi.URLParam(req, "name"))

	for _, b := range r.client.Blocks() {
		if b.Name() == name {
			middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.BlockResource(b)))
			return
		}
	}

	middleware.WriteError(w, req, middleware.NewAPIError(http.StatusNotFound,
		"block not found: "+name, nil), r.logger)
}
