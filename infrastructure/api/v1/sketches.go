package v1

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/blockgen"
	"github.com/helixml/blockgen/infrastructure/api/jsonapi"
	"github.com/helixml/blockgen/infrastructure/api/middleware"
	"github.com/helixml/blockgen/infrastructure/api/v1/dto"
)

// yamlMediaTypes are accepted for raw program uploads.
var yamlMediaTypes = map[string]bool{
	"application/yaml":   true,
	"application/x-yaml": true,
	"text/yaml":          true,
	"text/x-yaml":        true,
}

// SketchesRouter handles sketch generation endpoints.
type SketchesRouter struct {
	client   *blockgen.Client
	maxBytes int64
	logger   *slog.Logger
}

// NewSketchesRouter creates a new SketchesRouter. Request bodies larger than
// maxBytes are rejected.
func NewSketchesRouter(client *blockgen.Client, maxBytes int64) *SketchesRouter {
	return &SketchesRouter{
		client:   client,
		maxBytes: maxBytes,
		logger:   client.Logger(),
	}
}

// Routes returns the chi router for sketch endpoints.
func (r *SketchesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Create)

	return router
}

// Create handles POST /api/v1/sketches.
//
//	@Summary		Translate a program
//	@Description	Translate a block program into Arduino sketch source. The body is a
//	@Description	JSON:API document, or a raw program when Content-Type is application/yaml.
//	@Tags			sketches
//	@Accept			json
//	@Accept			application/yaml
//	@Produce		json
//	@Produce		plain
//	@Param			body	body		dto.SketchRequest	true	"Sketch request"
//	@Param			format	query		string				false	"ino returns the bare sketch source"
//	@Success		200		{object}	jsonapi.Document
//	@Failure		400		{object}	jsonapi.Document
//	@Failure		401		{object}	jsonapi.Document
//	@Failure		413		{object}	jsonapi.Document
//	@Failure		422		{object}	jsonapi.Document
//	@Security		APIKeyAuth
//	@Router			/sketches [post]
func (r *SketchesRouter) Create(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, r.maxBytes))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	doc := body
	if !isYAML(req.Header.Get("Content-Type")) {
		doc, err = programFromJSONAPI(body)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
	}

	sketch, err := r.client.TranslateDocument(req.Context(), doc)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if req.URL.Query().Get("format") == "ino" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if sketch.Name() != "" {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
				map[string]string{"filename": sketch.Name() + ".ino"}))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, sketch.Source())
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.SketchResource(sketch)))
}

func programFromJSONAPI(body []byte) ([]byte, error) {
	var request dto.SketchRequest
	if err := json.Unmarshal(body, &request); err != nil {
		return nil, middleware.NewAPIError(http.StatusBadRequest, "invalid JSON:API document", err)
	}
	if request.Data.Type != "" && request.Data.Type != jsonapi.TypeSketch {
		return nil, middleware.NewAPIError(http.StatusConflict,
			"resource type must be "+jsonapi.TypeSketch, nil)
	}
	doc, err := request.ProgramDocument()
	if err != nil {
		return nil, middleware.NewAPIError(http.StatusBadRequest, err.Error(), err)
	}
	return doc, nil
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return yamlMediaTypes[mediaType]
}
