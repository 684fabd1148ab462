package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/queue-backend/internal/domain"
	"github.com/heartmarshall/queue-backend/internal/editor"
	"github.com/heartmarshall/queue-backend/internal/service/document"
	"github.com/heartmarshall/queue-backend/internal/timeline"
)

// documentService defines the minimal interface needed by DocumentHandler.
type documentService interface {
	Templates() []string
	CreateDocument(ctx context.Context, input document.CreateDocumentInput) (domain.DocumentRecord, error)
	Import(ctx context.Context, data []byte) (domain.DocumentRecord, error)
	List(ctx context.Context, input document.ListInput) (document.ListResult, error)
	Get(ctx context.Context, id string) (domain.DocumentRecord, error)
	Export(ctx context.Context, id string) ([]byte, domain.Document, error)
	Delete(ctx context.Context, id string) error
	Activity(ctx context.Context, id string, limit int) ([]domain.AuditRecord, error)
	Execute(ctx context.Context, id, name string, payload json.RawMessage) (editor.Result, error)
	State(ctx context.Context, id string) (editor.State, error)
	PageObjects(ctx context.Context, id, pageID string) ([]domain.Object, error)
	Selection(ctx context.Context, id string) ([]domain.Object, error)
	Timeline(ctx context.Context, id, pageID string) (timeline.Tracks, error)
	Frame(ctx context.Context, id, pageID string, index *int) ([]timeline.State, error)
}

// DocumentHandler serves the document and editing endpoints under /api.
type DocumentHandler struct {
	svc     documentService
	log     *slog.Logger
	maxBody int64
}

// NewDocumentHandler creates a DocumentHandler. maxBody limits the size of
// imported documents and command requests.
func NewDocumentHandler(svc documentService, logger *slog.Logger, maxBody int64) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: logger.With("handler", "document"), maxBody: maxBody}
}

// Register mounts the handler's routes on mux.
func (h *DocumentHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/templates", h.Templates)
	mux.HandleFunc("POST /api/documents", h.Create)
	mux.HandleFunc("POST /api/documents/import", h.Import)
	mux.HandleFunc("GET /api/documents", h.List)
	mux.HandleFunc("GET /api/documents/{id}", h.Get)
	mux.HandleFunc("GET /api/documents/{id}/export", h.Export)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Delete)
	mux.HandleFunc("GET /api/documents/{id}/activity", h.Activity)
	mux.HandleFunc("POST /api/documents/{id}/commands", h.Command)
	mux.HandleFunc("GET /api/documents/{id}/state", h.State)
	mux.HandleFunc("GET /api/documents/{id}/pages/{pageId}/objects", h.PageObjects)
	mux.HandleFunc("GET /api/documents/{id}/selection", h.Selection)
	mux.HandleFunc("GET /api/documents/{id}/timeline", h.Timeline)
	mux.HandleFunc("GET /api/documents/{id}/frame", h.Frame)
}

// ---------------------------------------------------------------------------
// Request / response types
// ---------------------------------------------------------------------------

type commandRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type commandResponse struct {
	Command string               `json:"command"`
	Applied bool                 `json:"applied"`
	Result  any                  `json:"result,omitempty"`
	Version uint64               `json:"version"`
	History editor.HistoryStatus `json:"history"`
}

type documentResponse struct {
	Document  domain.Document `json:"document"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type templatesResponse struct {
	Templates []string `json:"templates"`
}

type objectsResponse struct {
	Objects []domain.Object `json:"objects"`
}

type frameResponse struct {
	States []timeline.State `json:"states"`
}

type activityResponse struct {
	Records []domain.AuditRecord `json:"records"`
}

func toDocumentResponse(rec domain.DocumentRecord) documentResponse {
	return documentResponse{Document: rec.Document, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// Templates handles GET /api/templates.
func (h *DocumentHandler) Templates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, templatesResponse{Templates: h.svc.Templates()})
}

// Create handles POST /api/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input document.CreateDocumentInput
	if !h.decode(w, r, &input) {
		return
	}
	rec, err := h.svc.CreateDocument(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(rec))
}

// Import handles POST /api/documents/import. The body is a serialized
// document.
func (h *DocumentHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.bodyError(w, r, err)
		return
	}
	rec, err := h.svc.Import(r.Context(), data)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(rec))
}

// List handles GET /api/documents?search=&limit=&offset=.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var input document.ListInput
	if s := q.Get("search"); s != "" {
		input.Search = &s
	}
	var err error
	if input.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if input.Offset, err = intParam(q.Get("offset"), "offset"); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(rec))
}

// Export handles GET /api/documents/{id}/export.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, doc, err := h.svc.Export(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": exportFilename(doc),
	}))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activity handles GET /api/documents/{id}/activity?limit=.
func (h *DocumentHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	records, err := h.svc.Activity(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse{Records: records})
}

// ---------------------------------------------------------------------------
// Editing
// ---------------------------------------------------------------------------

// Command handles POST /api/documents/{id}/commands.
func (h *DocumentHandler) Command(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		handleError(w, r, h.log, domain.NewValidationError("type", "required"))
		return
	}

	res, err := h.svc.Execute(r.Context(), r.PathValue("id"), req.Type, req.Payload)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, commandResponse{
		Command: res.Command,
		Applied: res.Applied,
		Result:  res.Value,
		Version: res.Version,
		History: res.History,
	})
}

// State handles GET /api/documents/{id}/state.
func (h *DocumentHandler) State(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.State(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// PageObjects handles GET /api/documents/{id}/pages/{pageId}/objects.
func (h *DocumentHandler) PageObjects(w http.ResponseWriter, r *http.Request) {
	objects, err := h.svc.PageObjects(r.Context(), r.PathValue("id"), r.PathValue("pageId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, objectsResponse{Objects: nonNil(objects)})
}

// Selection handles GET /api/documents/{id}/selection.
func (h *DocumentHandler) Selection(w http.ResponseWriter, r *http.Request) {
	objects, err := h.svc.Selection(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, objectsResponse{Objects: nonNil(objects)})
}

// Timeline handles GET /api/documents/{id}/timeline?pageId=.
func (h *DocumentHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.svc.Timeline(r.Context(), r.PathValue("id"), r.URL.Query().Get("pageId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

// Frame handles GET /api/documents/{id}/frame?index=&pageId=.
func (h *DocumentHandler) Frame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var index *int
	if raw := q.Get("index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("index", "must be an integer"))
			return
		}
		index = &n
	}

	states, err := h.svc.Frame(r.Context(), r.PathValue("id"), q.Get("pageId"), index)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if states == nil {
		states = []timeline.State{}
	}
	writeJSON(w, http.StatusOK, frameResponse{States: states})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *DocumentHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(v); err != nil {
		h.bodyError(w, r, err)
		return false
	}
	return true
}

func (h *DocumentHandler) bodyError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "VALIDATION",
			fmt.Sprintf("request body larger than %d bytes", tooLarge.Limit))
		return
	}
	h.log.DebugContext(r.Context(), "invalid request body", slog.String("error", err.Error()))
	writeError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

func nonNil(objects []domain.Object) []domain.Object {
	if objects == nil {
		return []domain.Object{}
	}
	return objects
}

// exportFilename derives a download name from the document name, falling
// back to its id.
func exportFilename(doc domain.Document) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r < ' ':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(doc.DocumentName))
	if name == "" {
		name = doc.ID
	}
	return name + ".json"
}
