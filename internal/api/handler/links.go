package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clipshelf/clipshelf/internal/domain"
	"github.com/clipshelf/clipshelf/internal/service"
)

// LinkProvider serves the persisted link collection and runs extractions.
type LinkProvider interface {
	Links(ctx context.Context) ([]domain.LinkEntry, error)
	Extract(ctx context.Context, opts service.ExtractOptions) (*service.ExtractResult, error)
}

// LinksHandler handles link collection requests.
type LinksHandler struct {
	links    LinkProvider
	defaults service.ExtractOptions
	logger   *slog.Logger
}

// NewLinksHandler creates a new links handler. defaults configure extraction
// runs triggered over HTTP.
func NewLinksHandler(links LinkProvider, defaults service.ExtractOptions, logger *slog.Logger) *LinksHandler {
	return &LinksHandler{links: links, defaults: defaults, logger: logger}
}

// Get handles GET /links. A missing links file means no extraction has run
// yet, which is reported differently from a corrupt file.
func (h *LinksHandler) Get(w http.ResponseWriter, r *http.Request) {
	entries, err := h.links.Links(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLinksNotExtracted) {
			writeError(w, http.StatusNotFound, "links not extracted yet; run the extractor first")
			return
		}
		h.logger.Error("load links failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read links file")
		return
	}

	if entries == nil {
		entries = []domain.LinkEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// ExtractResponse summarizes an extraction run triggered over HTTP.
type ExtractResponse struct {
	RunID   string `json:"run_id"`
	Records int    `json:"records"`
	Links   int    `json:"links"`
}

// Extract handles POST /extract: it re-scans the message archive and
// overwrites the links file.
func (h *LinksHandler) Extract(w http.ResponseWriter, r *http.Request) {
	result, err := h.links.Extract(r.Context(), h.defaults)
	if err != nil {
		h.logger.Error("extraction run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "extraction failed")
		return
	}

	writeJSON(w, http.StatusOK, ExtractResponse{
		RunID:   result.RunID,
		Records: result.RecordCount,
		Links:   result.LinkCount,
	})
}
