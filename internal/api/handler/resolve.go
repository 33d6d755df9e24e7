package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// EmbedResolver resolves one canonical URL into an embed description.
type EmbedResolver interface {
	Resolve(ctx context.Context, canonicalURL string) (*domain.EmbedDescription, error)
}

// ResolveHandler handles embed resolution requests.
type ResolveHandler struct {
	resolver EmbedResolver
	logger   *slog.Logger
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(resolver EmbedResolver, logger *slog.Logger) *ResolveHandler {
	return &ResolveHandler{resolver: resolver, logger: logger}
}

// Get handles GET /resolve?url=<canonicalUrl>.
func (h *ResolveHandler) Get(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	embed, err := h.resolver.Resolve(r.Context(), target)
	if err != nil {
		h.writeResolveError(w, target, err)
		return
	}

	writeJSON(w, http.StatusOK, embed)
}

func (h *ResolveHandler) writeResolveError(w http.ResponseWriter, target string, err error) {
	if errors.Is(err, domain.ErrUnsupportedPlatform) {
		writeError(w, http.StatusNotFound, "unsupported platform")
		return
	}

	var resErr *domain.ResolutionError
	if errors.As(err, &resErr) {
		h.logger.Warn("resolution failed",
			"url", target,
			"reason", resErr.Reason,
			"error", err,
		)
		if resErr.Reason == domain.ReasonBadURL {
			writeError(w, http.StatusBadRequest, "URL has no extractable content identifier")
			return
		}
		writeError(w, http.StatusBadGateway, "resolution failed: "+string(resErr.Reason))
		return
	}

	h.logger.Error("resolve failed", "url", target, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to resolve embed")
}
