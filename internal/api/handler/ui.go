package handler

import (
	"net/http"

	"github.com/clipshelf/clipshelf/pkg/ui"
)

// UIHandler serves the embedded viewer page.
type UIHandler struct{}

// NewUIHandler creates a new UI handler.
func NewUIHandler() *UIHandler {
	return &UIHandler{}
}

// Index serves the carousel viewer.
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(ui.ViewerHTML)
}
