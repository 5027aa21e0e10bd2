package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pictor/pictor/internal/handler/dto"
	"github.com/pictor/pictor/internal/model"
	"github.com/pictor/pictor/internal/service"
)

// ImageServicer is the image service surface the handler needs.
type ImageServicer interface {
	Page(ctx context.Context, input service.PageInput) (*model.Page, error)
}

// ImageHandler handles image listing requests.
type ImageHandler struct {
	svc    ImageServicer
	logger *slog.Logger
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(svc ImageServicer, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/images.
// limit, cursor, and keyword come from the query string; out-of-range
// and unparseable limits fall back to service-side clamping, and an
// unrecognized cursor is ignored rather than rejected.
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	page, err := h.svc.Page(r.Context(), service.PageInput{
		Keyword: query.Get("keyword"),
		Cursor:  query.Get("cursor"),
		Limit:   limit,
	})
	if err != nil {
		h.logger.Error("image listing failed",
			"error", err,
			"keyword", query.Get("keyword"),
		)
		writeError(w, http.StatusInternalServerError, "Failed to load images")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToImageListResponse(page))
}
