package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"validarfc/internal/validation/models"
	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/requestcontext"
)

// Service defines the validation operations the handler needs.
type Service interface {
	Validate(ctx context.Context, raw string) models.Record
	History(ctx context.Context, req models.PageRequest) *models.Page
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a validation handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/validate", h.HandleValidate)
	r.Get("/history", h.HandleHistory)
}

// HandleValidate handles POST /validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record := h.service.Validate(ctx, *req.RFC)

	h.logger.InfoContext(ctx, "rfc validated",
		"request_id", requestID,
		"rfc", record.RFC,
		"is_valid", record.IsValid,
	)

	httputil.WriteJSON(w, http.StatusOK, toValidateResponse(record))
}

// HandleHistory handles GET /history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := h.service.History(ctx, parsePageRequest(r.URL.Query()))

	httputil.WriteJSON(w, http.StatusOK, toHistoryResponse(page))
}
