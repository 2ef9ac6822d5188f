package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/megamarket-backend/internal/domain"
	"github.com/heartmarshall/megamarket-backend/internal/service/catalog"
)

// catalogService defines the catalog operations served over HTTP.
type catalogService interface {
	ImportBatch(ctx context.Context, input catalog.ImportInput) (catalog.ImportResult, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.ItemNode, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (*catalog.DeleteResult, error)
	GetHistory(ctx context.Context, input catalog.HistoryInput) ([]domain.ItemSnapshot, error)
	GetRecentSales(ctx context.Context, asOf time.Time) ([]domain.Item, error)
	Recalculate(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

// CatalogHandler serves the catalog REST endpoints.
type CatalogHandler struct {
	svc          catalogService
	maxBodyBytes int64
	log          *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler. maxBodyBytes <= 0 disables the
// request body limit.
func NewCatalogHandler(svc catalogService, maxBodyBytes int64, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		svc:          svc,
		maxBodyBytes: maxBodyBytes,
		log:          logger.With("handler", "catalog"),
	}
}

// Import handles POST /imports.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	input, err := DecodeImport(r.Body)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if _, err := h.svc.ImportBatch(r.Context(), input); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Delete handles DELETE /delete/{id}.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if _, err := h.svc.DeleteItem(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Node handles GET /nodes/{id}.
func (h *CatalogHandler) Node(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	node, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toShopUnit(node))
}

// Sales handles GET /sales?date=.
func (h *CatalogHandler) Sales(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.handleError(w, r, domain.NewValidationError("date", "required"))
		return
	}
	asOf, err := parseTimestamp(raw)
	if err != nil {
		h.handleError(w, r, domain.NewValidationError("date", "must be an ISO 8601 timestamp"))
		return
	}

	offers, err := h.svc.GetRecentSales(r.Context(), asOf)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := statisticResponse{Items: make([]statisticUnit, 0, len(offers))}
	for _, o := range offers {
		resp.Items = append(resp.Items, itemToStatisticUnit(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Statistic handles GET /node/{id}/statistic?dateStart=&dateEnd=.
func (h *CatalogHandler) Statistic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	input := catalog.HistoryInput{ItemID: id}
	q := r.URL.Query()
	if input.Start, err = optionalTimestamp(q.Get("dateStart"), "dateStart"); err != nil {
		h.handleError(w, r, err)
		return
	}
	if input.End, err = optionalTimestamp(q.Get("dateEnd"), "dateEnd"); err != nil {
		h.handleError(w, r, err)
		return
	}

	snaps, err := h.svc.GetHistory(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := statisticResponse{Items: make([]statisticUnit, 0, len(snaps))}
	for _, s := range snaps {
		resp.Items = append(resp.Items, snapshotToStatisticUnit(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Recalculate handles POST /nodes/{id}/recalculate.
func (h *CatalogHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	item, err := h.svc.Recalculate(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToStatisticUnit(*item))
}

func (h *CatalogHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.log.InfoContext(r.Context(), "request rejected", slog.String("error", err.Error()), slog.Any("fields", domain.FieldErrors(err)))
		writeError(w, http.StatusBadRequest, "Validation Failed")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Item not found")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		h.log.WarnContext(r.Context(), "conflict", slog.String("error", err.Error()))
		writeError(w, http.StatusConflict, "Conflict")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "must be a UUID")
	}
	return id, nil
}

func optionalTimestamp(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseTimestamp(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be an ISO 8601 timestamp")
	}
	return &t, nil
}
