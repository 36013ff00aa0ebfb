package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/carlaolanches/printer-server/internal/dispatch"
	"github.com/carlaolanches/printer-server/internal/domain"
	"github.com/carlaolanches/printer-server/internal/httpx/middlewares"
	"github.com/carlaolanches/printer-server/internal/pkg/cache"
	"github.com/carlaolanches/printer-server/internal/store"
)

// Cached idempotency keys outlive any realistic storefront retry window.
const idempotencyTTL = 24 * time.Hour

// Handler handles incoming HTTP requests for order ingestion and the
// operator actions.
type Handler struct {
	store      store.OrderStore
	dispatcher *dispatch.Dispatcher
	cache      cache.Cache // nil-safe: idempotency guard skipped if nil
	adminKey   string
}

// NewHandler initialises the handler with its collaborators.
// c may be nil — duplicate submissions are then not deduplicated, which
// still satisfies the at-most-once ingestion contract.
func NewHandler(st store.OrderStore, d *dispatch.Dispatcher, c cache.Cache, adminKey string) *Handler {
	return &Handler{
		store:      st,
		dispatcher: d,
		cache:      c,
		adminKey:   adminKey,
	}
}

// CreateOrder receives the storefront envelope, validates the payload and
// persists a pendente record. The API key was already checked by the
// router middleware.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var env createOrderEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if env.Action != "create_order" || env.Order == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "action must be create_order with an order payload")
		return
	}
	if err := env.Order.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_order", err.Error())
		return
	}

	idempKey := r.Header.Get(middlewares.HeaderXIdempotencyKey)
	if h.cache != nil && idempKey != "" {
		cacheKey := h.cache.GenerateKey("create_order", idempKey)
		id, err := h.cache.Get(ctx, cacheKey)
		if err != nil {
			slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
		} else if id != "" {
			slog.InfoContext(ctx, "duplicate submission replayed", "order_id", id)
			writeJSON(w, http.StatusOK, createOrderResponse{OK: true, ID: id})
			return
		}
	}

	rec, err := h.store.Create(ctx, *env.Order)
	if err != nil {
		slog.ErrorContext(ctx, "create order failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_unavailable", "could not persist order")
		return
	}

	if h.cache != nil && idempKey != "" {
		cacheKey := h.cache.GenerateKey("create_order", idempKey)
		if err := h.cache.Set(ctx, cacheKey, rec.ID, idempotencyTTL); err != nil {
			slog.WarnContext(ctx, "idempotency store failed", "error", err)
		}
	}

	slog.InfoContext(ctx, "order received", "order_id", rec.ID, "total", rec.Order.Total)
	writeJSON(w, http.StatusCreated, createOrderResponse{OK: true, ID: rec.ID})
}

// ListOrders returns all records newest-first as summaries.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list orders failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storage_unavailable", "could not list orders")
		return
	}

	summaries := lo.Map(records, func(rec domain.OrderRecord, _ int) orderSummary {
		return mapRecordToSummary(rec)
	})
	writeJSON(w, http.StatusOK, summaries)
}

// GetOrderByID retrieves a single order record by its id.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}

	rec, err := h.store.Get(r.Context(), orderID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order_not_found", orderID)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "get order failed", "order_id", orderID, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_unavailable", "could not read order")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
