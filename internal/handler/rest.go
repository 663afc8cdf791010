package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/wastenot-app/wastenot/internal/analytics"
	"github.com/wastenot-app/wastenot/internal/expiry"
	"github.com/wastenot-app/wastenot/internal/export"
	"github.com/wastenot-app/wastenot/internal/model"
	"github.com/wastenot-app/wastenot/internal/qrcode"
	"github.com/wastenot-app/wastenot/internal/query"
	"github.com/wastenot-app/wastenot/internal/store"
	"github.com/wastenot-app/wastenot/internal/suggest"
)

// Version is the application version.
const Version = "1.0.0"

// Domain metrics.
var (
	itemsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wastenot_items_created_total",
		Help: "Total number of inventory items created",
	})

	itemsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wastenot_items_deleted_total",
		Help: "Total number of inventory items deleted",
	})
)

// Broadcaster pushes item events to connected clients. A nil Broadcaster
// is valid and drops all events.
type Broadcaster interface {
	Broadcast(event model.ItemEvent)
}

// RESTHandler handles REST API requests for inventory items.
type RESTHandler struct {
	store  store.Store
	logger *zap.Logger
	events Broadcaster
	now    func() time.Time
}

// NewRESTHandler creates a new RESTHandler instance. events may be nil.
func NewRESTHandler(s store.Store, logger *zap.Logger, events Broadcaster) *RESTHandler {
	return &RESTHandler{
		store:  s,
		logger: logger,
		events: events,
		now:    time.Now,
	}
}

// RegisterRoutes registers the REST API routes with the router. Literal
// item sub-paths are registered before the {id} routes so that mux does
// not capture them as IDs.
func (h *RESTHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items", h.ListItems).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items", h.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/items/facets", h.Facets).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items/export", h.ExportCSV).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items/scan", h.ScanItem).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/items/{id}/qr", h.ItemQR).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items/{id}", h.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/items/{id}", h.DeleteItem).Methods(http.MethodDelete)
	router.HandleFunc("/api/v1/analytics", h.Analytics).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/suggestions", h.Suggestions).Methods(http.MethodGet)
}

// HealthCheck handles GET /health requests.
func (h *RESTHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Version: Version,
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// ListItems handles GET /api/v1/items requests. The search, category,
// storage, and sort query parameters select the view; days-left counts
// and badges are computed fresh for every response.
func (h *RESTHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	params := r.URL.Query()
	filter := query.Filter{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		Storage:  params.Get("storage"),
	}
	sortKey := query.ParseSortKey(params.Get("sort"))

	now := h.now()
	items = query.Apply(items, filter, sortKey, now)

	views := make([]model.ItemView, 0, len(items))
	for i := range items {
		views = append(views, h.toView(&items[i], now))
	}

	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(views))
}

// GetItem handles GET /api/v1/items/{id} requests.
func (h *RESTHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	item, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "get item")
		return
	}

	view := h.toView(item, h.now())
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(view))
}

// CreateItem handles POST /api/v1/items requests.
func (h *RESTHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input model.Item
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := input.Validate(); err != nil {
		h.logger.Warn("validation failed", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Create(ctx, &input)
	if err != nil {
		h.handleStoreError(w, err, "create item")
		return
	}

	itemsCreatedTotal.Inc()
	h.broadcast(model.NewItemCreatedEvent(item))

	h.writeJSON(w, http.StatusCreated, model.NewSuccessResponse(item))
}

// ScanItem handles POST /api/v1/items/scan requests: a pipe-delimited
// QR payload is decoded positionally and created as a regular item.
func (h *RESTHandler) ScanItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := qrcode.DecodePayload(req.Payload)
	if err := input.Validate(); err != nil {
		h.logger.Warn("scan payload rejected", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.store.Create(ctx, &input)
	if err != nil {
		h.handleStoreError(w, err, "scan item")
		return
	}

	itemsCreatedTotal.Inc()
	h.broadcast(model.NewItemCreatedEvent(item))

	h.writeJSON(w, http.StatusCreated, model.NewSuccessResponse(item))
}

// DeleteItem handles DELETE /api/v1/items/{id} requests. Deletion is
// idempotent: a missing ID still answers 200, with deleted=false.
func (h *RESTHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	deleted, err := h.store.Delete(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "delete item")
		return
	}

	if deleted {
		itemsDeletedTotal.Inc()
		h.broadcast(model.NewItemDeletedEvent(id))
	}

	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(DeleteResponse{Deleted: deleted}))
}

// Facets handles GET /api/v1/items/facets requests, listing the distinct
// categories and storage places for filter dropdowns.
func (h *RESTHandler) Facets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(query.CollectFacets(items)))
}

// ExportCSV handles GET /api/v1/items/export requests, serving the full
// inventory as a CSV attachment, newest first.
func (h *RESTHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	items = query.Apply(items, query.Filter{}, query.SortNewest, h.now())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wastenot_items.csv"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(export.CSV(items))); err != nil {
		h.logger.Error("failed to write csv export", zap.Error(err))
	}
}

// ItemQR handles GET /api/v1/items/{id}/qr requests, rendering the item's
// scan payload as a QR code PNG.
func (h *RESTHandler) ItemQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	item, err := h.store.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, err, "item qr")
		return
	}

	png, err := qrcode.ImagePNG(qrcode.EncodePayload(item), qrcode.DefaultImageSize)
	if err != nil {
		h.logger.Error("failed to render qr image", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to render QR image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(png); err != nil {
		h.logger.Error("failed to write qr image", zap.Error(err))
	}
}

// Analytics handles GET /api/v1/analytics requests.
func (h *RESTHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	report := analytics.BuildReport(items, h.now())
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(report))
}

// Suggestions handles GET /api/v1/suggestions?name= requests. A lookup
// miss answers 404; the suggestion is an offer, never auto-applied.
func (h *RESTHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		h.writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	s, ok := suggest.Lookup(name)
	if !ok {
		h.writeError(w, http.StatusNotFound, "no suggestion for name")
		return
	}

	response := SuggestionResponse{
		Days:           s.Days,
		Storage:        s.Storage,
		ProposedExpiry: s.ProposedExpiry(h.now()),
	}
	h.writeJSON(w, http.StatusOK, model.NewSuccessResponse(response))
}

// toView decorates an item with its derived temporal state.
func (h *RESTHandler) toView(item *model.Item, now time.Time) model.ItemView {
	view := model.ItemView{Item: *item}

	if days, ok := expiry.DaysLeftISO(now, item.Expiry); ok {
		view.DaysLeft = &days
		view.Badge = expiry.Badge(days)
	}

	return view
}

// broadcast pushes an item event when a broadcaster is configured.
func (h *RESTHandler) broadcast(event model.ItemEvent) {
	if h.events != nil {
		h.events.Broadcast(event)
	}
}

// handleStoreError handles store errors and writes appropriate HTTP responses.
func (h *RESTHandler) handleStoreError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, store.ErrInvalidID):
		h.writeError(w, http.StatusBadRequest, "invalid item ID")
	case errors.Is(err, store.ErrNilItem),
		errors.Is(err, model.ErrEmptyName),
		errors.Is(err, model.ErrNameTooLong),
		errors.Is(err, model.ErrInvalidExpiry):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store operation failed", zap.String("operation", operation), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeJSON writes a JSON response with the given status code.
func (h *RESTHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status code and message.
func (h *RESTHandler) writeError(w http.ResponseWriter, status int, message string) {
	response := model.ErrorResponse{
		Code:    status,
		Message: message,
	}
	h.writeJSON(w, status, response)
}
