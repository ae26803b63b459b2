package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pvpulse/internal/errors"
	"pvpulse/internal/services"
	"pvpulse/internal/window"
)

// Notifier is poked after a successful reload so connected dashboards
// refresh. The websocket hub satisfies it.
type Notifier interface {
	NotifyDataUpdate(records int)
}

// DataHandler serves the dashboard data API.
type DataHandler struct {
	service      DataServiceInterface
	notifier     Notifier
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler. notifier may be nil.
func NewDataHandler(service DataServiceInterface, notifier Notifier, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		notifier:     notifier,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/products", h.GetProducts)
	r.Get("/ranges", h.GetRanges)
	r.Get("/records", h.GetRecords)
	r.Get("/series", h.GetSeries)
	r.Get("/stats", h.GetStats)
	r.Get("/last-update", h.GetLastUpdate)
	r.Post("/reload", h.Reload)

	return r
}

// GetProducts returns the catalog in configured order.
func (h *DataHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"products": h.service.Products(r.Context()),
	})
}

// GetRanges returns the recognized range tokens.
func (h *DataHandler) GetRanges(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"ranges": window.Ranges(),
	})
}

// GetRecords returns the raw record window for the ?range= token. A
// missing or unrecognized token selects the entire dataset.
func (h *DataHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	rangeToken := r.URL.Query().Get("range")

	records, err := h.service.Records(r.Context(), rangeToken)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"range":   string(window.ParseRange(rangeToken)),
		"count":   len(records),
		"records": records,
	})
}

// GetSeries returns the chart-ready aligned series for the ?range= token.
func (h *DataHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	view := services.ViewState{Range: r.URL.Query().Get("range")}

	s, err := h.service.Series(r.Context(), view)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"range":  string(window.ParseRange(view.Range)),
		"series": s,
	})
}

// GetStats returns statistics for ?product= (name or code) over ?range=,
// or for every catalog product when no product is given.
func (h *DataHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	view := services.ViewState{
		Range:   r.URL.Query().Get("range"),
		Product: r.URL.Query().Get("product"),
	}

	if view.Product == "" {
		all, err := h.service.AllStats(r.Context(), view.Range)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		render.JSON(w, r, map[string]interface{}{
			"range": string(window.ParseRange(view.Range)),
			"stats": all,
		})
		return
	}

	st, err := h.service.ProductStats(r.Context(), view)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"range": string(window.ParseRange(view.Range)),
		"stats": st,
	})
}

// GetLastUpdate returns the most recent observation day.
func (h *DataHandler) GetLastUpdate(w http.ResponseWriter, r *http.Request) {
	last, err := h.service.LastUpdate(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"last_update": last,
	})
}

// Reload drops the dataset cache and re-reads the source.
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyDataUpdate(count)
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  "reloaded",
		"records": count,
	})
}
