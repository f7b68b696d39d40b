package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "campreserv/pkg/http"
	"campreserv/pkg/logger"
)

type Handler struct {
	service Service
	log     *logger.Logger
}

func NewHandler(service Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	result, err := h.service.Estimate(
		r.Context(),
		query.Get("campground_id"),
		query.Get("site_id"),
		query.Get("arrival_date"),
		query.Get("departure_date"),
		query.Get("site_locked") == "true",
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Estimate", "operation", "WriteSuccess", "error", err)
	}
}

type depositRequest struct {
	TotalCents int64 `json:"total_cents"`
	Nights     int   `json:"nights"`
}

type depositResponse struct {
	DepositCents int64 `json:"deposit_cents"`
}

// Deposit applies the configured deposit policy to a total the caller
// already holds, without repricing the stay.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Deposit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	resp := depositResponse{DepositCents: h.service.Deposit(req.TotalCents, req.Nights)}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Deposit", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/pricing/estimate", h.Estimate)
	router.POST("/api/v1/pricing/deposit", h.Deposit)
}
