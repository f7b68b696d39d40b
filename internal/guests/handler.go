package guests

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "campreserv/pkg/http"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
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

// Search lists guests matching a free-text search, paginated locally since
// the guest store returns the full match set.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	guests, err := h.service.Search(r.Context(), query.Get("campground_id"), query.Get("search"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	page := paginate(guests, limit, offset)
	if err := httputil.WritePaginated(w, page, int64(len(guests)), limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "operation", "WritePaginated", "error", err)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var guest model.Guest
	if err := json.NewDecoder(r.Body).Decode(&guest); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &guest)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func paginate(guests []*model.Guest, limit int, offset int64) []*model.Guest {
	if offset >= int64(len(guests)) {
		return []*model.Guest{}
	}
	end := offset + int64(limit)
	if end > int64(len(guests)) {
		end = int64(len(guests))
	}
	return guests[offset:end]
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/guests", h.Search)
	router.POST("/api/v1/guests", h.Create)
}
