package availability

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apperrors "campreserv/pkg/errors"
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

// Sites resolves the availability list for a date range and filter set.
func (h *Handler) Sites(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	filters := model.SiteFilters{
		AvailableOnly: query.Get("available_only") == "true",
		SiteType:      query.Get("site_type"),
		SiteClassID:   query.Get("site_class_id"),
		RigType:       query.Get("rig_type"),
	}

	if s := query.Get("rig_length_ft"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			httputil.WriteError(w, apperrors.InvalidInput("invalid rig_length_ft parameter: "+s))
			return
		}
		filters.RigLengthFt = v
	}

	sites, err := h.service.Resolve(
		r.Context(),
		query.Get("campground_id"),
		query.Get("arrival_date"),
		query.Get("departure_date"),
		filters,
	)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, sites); err != nil {
		h.log.Error("failed to write success response", "handler", "Sites", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) SiteClasses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	classes, err := h.service.SiteClasses(r.Context(), r.URL.Query().Get("campground_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, classes); err != nil {
		h.log.Error("failed to write success response", "handler", "SiteClasses", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	suggestions, err := h.service.Suggestions(r.Context(), query.Get("campground_id"), query.Get("guest_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, suggestions); err != nil {
		h.log.Error("failed to write success response", "handler", "Suggestions", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/sites", h.Sites)
	router.GET("/api/v1/availability/site-classes", h.SiteClasses)
	router.GET("/api/v1/availability/suggestions", h.Suggestions)
}
