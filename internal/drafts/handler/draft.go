package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campreserv/internal/drafts/service"
	"campreserv/internal/drafts/validator"
	"campreserv/pkg/config"
	httputil "campreserv/pkg/http"
	"campreserv/pkg/logger"
	"campreserv/pkg/model"
)

type DraftHandler struct {
	service   service.DraftService
	validator *validator.DraftValidator
	cfg       *config.Config
	log       *logger.Logger
}

func NewDraftHandler(svc service.DraftService, v *validator.DraftValidator, cfg *config.Config) *DraftHandler {
	return &DraftHandler{
		service:   svc,
		validator: v,
		cfg:       cfg,
		log:       cfg.Log,
	}
}

// Save accepts the current draft state and schedules a debounced persist.
// The response echoes the draft with date normalization applied, so the
// client can pick up an auto-adjusted departure date.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draft, ok := h.decodeDraft(w, r, ps, "Save")
	if !ok {
		return
	}

	if err := h.validator.ValidateFields(draft); err != nil {
		httputil.WriteError(w, err)
		return
	}

	service.NormalizeDates(draft, h.cfg.DefaultStayNights)
	h.service.Save(draft)

	if err := httputil.WriteJSON(w, http.StatusAccepted, httputil.SuccessResponse{Data: draft}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Save", "operation", "WriteJSON", "error", err)
	}
}

// Commit persists the draft immediately, bypassing the debounce. Used by
// the explicit "save and leave" action.
func (h *DraftHandler) Commit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draft, ok := h.decodeDraft(w, r, ps, "Commit")
	if !ok {
		return
	}

	if err := h.validator.ValidateFields(draft); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.SaveNow(r.Context(), draft); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, draft); err != nil {
		h.log.Error("failed to write success response", "handler", "Commit", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draft, err := h.service.Load(r.Context(), ps.ByName("key"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, draft); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

type restoreResponse struct {
	Draft    *model.BookingDraft `json:"draft"`
	Restored bool                `json:"restored"`
}

// Restore merges the saved draft into the posted in-memory draft when the
// latter is still pristine.
func (h *DraftHandler) Restore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	local, ok := h.decodeDraft(w, r, ps, "Restore")
	if !ok {
		return
	}

	merged, restored, err := h.service.Restore(r.Context(), local)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, restoreResponse{Draft: merged, Restored: restored}); err != nil {
		h.log.Error("failed to write success response", "handler", "Restore", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DraftHandler) Validate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	draft, ok := h.decodeDraft(w, r, ps, "Validate")
	if !ok {
		return
	}

	result := h.validator.ValidateSubmission(draft)
	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Validate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Clear(r.Context(), ps.ByName("key")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DraftHandler) decodeDraft(w http.ResponseWriter, r *http.Request, ps httprouter.Params, op string) (*model.BookingDraft, bool) {
	var draft model.BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", op, "operation", "WriteJSON", "error", writeErr)
		}
		return nil, false
	}

	draft.Key = ps.ByName("key")
	return &draft, true
}

func (h *DraftHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/drafts/:key", h.Save)
	router.POST("/api/v1/drafts/:key/commit", h.Commit)
	router.GET("/api/v1/drafts/:key", h.Get)
	router.POST("/api/v1/drafts/:key/restore", h.Restore)
	router.POST("/api/v1/drafts/:key/validate", h.Validate)
	router.DELETE("/api/v1/drafts/:key", h.Delete)
}
