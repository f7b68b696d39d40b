package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campreserv/internal/frontdesk/service"
	httputil "campreserv/pkg/http"
	"campreserv/pkg/logger"
	"campreserv/pkg/middleware"
	"campreserv/pkg/model"
)

type executeFlowRequest struct {
	Draft          *model.BookingDraft `json:"draft"`
	OverrideReason string              `json:"override_reason,omitempty"`
}

type listFlowsResponse struct {
	Flows []string `json:"flows"`
}

// FlowHandler exposes the front-desk flows: reservation submission and
// site holds. The draft travels in the request body, so a submission is a
// single call carrying everything the flow needs.
type FlowHandler struct {
	service service.FlowService
	log     *logger.Logger
}

func NewFlowHandler(svc service.FlowService, log *logger.Logger) *FlowHandler {
	return &FlowHandler{service: svc, log: log}
}

func (h *FlowHandler) Execute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req executeFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	if req.Draft == nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Request must carry a draft",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Execute", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	input := service.FlowInput{
		Draft:          req.Draft,
		RequestID:      middleware.RequestID(r.Context()),
		OverrideReason: req.OverrideReason,
	}

	output, err := h.service.Execute(r.Context(), ps.ByName("flow"), input)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, output); err != nil {
		h.log.Error("failed to write success response", "handler", "Execute", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FlowHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, listFlowsResponse{Flows: h.service.Flows()}); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FlowHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/flows/:flow", h.Execute)
	router.GET("/api/v1/flows", h.List)
}
