package http

import (
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/application"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ApplicationHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForJob(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
}

type applicationHandlerImpl struct {
	applicationService application.ApplicationService
}

func NewApplicationHandler(applicationService application.ApplicationService) ApplicationHandler {
	return &applicationHandlerImpl{applicationService: applicationService}
}

// Apply handles POST /applications
func (h *applicationHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req application.ApplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.applicationService.Apply(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted", result)
}

// ListMine handles GET /applications/my-applications
func (h *applicationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.applicationService.ListForInfluencer(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListForJob handles GET /jobs/{id}/applications
func (h *applicationHandlerImpl) ListForJob(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.applicationService.ListForJob(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Accept handles POST /applications/{id}/accept
func (h *applicationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.applicationService.Accept(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result.Match)
}
