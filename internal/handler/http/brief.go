package http

import (
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/brief"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BriefHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListOpen(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	// Proposals
	SubmitProposal(w http.ResponseWriter, r *http.Request)
	ListProposals(w http.ResponseWriter, r *http.Request)
	ListMyProposals(w http.ResponseWriter, r *http.Request)
	AcceptProposal(w http.ResponseWriter, r *http.Request)
}

type briefHandlerImpl struct {
	briefService brief.BriefService
}

func NewBriefHandler(briefService brief.BriefService) BriefHandler {
	return &briefHandlerImpl{briefService: briefService}
}

// Create handles POST /briefs
func (h *briefHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req brief.CreateBriefRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.briefService.CreateBrief(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Brief created", result)
}

// ListOpen handles GET /briefs
func (h *briefHandlerImpl) ListOpen(w http.ResponseWriter, r *http.Request) {
	result, err := h.briefService.ListOpen(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine handles GET /briefs/my-briefs
func (h *briefHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.briefService.ListOwned(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /briefs/{id}
func (h *briefHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.briefService.GetBrief(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmitProposal handles POST /briefs/{id}/proposals
func (h *briefHandlerImpl) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req brief.SubmitProposalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.briefService.SubmitProposal(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Proposal submitted", result)
}

// ListProposals handles GET /briefs/{id}/proposals
func (h *briefHandlerImpl) ListProposals(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.briefService.ListProposals(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyProposals handles GET /proposals/my-proposals
func (h *briefHandlerImpl) ListMyProposals(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.briefService.ListMyProposals(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AcceptProposal handles PUT /briefs/{id}/proposals/{pid}/accept
func (h *briefHandlerImpl) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.briefService.AcceptProposal(r.Context(), id, chi.URLParam(r, "id"), chi.URLParam(r, "pid"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result.Match)
}
