package http

import (
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/job"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListPublic(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Renew(w http.ResponseWriter, r *http.Request)

	// Admin
	AdminList(w http.ResponseWriter, r *http.Request)
	SetApproval(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &jobHandlerImpl{jobService: jobService}
}

// Create handles POST /jobs
func (h *jobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req job.CreateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.jobService.CreateJob(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created and pending approval", result)
}

// ListPublic handles GET /jobs
func (h *jobHandlerImpl) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := job.ListPublicFilter{
		Category: r.URL.Query().Get("category"),
		Platform: r.URL.Query().Get("platform"),
	}

	result, err := h.jobService.ListPublic(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine handles GET /jobs/my-jobs
func (h *jobHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.jobService.ListOwned(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /jobs/{id}
func (h *jobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobService.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /jobs/{id}
func (h *jobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req job.UpdateJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.jobService.UpdateJob(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated", result)
}

// Delete handles DELETE /jobs/{id}
func (h *jobHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job deleted", nil)
}

// Renew handles POST /jobs/{id}/renew
func (h *jobHandlerImpl) Renew(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.jobService.RenewJob(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job renewed and pending approval", result)
}

// AdminList handles GET /admin/jobs
func (h *jobHandlerImpl) AdminList(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.jobService.AdminList(r.Context(), id, r.URL.Query().Get("approval_status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetApproval handles PUT /admin/jobs/{id}/approval
func (h *jobHandlerImpl) SetApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req job.ApprovalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.jobService.SetApproval(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job "+result.ApprovalStatus, result)
}
