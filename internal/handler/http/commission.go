package http

import (
	"net/http"
	"strconv"

	"github.com/flulance/flulance-backend-go/internal/domain/commission"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
)

type CommissionHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type commissionHandlerImpl struct {
	commissionService commission.CommissionService
}

func NewCommissionHandler(commissionService commission.CommissionService) CommissionHandler {
	return &commissionHandlerImpl{commissionService: commissionService}
}

// Get handles GET /admin/commission
func (h *commissionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.commissionService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /admin/commission. The percentage comes from the
// ?percentage query parameter or a JSON body.
func (h *commissionHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	var req commission.UpdateCommissionRequest
	if raw := r.URL.Query().Get("percentage"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, "percentage must be a number", nil)
			return
		}
		req.Percentage = &p
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.commissionService.Set(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Commission updated", result)
}
