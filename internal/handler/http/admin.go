package http

import (
	"net/http"

	"github.com/flulance/flulance-backend-go/internal/domain/dashboard"
	"github.com/flulance/flulance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns marketplace activity counts
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /admin/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	id, ok := actor(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetStats(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
