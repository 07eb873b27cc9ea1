package department

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/company-portal/internal/transport"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

type ServiceAPI interface {
	Overview() ([]OverviewRow, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

type OverviewResponse struct {
	Overview []OverviewRow `json:"overview"`
}

// ManagerOverview handles GET /manager_overview.
func (h *Handler) ManagerOverview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Overview()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if rows == nil {
		rows = []OverviewRow{}
	}

	h.WriteJSON(w, http.StatusOK, OverviewResponse{Overview: rows})
}
