package project

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/transport"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

type ServiceAPI interface {
	Roster(sortKey string) ([]RosterRow, error)
	Detail(pnumber int) (*Info, []Assignment, error)
	UpsertAssignment(pnumber int, dto AssignmentDTO) error
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

type RosterResponse struct {
	Projects []RosterRow `json:"projects"`
	Sort     string      `json:"sort"`
}

// Roster handles GET /projects.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	sortKey := r.URL.Query().Get("sort")

	rows, err := h.Service.Roster(sortKey)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if rows == nil {
		rows = []RosterRow{}
	}

	h.WriteJSON(w, http.StatusOK, RosterResponse{Projects: rows, Sort: sortKey})
}

type DetailResponse struct {
	Project   *Info        `json:"project"`
	Employees []Assignment `json:"employees"`
}

// Detail handles GET /project/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	pnumber, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.WriteAppError(w, internal.ErrProjectNotFound)
		return
	}

	info, assignments, err := h.Service.Detail(pnumber)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if assignments == nil {
		assignments = []Assignment{}
	}

	h.WriteJSON(w, http.StatusOK, DetailResponse{Project: info, Employees: assignments})
}

// UpsertAssignment handles POST /project/{id} and redirects back to the
// detail view, which re-reads current state.
func (h *Handler) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	pnumber, err := strconv.Atoi(idParam)
	if err != nil {
		h.WriteAppError(w, internal.ErrProjectNotFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	hours, err := strconv.ParseFloat(r.PostFormValue("hours"), 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "hours must be a number")
		return
	}

	dto := AssignmentDTO{
		ESSN:  r.PostFormValue("essn"),
		Hours: hours,
	}

	if err := h.Service.UpsertAssignment(pnumber, dto); err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteAppError(w, err)
		return
	}

	http.Redirect(w, r, "/project/"+idParam, http.StatusSeeOther)
}
