package employee

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/company-portal/internal/transport"
	"github.com/frahmantamala/company-portal/pkg/logger"
)

type ServiceAPI interface {
	Roster(params RosterParams) ([]RosterRow, error)
	Detail(ssn string) (*Detail, []Dependent, error)
	UpsertDependent(essn string, dto DependentDTO) error
}

// DepartmentLister supplies the department names for the roster filter
// dropdown; the department module implements it.
type DepartmentLister interface {
	DepartmentNames() ([]string, error)
}

type Handler struct {
	*transport.BaseHandler
	Service     ServiceAPI
	Departments DepartmentLister
}

func NewHandler(svc ServiceAPI, departments DepartmentLister) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Departments: departments,
	}
}

// RosterResponse mirrors what the home view needs: the rows plus the filter
// state to re-render the search form.
type RosterResponse struct {
	Employees    []RosterRow `json:"employees"`
	Departments  []string    `json:"departments"`
	Search       string      `json:"search"`
	SelectedDept string      `json:"selected_dept"`
	Sort         string      `json:"sort"`
}

func rosterParamsFromRequest(r *http.Request) RosterParams {
	q := r.URL.Query()
	return RosterParams{
		Search:     q.Get("search"),
		Department: q.Get("dept"),
		Sort:       q.Get("sort"),
	}
}

// Roster handles GET /.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	params := rosterParamsFromRequest(r)

	rows, err := h.Service.Roster(params)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	departments, err := h.Departments.DepartmentNames()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if rows == nil {
		rows = []RosterRow{}
	}

	h.WriteJSON(w, http.StatusOK, RosterResponse{
		Employees:    rows,
		Departments:  departments,
		Search:       params.Search,
		SelectedDept: params.Department,
		Sort:         params.Sort,
	})
}

// Export handles GET /export_employees. It reuses the roster query with the
// same filters and sort, reshaped into the fixed 5-column CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	params := rosterParamsFromRequest(r)

	rows, err := h.Service.Roster(params)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=employees_export.csv")

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Name", "Department", "Dependents", "Projects", "Total Hours"}); err != nil {
		h.Logger.Error("csv write failed", "error", err)
		return
	}

	for _, row := range rows {
		record := []string{
			row.FullName,
			row.Department,
			strconv.Itoa(row.NumDependents),
			strconv.Itoa(row.NumProjects),
			strconv.FormatFloat(row.TotalHours, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			h.Logger.Error("csv write failed", "error", err)
			return
		}
	}
	writer.Flush()
}

// DetailResponse carries the employee plus their dependents.
type DetailResponse struct {
	Employee   *Detail     `json:"employee"`
	Dependents []Dependent `json:"dependents"`
}

// Detail handles GET /employee/{ssn}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ssn := chi.URLParam(r, "ssn")

	detail, dependents, err := h.Service.Detail(ssn)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if dependents == nil {
		dependents = []Dependent{}
	}

	h.WriteJSON(w, http.StatusOK, DetailResponse{
		Employee:   detail,
		Dependents: dependents,
	})
}

// UpsertDependent handles POST /employee/{ssn} and redirects back to the
// detail view, which re-reads current state.
func (h *Handler) UpsertDependent(w http.ResponseWriter, r *http.Request) {
	ssn := chi.URLParam(r, "ssn")

	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	dto := DependentDTO{
		Name:         r.PostFormValue("dname"),
		Sex:          r.PostFormValue("sex"),
		BirthDate:    r.PostFormValue("bdate"),
		Relationship: r.PostFormValue("relationship"),
	}

	if err := h.Service.UpsertDependent(ssn, dto); err != nil {
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteAppError(w, err)
		return
	}

	http.Redirect(w, r, "/employee/"+ssn, http.StatusSeeOther)
}
