package project

// RosterRow is one project summary row. Headcount counts distinct employees.
type RosterRow struct {
	Pnumber    int     `json:"pnumber"`
	Pname      string  `json:"pname"`
	Department string  `json:"department"`
	Headcount  int     `json:"headcount"`
	TotalHours float64 `json:"total_hours"`
}

// Info identifies one project on the detail view.
type Info struct {
	Pnumber    int    `json:"pnumber"`
	Pname      string `json:"pname"`
	Department string `json:"department"`
}

// Assignment is one employee's hours on a project; zero when unassigned.
type Assignment struct {
	SSN      string  `json:"ssn"`
	FullName string  `json:"full_name"`
	Hours    float64 `json:"hours"`
}

// rosterSorts maps logical sort keys to trusted ORDER BY expressions, with
// the project number as tie-break.
var rosterSorts = map[string]string{
	"headcount_asc":  "headcount ASC, p.pnumber ASC",
	"headcount_desc": "headcount DESC, p.pnumber ASC",
	"hours_asc":      "total_hours ASC, p.pnumber ASC",
	"hours_desc":     "total_hours DESC, p.pnumber ASC",
}

const defaultRosterSort = "headcount_desc"

// ResolveRosterSort returns the ORDER BY expression for a client sort key,
// falling back to headcount_desc for unrecognized keys.
func ResolveRosterSort(key string) string {
	if expr, ok := rosterSorts[key]; ok {
		return expr
	}
	return rosterSorts[defaultRosterSort]
}

// AssignmentDTO is the transport shape for the hours upsert form.
type AssignmentDTO struct {
	ESSN  string  `json:"essn"`
	Hours float64 `json:"hours"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d AssignmentDTO) Validate() error {
	if d.ESSN == "" {
		return ValidationError{Msg: "essn is required"}
	}
	if d.Hours < 0 {
		return ValidationError{Msg: "hours cannot be negative"}
	}
	return nil
}
