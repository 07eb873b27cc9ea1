package employee

import "strings"

// RosterRow is one listing/export row. Aggregates are zero, never null, when
// an employee has no dependents or assignments.
type RosterRow struct {
	SSN           string  `json:"ssn"`
	FullName      string  `json:"full_name"`
	Department    string  `json:"department"`
	NumDependents int     `json:"num_dependents"`
	NumProjects   int     `json:"num_projects"`
	TotalHours    float64 `json:"total_hours"`
}

// Detail is the admin view of a single employee.
type Detail struct {
	SSN      string  `json:"ssn"`
	FullName string  `json:"full_name"`
	Address  string  `json:"address"`
	Salary   float64 `json:"salary"`
	Dno      int     `json:"dno"`
}

type Dependent struct {
	Name         string `json:"dependent_name"`
	Sex          string `json:"sex"`
	BirthDate    string `json:"bdate"`
	Relationship string `json:"relationship"`
}

// RosterParams are the only client inputs the listing accepts. Search and
// Department are always bound as parameters; Sort is resolved through the
// whitelist below and never interpolated from caller text.
type RosterParams struct {
	Search     string
	Department string
	Sort       string
}

// rosterSorts maps logical sort keys to trusted ORDER BY expressions. Each
// entry carries its own tie-break columns.
var rosterSorts = map[string]string{
	"name_asc":   "e.lname ASC, e.fname ASC",
	"name_desc":  "e.lname DESC, e.fname DESC",
	"hours_asc":  "total_hours ASC, e.lname ASC, e.fname ASC",
	"hours_desc": "total_hours DESC, e.lname ASC, e.fname ASC",
}

const defaultRosterSort = "name_asc"

// ResolveRosterSort returns the ORDER BY expression for a client sort key.
// Unrecognized keys fall back to the name_asc expression.
func ResolveRosterSort(key string) string {
	if expr, ok := rosterSorts[key]; ok {
		return expr
	}
	return rosterSorts[defaultRosterSort]
}

// WhereClause builds the filter predicate and its bound arguments. The name
// predicate is always present; an empty search matches every row. The
// department predicate is ANDed in only when a department was supplied.
func (p RosterParams) WhereClause() (string, []interface{}) {
	clauses := []string{"(LOWER(e.fname) LIKE ? OR LOWER(e.lname) LIKE ?)"}
	pattern := "%" + strings.ToLower(p.Search) + "%"
	args := []interface{}{pattern, pattern}

	if p.Department != "" {
		clauses = append(clauses, "d.dname = ?")
		args = append(args, p.Department)
	}

	return strings.Join(clauses, " AND "), args
}

// DependentDTO is the transport shape for the dependent upsert form.
type DependentDTO struct {
	Name         string `json:"dependent_name"`
	Sex          string `json:"sex"`
	BirthDate    string `json:"bdate"`
	Relationship string `json:"relationship"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d DependentDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "dependent_name is required"}
	}
	return nil
}
