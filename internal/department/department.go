package department

// OverviewRow is one department in the manager overview. ManagerName is the
// fixed "N/A" placeholder when no manager is assigned. TotalHours sums hours
// across all of the department's employees; departments whose employees have
// no assignments report zero.
type OverviewRow struct {
	Dname        string  `json:"dname"`
	Dnumber      int     `json:"dnumber"`
	ManagerName  string  `json:"manager_name"`
	NumEmployees int     `json:"num_employees"`
	TotalHours   float64 `json:"total_hours"`
}

// NoManagerPlaceholder renders in place of a manager name when mgr_ssn is null.
const NoManagerPlaceholder = "N/A"
