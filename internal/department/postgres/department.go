package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal/department"
)

// DepartmentRepository implements the department.Repository interface using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

// Overview joins each department to its manager and to two pre-aggregated
// subqueries: employee counts and the summed hours of all that department's
// employees' assignments. Employees without assignments contribute zero.
func (r *DepartmentRepository) Overview() ([]department.OverviewRow, error) {
	query := `
		SELECT
			d.dname,
			d.dnumber,
			COALESCE(m.fname || ' ' || m.lname, ?) AS manager_name,
			COALESCE(emp.count_emp, 0) AS num_employees,
			COALESCE(hours.total_hours, 0) AS total_hours
		FROM department d
		LEFT JOIN employee m
			ON d.mgr_ssn = m.ssn
		LEFT JOIN (
			SELECT dno, COUNT(*) AS count_emp
			FROM employee
			GROUP BY dno
		) emp
			ON emp.dno = d.dnumber
		LEFT JOIN (
			SELECT e.dno AS dept_no,
			       COALESCE(SUM(w.hours), 0) AS total_hours
			FROM employee e
			LEFT JOIN works_on w ON e.ssn = w.essn
			GROUP BY e.dno
		) hours
			ON hours.dept_no = d.dnumber
		ORDER BY d.dnumber`

	rows, err := r.db.Raw(query, department.NoManagerPlaceholder).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []department.OverviewRow
	for rows.Next() {
		var row department.OverviewRow
		if err := rows.Scan(&row.Dname, &row.Dnumber, &row.ManagerName,
			&row.NumEmployees, &row.TotalHours); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *DepartmentRepository) DepartmentNames() ([]string, error) {
	rows, err := r.db.Raw(`SELECT dname FROM department ORDER BY dname`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
