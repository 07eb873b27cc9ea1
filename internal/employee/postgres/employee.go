package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// Roster runs the listing query. Filter values are bound parameters; the
// ORDER BY expression comes from the sort whitelist only.
func (r *EmployeeRepository) Roster(params employee.RosterParams) ([]employee.RosterRow, error) {
	whereSQL, args := params.WhereClause()
	orderBy := employee.ResolveRosterSort(params.Sort)

	query := fmt.Sprintf(`
		SELECT
			e.ssn,
			e.fname || ' ' || e.lname AS full_name,
			d.dname,
			COALESCE(dep.count_dep, 0) AS num_dependents,
			COALESCE(w.count_proj, 0) AS num_projects,
			COALESCE(w.total_hours, 0) AS total_hours
		FROM employee e
		JOIN department d ON e.dno = d.dnumber
		LEFT JOIN (
			SELECT essn, COUNT(*) AS count_dep
			FROM dependent
			GROUP BY essn
		) dep ON dep.essn = e.ssn
		LEFT JOIN (
			SELECT essn, COUNT(*) AS count_proj, SUM(hours) AS total_hours
			FROM works_on
			GROUP BY essn
		) w ON w.essn = e.ssn
		WHERE %s
		ORDER BY %s`, whereSQL, orderBy)

	rows, err := r.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []employee.RosterRow
	for rows.Next() {
		var row employee.RosterRow
		if err := rows.Scan(&row.SSN, &row.FullName, &row.Department,
			&row.NumDependents, &row.NumProjects, &row.TotalHours); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *EmployeeRepository) GetDetail(ssn string) (*employee.Detail, error) {
	var detail employee.Detail
	query := `
		SELECT ssn, fname || ' ' || lname AS full_name, address, salary, dno
		FROM employee
		WHERE ssn = ?`

	row := r.db.Raw(query, ssn).Row()
	if err := row.Scan(&detail.SSN, &detail.FullName, &detail.Address, &detail.Salary, &detail.Dno); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (r *EmployeeRepository) ListDependents(essn string) ([]employee.Dependent, error) {
	query := `
		SELECT
			dependent_name,
			COALESCE(sex, ''),
			COALESCE(CAST(bdate AS TEXT), ''),
			COALESCE(relationship, '')
		FROM dependent
		WHERE essn = ?
		ORDER BY dependent_name`

	rows, err := r.db.Raw(query, essn).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []employee.Dependent
	for rows.Next() {
		var dep employee.Dependent
		if err := rows.Scan(&dep.Name, &dep.Sex, &dep.BirthDate, &dep.Relationship); err != nil {
			return nil, err
		}
		result = append(result, dep)
	}
	return result, rows.Err()
}

// UpsertDependent is a single statement; (essn, dependent_name) uniqueness is
// enforced by the ON CONFLICT target. Empty optional fields are stored as
// NULL; bdate is a date column and rejects the empty string.
func (r *EmployeeRepository) UpsertDependent(essn string, dto employee.DependentDTO) error {
	query := `
		INSERT INTO dependent (essn, dependent_name, sex, bdate, relationship)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))
		ON CONFLICT (essn, dependent_name)
		DO UPDATE SET
			sex = EXCLUDED.sex,
			bdate = EXCLUDED.bdate,
			relationship = EXCLUDED.relationship`

	return r.db.Exec(query, essn, dto.Name, dto.Sex, dto.BirthDate, dto.Relationship).Error
}
