package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal"
	"github.com/frahmantamala/company-portal/internal/project"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

// Roster returns the project summary. Headcount counts distinct employees,
// not works_on rows.
func (r *ProjectRepository) Roster(sortKey string) ([]project.RosterRow, error) {
	orderBy := project.ResolveRosterSort(sortKey)

	query := fmt.Sprintf(`
		SELECT
			p.pnumber,
			p.pname,
			d.dname AS department_name,
			COALESCE(w.headcount, 0) AS headcount,
			COALESCE(w.total_hours, 0) AS total_hours
		FROM project p
		JOIN department d ON p.dnum = d.dnumber
		LEFT JOIN (
			SELECT
				pno,
				COUNT(DISTINCT essn) AS headcount,
				SUM(hours) AS total_hours
			FROM works_on
			GROUP BY pno
		) w ON w.pno = p.pnumber
		ORDER BY %s`, orderBy)

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []project.RosterRow
	for rows.Next() {
		var row project.RosterRow
		if err := rows.Scan(&row.Pnumber, &row.Pname, &row.Department,
			&row.Headcount, &row.TotalHours); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *ProjectRepository) GetInfo(pnumber int) (*project.Info, error) {
	var info project.Info
	query := `
		SELECT p.pnumber, p.pname, d.dname
		FROM project p
		JOIN department d ON p.dnum = d.dnumber
		WHERE p.pnumber = ?`

	row := r.db.Raw(query, pnumber).Row()
	if err := row.Scan(&info.Pnumber, &info.Pname, &info.Department); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}
	return &info, nil
}

// ListAssignments returns every employee with their hours on this project;
// employees without an assignment row show zero hours.
func (r *ProjectRepository) ListAssignments(pnumber int) ([]project.Assignment, error) {
	query := `
		SELECT
			e.ssn,
			e.fname || ' ' || e.lname AS full_name,
			COALESCE(w.hours, 0) AS hours
		FROM employee e
		LEFT JOIN works_on w ON w.essn = e.ssn AND w.pno = ?
		ORDER BY e.lname, e.fname`

	rows, err := r.db.Raw(query, pnumber).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []project.Assignment
	for rows.Next() {
		var a project.Assignment
		if err := rows.Scan(&a.SSN, &a.FullName, &a.Hours); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// UpsertAssignment is a single statement; (essn, pno) uniqueness is enforced
// by the ON CONFLICT target.
func (r *ProjectRepository) UpsertAssignment(essn string, pnumber int, hours float64) error {
	query := `
		INSERT INTO works_on (essn, pno, hours)
		VALUES (?, ?, ?)
		ON CONFLICT (essn, pno)
		DO UPDATE SET hours = EXCLUDED.hours`

	return r.db.Exec(query, essn, pnumber, hours).Error
}
