package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal/importer"
)

// ImportRepository implements the importer.Repository interface using GORM
type ImportRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) importer.Repository {
	return &ImportRepository{db: db}
}

// UpsertDependentsBatch applies every row sequentially inside one
// transaction and commits once; any failure rolls the whole batch back.
// Empty optional cells are stored as NULL; bdate is a date column and
// rejects the empty string.
func (r *ImportRepository) UpsertDependentsBatch(rows []importer.Row) error {
	query := `
		INSERT INTO dependent (essn, dependent_name, sex, bdate, relationship)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))
		ON CONFLICT (essn, dependent_name)
		DO UPDATE SET
			sex = EXCLUDED.sex,
			bdate = EXCLUDED.bdate,
			relationship = EXCLUDED.relationship`

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := tx.Exec(query, row.ESSN, row.Name, row.Sex, row.BirthDate, row.Relationship).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
