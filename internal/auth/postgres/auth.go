package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frahmantamala/company-portal/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetCredentials fetches the app_user row for an exact username match.
func (r *Repository) GetCredentials(username string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := `SELECT id, username, password_hash, role FROM app_user WHERE username = ?`

	row := r.db.Raw(query, username).Row()
	if err := row.Scan(&creds.UserID, &creds.Username, &creds.PasswordHash, &creds.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &creds, nil
}
