package importer

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/frahmantamala/company-portal/internal"
)

// Repository writes a validated batch in one transaction.
type Repository interface {
	UpsertDependentsBatch(rows []Row) error
}

// Service handles the spreadsheet import. Parsing and writing are
// all-or-nothing: a failure anywhere leaves the database untouched.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ImportDependents parses, validates and writes the upload. Every failure
// comes back as an AppError so the handler can surface a user-facing notice
// instead of propagating.
func (s *Service) ImportDependents(file io.Reader, filename string) (int, error) {
	if !AcceptsFilename(filename) {
		return 0, internal.NewValidationError(
			"please upload a valid .xlsx file", internal.ErrCodeInvalidFile)
	}

	batchID := uuid.NewString()

	rows, err := ParseDependents(file)
	if err != nil {
		s.logger.Warn("import rejected", "batch_id", batchID, "filename", filename, "error", err)
		return 0, err
	}

	if err := s.repo.UpsertDependentsBatch(rows); err != nil {
		s.logger.Error("import batch failed, rolled back",
			"batch_id", batchID, "filename", filename, "rows", len(rows), "error", err)
		return 0, internal.NewInternalError("import failed", err)
	}

	s.logger.Info("import committed", "batch_id", batchID, "filename", filename, "rows", len(rows))
	return len(rows), nil
}
