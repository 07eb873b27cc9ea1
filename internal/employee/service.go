package employee

import (
	"log/slog"
)

// Repository defines the data access methods for the employee views.
type Repository interface {
	Roster(params RosterParams) ([]RosterRow, error)
	GetDetail(ssn string) (*Detail, error)
	ListDependents(essn string) ([]Dependent, error)
	UpsertDependent(essn string, dto DependentDTO) error
}

// Service handles the roster and employee-detail business logic.
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

// Roster returns the filtered, sorted listing. The CSV export calls this same
// method so the two surfaces can never drift apart.
func (s *Service) Roster(params RosterParams) ([]RosterRow, error) {
	rows, err := s.repo.Roster(params)
	if err != nil {
		s.logger.Error("failed to load roster", "error", err,
			"search", params.Search, "dept", params.Department, "sort", params.Sort)
		return nil, err
	}
	return rows, nil
}

// Detail loads one employee plus their dependents ordered by name.
func (s *Service) Detail(ssn string) (*Detail, []Dependent, error) {
	detail, err := s.repo.GetDetail(ssn)
	if err != nil {
		s.logger.Warn("employee lookup failed", "error", err, "ssn", ssn)
		return nil, nil, err
	}

	dependents, err := s.repo.ListDependents(ssn)
	if err != nil {
		s.logger.Error("failed to load dependents", "error", err, "ssn", ssn)
		return nil, nil, err
	}

	return detail, dependents, nil
}

// UpsertDependent inserts or, on an (essn, dependent_name) collision,
// overwrites the dependent's sex, birth date and relationship.
func (s *Service) UpsertDependent(essn string, dto DependentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	// the employee must exist; an unknown ssn is a 404, not a new row
	if _, err := s.repo.GetDetail(essn); err != nil {
		return err
	}

	if err := s.repo.UpsertDependent(essn, dto); err != nil {
		s.logger.Error("dependent upsert failed", "error", err, "essn", essn, "name", dto.Name)
		return err
	}

	s.logger.Info("dependent upserted", "essn", essn, "name", dto.Name)
	return nil
}
