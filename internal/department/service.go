package department

import (
	"log/slog"
)

// Repository defines the data access methods for department views.
type Repository interface {
	Overview() ([]OverviewRow, error)
	DepartmentNames() ([]string, error)
}

// Service handles the read-only department aggregations.
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

func (s *Service) Overview() ([]OverviewRow, error) {
	rows, err := s.repo.Overview()
	if err != nil {
		s.logger.Error("failed to load manager overview", "error", err)
		return nil, err
	}
	return rows, nil
}

// DepartmentNames feeds the roster filter dropdown.
func (s *Service) DepartmentNames() ([]string, error) {
	names, err := s.repo.DepartmentNames()
	if err != nil {
		s.logger.Error("failed to list department names", "error", err)
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
