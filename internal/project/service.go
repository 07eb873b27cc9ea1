package project

import (
	"log/slog"
)

// Repository defines the data access methods for project views.
type Repository interface {
	Roster(sortKey string) ([]RosterRow, error)
	GetInfo(pnumber int) (*Info, error)
	ListAssignments(pnumber int) ([]Assignment, error)
	UpsertAssignment(essn string, pnumber int, hours float64) error
}

// Service handles project roster and assignment business logic.
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

func (s *Service) Roster(sortKey string) ([]RosterRow, error) {
	rows, err := s.repo.Roster(sortKey)
	if err != nil {
		s.logger.Error("failed to load project roster", "error", err, "sort", sortKey)
		return nil, err
	}
	return rows, nil
}

// Detail loads one project plus every employee with their hours on it.
func (s *Service) Detail(pnumber int) (*Info, []Assignment, error) {
	info, err := s.repo.GetInfo(pnumber)
	if err != nil {
		s.logger.Warn("project lookup failed", "error", err, "pnumber", pnumber)
		return nil, nil, err
	}

	assignments, err := s.repo.ListAssignments(pnumber)
	if err != nil {
		s.logger.Error("failed to load assignments", "error", err, "pnumber", pnumber)
		return nil, nil, err
	}

	return info, assignments, nil
}

// UpsertAssignment inserts or, on an (essn, pno) collision, overwrites the
// hours with the new value.
func (s *Service) UpsertAssignment(pnumber int, dto AssignmentDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetInfo(pnumber); err != nil {
		return err
	}

	if err := s.repo.UpsertAssignment(dto.ESSN, pnumber, dto.Hours); err != nil {
		s.logger.Error("assignment upsert failed", "error", err,
			"essn", dto.ESSN, "pnumber", pnumber)
		return err
	}

	s.logger.Info("assignment upserted", "essn", dto.ESSN, "pnumber", pnumber, "hours", dto.Hours)
	return nil
}
