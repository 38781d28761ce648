package health

import (
	"context"
	"time"
)

// Report describes the service liveness state.
type Report struct {
	Status string
	Time   time.Time
}

// Checker exposes the liveness probe use case.
type Checker interface {
	Check(ctx context.Context) (Report, error)
}

// Pinger is anything with a connectivity probe, such as a pgx pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service reports liveness, degrading when the database is unreachable.
type Service struct {
	db Pinger
}

// NewService wires the health service. db may be nil.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Check probes the database when one is configured.
func (s *Service) Check(ctx context.Context) (Report, error) {
	report := Report{Status: "ok", Time: time.Now().UTC()}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			report.Status = "degraded"
			return report, err
		}
	}

	return report, nil
}
