package ports

import (
	"context"

	"github.com/bnema/semester-scheduler/internal/domain"
)

// RosterRepository loads the class, teacher and lesson definitions of a run.
type RosterRepository interface {
	Classes(ctx context.Context) ([]domain.ClassDefinition, error)
	Teachers(ctx context.Context) ([]domain.TeacherDefinition, error)
	Lessons(ctx context.Context) ([]string, error)
}
