package ports

import (
	"context"

	"github.com/bnema/semester-scheduler/internal/domain"
)

type RunRepository interface {
	GetByID(ctx context.Context, id string) (domain.Run, error)
	List(ctx context.Context) ([]domain.Run, error)
	Save(ctx context.Context, run domain.Run) error
}
