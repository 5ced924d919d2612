package ports

import (
	"context"

	"github.com/bnema/semester-scheduler/internal/domain"
)

type ScheduleExporter interface {
	Export(ctx context.Context, schedule domain.Schedule, path string) error
}
