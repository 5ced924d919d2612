package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrExportPathRequired = errors.New("export path is required")

type SchedulerService struct {
	roster   ports.RosterRepository
	runs     ports.RunRepository
	exporter ports.ScheduleExporter
	clock    ports.Clock
	random   ports.Random
	logger   *zap.Logger
	newID    func() string
}

func NewSchedulerService(
	roster ports.RosterRepository,
	runs ports.RunRepository,
	exporter ports.ScheduleExporter,
	clock ports.Clock,
	random ports.Random,
	logger *zap.Logger,
) *SchedulerService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if random == nil {
		random = ports.SystemRandom{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SchedulerService{
		roster:   roster,
		runs:     runs,
		exporter: exporter,
		clock:    clock,
		random:   random,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// PlanRequest describes one scheduling run. A zero Seed with Seeded false
// uses the service's default random source.
type PlanRequest struct {
	Range  domain.DateRange
	Seed   uint64
	Seeded bool
}

type Plan struct {
	Request  PlanRequest
	Roster   domain.Roster
	Sessions []domain.Session
	Schedule domain.Schedule
}

// LoadRoster reads and validates every input of a run. Any failure is a
// configuration error.
func (s *SchedulerService) LoadRoster(ctx context.Context) (domain.Roster, error) {
	classes, err := s.roster.Classes(ctx)
	if err != nil {
		return domain.Roster{}, configError(fmt.Errorf("load classes: %w", err))
	}

	teachers, err := s.roster.Teachers(ctx)
	if err != nil {
		return domain.Roster{}, configError(fmt.Errorf("load teachers: %w", err))
	}

	lessons, err := s.roster.Lessons(ctx)
	if err != nil {
		return domain.Roster{}, configError(fmt.Errorf("load lessons: %w", err))
	}

	roster := domain.Roster{
		Classes:  classes,
		Teachers: teachers,
		Lessons:  domain.NormalizeLessons(lessons),
	}
	if err := roster.Validate(); err != nil {
		return domain.Roster{}, configError(err)
	}

	return roster, nil
}

func (s *SchedulerService) ExpandSessions(ctx context.Context, r domain.DateRange) ([]domain.Session, error) {
	roster, err := s.LoadRoster(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := domain.ExpandSessions(roster.Classes, r)
	if err != nil {
		return nil, configError(err)
	}
	return sessions, nil
}

// Plan loads the roster, expands the date range and assigns teacher pairs.
// An empty schedule is a successful result.
func (s *SchedulerService) Plan(ctx context.Context, req PlanRequest) (Plan, error) {
	if err := req.Range.Validate(); err != nil {
		return Plan{}, configError(err)
	}

	roster, err := s.LoadRoster(ctx)
	if err != nil {
		return Plan{}, err
	}

	cycle, err := domain.NewLessonCycle(roster.Lessons)
	if err != nil {
		return Plan{}, configError(err)
	}

	sessions, err := domain.ExpandSessions(roster.Classes, req.Range)
	if err != nil {
		return Plan{}, configError(err)
	}

	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	random := s.random
	if req.Seeded {
		random = ports.NewSeededRandom(req.Seed)
	}

	schedule, err := NewAssignmentEngine(random, s.logger).Assign(sessions, roster.Teachers, cycle)
	if err != nil {
		return Plan{}, fmt.Errorf("assign sessions: %w", err)
	}

	s.logger.Info("schedule planned",
		zap.String("start", req.Range.Start.Format(domain.DateLayout)),
		zap.String("end", req.Range.End.Format(domain.DateLayout)),
		zap.Int("sessions", len(sessions)),
		zap.Int("assignments", len(schedule.Assignments)),
		zap.Int("skipped", len(schedule.Skipped)),
	)

	return Plan{
		Request:  req,
		Roster:   roster,
		Sessions: sessions,
		Schedule: schedule,
	}, nil
}

func (s *SchedulerService) Export(ctx context.Context, plan Plan, path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrExportPathRequired
	}
	if s.exporter == nil {
		return fmt.Errorf("export schedule: no exporter configured")
	}

	if err := s.exporter.Export(ctx, plan.Schedule, path); err != nil {
		return fmt.Errorf("export schedule: %w", err)
	}
	return nil
}

// RecordRun appends the plan to the run ledger.
func (s *SchedulerService) RecordRun(ctx context.Context, plan Plan, outputPath string) (domain.Run, error) {
	run := domain.Run{
		ID:          s.newID(),
		GeneratedAt: s.clock.Now().UTC(),
		Range:       plan.Request.Range,
		Seed:        plan.Request.Seed,
		Seeded:      plan.Request.Seeded,
		Sessions:    len(plan.Sessions),
		Assignments: len(plan.Schedule.Assignments),
		Skipped:     len(plan.Schedule.Skipped),
		OutputPath:  outputPath,
	}

	if s.runs == nil {
		return run, nil
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return domain.Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

func (s *SchedulerService) ListRuns(ctx context.Context) ([]domain.Run, error) {
	runs, err := s.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *SchedulerService) GetRun(ctx context.Context, id string) (domain.Run, error) {
	return s.runs.GetByID(ctx, strings.TrimSpace(id))
}

func configError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, domain.ErrConfiguration) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
}
