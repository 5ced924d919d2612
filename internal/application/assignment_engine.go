package application

import (
	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"go.uber.org/zap"
)

// AssignmentEngine pairs a lead and an assistant to each session. Draws come
// from the injected Random, so a seeded source makes runs repeatable; with an
// unseeded source two runs over the same input can differ.
type AssignmentEngine struct {
	random ports.Random
	logger *zap.Logger
}

func NewAssignmentEngine(random ports.Random, logger *zap.Logger) *AssignmentEngine {
	if random == nil {
		random = ports.SystemRandom{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AssignmentEngine{random: random, logger: logger}
}

// Assign processes sessions in order. Load and lesson state live only for
// this call. Sessions without an eligible pair are skipped and reported in
// the returned schedule; earlier commits are never revisited.
func (e *AssignmentEngine) Assign(sessions []domain.Session, teachers []domain.TeacherDefinition, cycle *domain.LessonCycle) (domain.Schedule, error) {
	if cycle == nil {
		return domain.Schedule{}, domain.ErrEmptyLessonList
	}
	if !domain.InChronologicalOrder(sessions) {
		return domain.Schedule{}, domain.ErrSessionsOutOfOrder
	}

	roster := domain.Roster{Teachers: teachers}
	leads := roster.TeachersByRank(domain.RankLead)
	assistants := roster.TeachersByRank(domain.RankAssistant)

	run := assignmentRun{
		engine:  e,
		tracker: domain.NewLoadTracker(),
		lessons: domain.NewWeeklyLessonCache(cycle),
		sink:    domain.NewScheduleSink(),
	}
	for _, session := range sessions {
		run.assign(session, leads, assistants)
	}

	return run.sink.Schedule(), nil
}

type assignmentRun struct {
	engine  *AssignmentEngine
	tracker *domain.LoadTracker
	lessons *domain.WeeklyLessonCache
	sink    *domain.ScheduleSink
}

func (r *assignmentRun) assign(session domain.Session, leads, assistants []domain.TeacherDefinition) {
	leadOptions := r.candidates(leads, session)
	assistantOptions := r.candidates(assistants, session)

	if len(leadOptions) == 0 {
		r.skip(session, domain.SkipNoLead)
		return
	}
	if len(assistantOptions) == 0 {
		r.skip(session, domain.SkipNoAssistant)
		return
	}

	lead := leadOptions[r.engine.random.IntN(len(leadOptions))]

	assistantOptions = excludeTeacher(assistantOptions, lead.Name)
	if len(assistantOptions) == 0 {
		r.skip(session, domain.SkipNoDistinctAssistant)
		return
	}
	assistant := assistantOptions[r.engine.random.IntN(len(assistantOptions))]

	// The lead's weekly lesson is the session's lesson; the assistant still
	// gets a weekly lesson pinned on first pairing.
	lesson := r.lessons.LessonFor(lead.Name, session.Week)
	r.lessons.LessonFor(assistant.Name, session.Week)

	r.sink.Collect(domain.Assignment{
		Date:             session.Date,
		Weekday:          session.Weekday,
		Week:             session.Week,
		ClassName:        session.Class.Name,
		Time:             session.Class.Time,
		Location:         session.Class.Location,
		LeadTeacher:      lead.Name,
		AssistantTeacher: assistant.Name,
		Lesson:           lesson,
	})

	r.tracker.Record(lead.Name, session.Week, session.Weekday)
	r.tracker.Record(assistant.Name, session.Week, session.Weekday)
}

func (r *assignmentRun) candidates(pool []domain.TeacherDefinition, session domain.Session) []domain.TeacherDefinition {
	candidates := make([]domain.TeacherDefinition, 0, len(pool))
	for _, teacher := range pool {
		if r.tracker.Eligible(teacher, session.Week, session.Weekday) {
			candidates = append(candidates, teacher)
		}
	}
	return candidates
}

func (r *assignmentRun) skip(session domain.Session, reason domain.SkipReason) {
	r.sink.Skip(session, reason)
	r.engine.logger.Warn("skipping session: no teacher pair",
		zap.String("class", session.Class.Name),
		zap.String("date", session.DateLabel()),
		zap.String("reason", string(reason)),
	)
}

func excludeTeacher(teachers []domain.TeacherDefinition, name string) []domain.TeacherDefinition {
	filtered := make([]domain.TeacherDefinition, 0, len(teachers))
	for _, teacher := range teachers {
		if teacher.Name == name {
			continue
		}
		filtered = append(filtered, teacher)
	}
	return filtered
}
