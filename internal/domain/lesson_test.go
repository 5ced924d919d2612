package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonCycleWrapsInOrder(t *testing.T) {
	t.Parallel()

	cycle, err := NewLessonCycle([]string{"Fractions", "Decimals", "Ratios"})
	require.NoError(t, err)

	got := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, cycle.Next())
	}
	assert.Equal(t, []string{"Fractions", "Decimals", "Ratios", "Fractions", "Decimals", "Ratios", "Fractions"}, got)
}

func TestLessonCycleRejectsEmptyList(t *testing.T) {
	t.Parallel()

	_, err := NewLessonCycle(nil)
	require.ErrorIs(t, err, ErrEmptyLessonList)

	_, err = NewLessonCycle([]string{"Intro", "  "})
	require.ErrorContains(t, err, "lesson 2: label is empty")
}

func TestLessonCycleDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	lessons := []string{"A", "B"}
	cycle, err := NewLessonCycle(lessons)
	require.NoError(t, err)
	lessons[0] = "changed"

	assert.Equal(t, "A", cycle.Next())
}

func TestWeeklyLessonCachePinsLessonPerTeacherWeek(t *testing.T) {
	t.Parallel()

	cycle, err := NewLessonCycle([]string{"L1", "L2", "L3"})
	require.NoError(t, err)
	cache := NewWeeklyLessonCache(cycle)

	w34 := ISOWeek{Year: 2025, Week: 34}
	w35 := ISOWeek{Year: 2025, Week: 35}

	assert.Equal(t, "L1", cache.LessonFor("Ana", w34))
	assert.Equal(t, "L2", cache.LessonFor("Ben", w34))
	assert.Equal(t, "L1", cache.LessonFor("Ana", w34))
	assert.Equal(t, "L3", cache.LessonFor("Ana", w35))
	assert.Equal(t, "L2", cache.LessonFor("Ben", w34))
	assert.Equal(t, "L1", cache.LessonFor("Ben", w35))
}

func TestNormalizeLessons(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Intro", "Loops"}, NormalizeLessons([]string{" Intro ", "", "\t", "Loops"}))
}

func TestLoadTracker(t *testing.T) {
	t.Parallel()

	tracker := NewLoadTracker()
	week := ISOWeek{Year: 2025, Week: 34}

	assert.Zero(t, tracker.CurrentCount("Ana", week))
	assert.False(t, tracker.HasWorked("Ana", week, time.Monday))

	tracker.Record("Ana", week, time.Monday)
	tracker.Record("Ana", week, time.Wednesday)

	assert.Equal(t, 2, tracker.CurrentCount("Ana", week))
	assert.True(t, tracker.HasWorked("Ana", week, time.Monday))
	assert.True(t, tracker.HasWorked("Ana", week, time.Wednesday))
	assert.False(t, tracker.HasWorked("Ana", week, time.Friday))
	assert.Zero(t, tracker.CurrentCount("Ana", ISOWeek{Year: 2025, Week: 35}))
	assert.Zero(t, tracker.CurrentCount("Ben", week))
}

func TestLoadTrackerEligible(t *testing.T) {
	t.Parallel()

	week := ISOWeek{Year: 2025, Week: 34}
	teacher := TeacherDefinition{
		Name:          "Ana",
		Rank:          RankLead,
		AvailableDays: NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday),
		MaxPerWeek:    2,
	}

	tracker := NewLoadTracker()
	assert.True(t, tracker.Eligible(teacher, week, time.Monday))
	assert.False(t, tracker.Eligible(teacher, week, time.Friday), "unavailable weekday")

	tracker.Record("Ana", week, time.Monday)
	assert.False(t, tracker.Eligible(teacher, week, time.Monday), "already working that day")
	assert.True(t, tracker.Eligible(teacher, week, time.Tuesday))

	tracker.Record("Ana", week, time.Tuesday)
	assert.False(t, tracker.Eligible(teacher, week, time.Wednesday), "weekly cap reached")
	assert.True(t, tracker.Eligible(teacher, ISOWeek{Year: 2025, Week: 35}, time.Wednesday))
}

func TestScheduleSinkSortsByDateThenTime(t *testing.T) {
	t.Parallel()

	sink := NewScheduleSink()
	sink.Collect(Assignment{Date: date(t, "2025-08-19"), Time: "09:00", ClassName: "C"})
	sink.Collect(Assignment{Date: date(t, "2025-08-18"), Time: "1:00 PM", ClassName: "B"})
	sink.Collect(Assignment{Date: date(t, "2025-08-18"), Time: "10:00", ClassName: "A"})
	sink.Skip(Session{Date: date(t, "2025-08-20"), Class: ClassDefinition{Name: "D"}}, SkipNoLead)

	schedule := sink.Schedule()
	require.Len(t, schedule.Assignments, 3)
	assert.Equal(t, "A", schedule.Assignments[0].ClassName)
	assert.Equal(t, "B", schedule.Assignments[1].ClassName)
	assert.Equal(t, "C", schedule.Assignments[2].ClassName)
	require.Len(t, schedule.Skipped, 1)
	assert.Equal(t, SkipNoLead, schedule.Skipped[0].Reason)
	assert.False(t, schedule.Empty())
	assert.True(t, Schedule{}.Empty())
}
