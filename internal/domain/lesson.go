package domain

import (
	"fmt"
	"slices"
	"strings"
)

// LessonCycle hands out lesson labels round-robin in their configured order.
// It never runs out; build a new cycle to start over.
type LessonCycle struct {
	lessons []string
	next    int
}

func NewLessonCycle(lessons []string) (*LessonCycle, error) {
	if len(lessons) == 0 {
		return nil, ErrEmptyLessonList
	}
	for i, lesson := range lessons {
		if strings.TrimSpace(lesson) == "" {
			return nil, fmt.Errorf("lesson %d: label is empty", i+1)
		}
	}

	return &LessonCycle{lessons: slices.Clone(lessons)}, nil
}

func (c *LessonCycle) Next() string {
	lesson := c.lessons[c.next]
	c.next = (c.next + 1) % len(c.lessons)
	return lesson
}

// WeeklyLessonCache pins one lesson per teacher per ISO week. The first
// lookup for a key draws from the cycle; later lookups return the same value.
type WeeklyLessonCache struct {
	cycle   *LessonCycle
	lessons map[teacherWeek]string
}

func NewWeeklyLessonCache(cycle *LessonCycle) *WeeklyLessonCache {
	return &WeeklyLessonCache{cycle: cycle, lessons: map[teacherWeek]string{}}
}

func (c *WeeklyLessonCache) LessonFor(teacher string, week ISOWeek) string {
	key := teacherWeek{teacher: teacher, week: week}
	if lesson, ok := c.lessons[key]; ok {
		return lesson
	}

	lesson := c.cycle.Next()
	c.lessons[key] = lesson
	return lesson
}

// NormalizeLessons trims labels and drops blank lines.
func NormalizeLessons(lessons []string) []string {
	normalized := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		trimmed := strings.TrimSpace(lesson)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
