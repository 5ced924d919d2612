package domain

import (
	"fmt"
	"strings"
)

// Roster is the full validated input of a scheduling run.
type Roster struct {
	Classes  []ClassDefinition
	Teachers []TeacherDefinition
	Lessons  []string
}

func (r Roster) Validate() error {
	if len(r.Lessons) == 0 {
		return ErrEmptyLessonList
	}
	for i, lesson := range r.Lessons {
		if strings.TrimSpace(lesson) == "" {
			return fmt.Errorf("lesson %d: label is empty", i+1)
		}
	}

	for _, class := range r.Classes {
		if err := class.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(r.Teachers))
	for _, teacher := range r.Teachers {
		if err := teacher.Validate(); err != nil {
			return err
		}
		if _, ok := seen[teacher.Name]; ok {
			return fmt.Errorf("%w %q", ErrDuplicateTeacher, teacher.Name)
		}
		seen[teacher.Name] = struct{}{}
	}

	return nil
}

func (r Roster) TeachersByRank(rank Rank) []TeacherDefinition {
	teachers := make([]TeacherDefinition, 0, len(r.Teachers))
	for _, teacher := range r.Teachers {
		if teacher.Rank == rank {
			teachers = append(teachers, teacher)
		}
	}
	return teachers
}
