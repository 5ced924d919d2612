// Package csv reads class and teacher definitions from CSV tables and the
// lesson list from a plain text file, one label per line.
package csv

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"github.com/gocarina/gocsv"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	classesPathKey  = "roster.classes"
	teachersPathKey = "roster.teachers"
	lessonsPathKey  = "roster.lessons"
)

var (
	defaultClassesPath  = filepath.Join("data", "classes.csv")
	defaultTeachersPath = filepath.Join("data", "teachers.csv")
	defaultLessonsPath  = filepath.Join("data", "lessons.txt")
)

type classRow struct {
	ClassName   string `csv:"ClassName" validate:"required"`
	MeetingDays string `csv:"MeetingDays" validate:"required"`
	Time        string `csv:"Time" validate:"required"`
	Location    string `csv:"Location"`
}

type teacherRow struct {
	Name              string `csv:"Name" validate:"required"`
	Rank              string `csv:"Rank" validate:"required"`
	AvailableDays     string `csv:"AvailableDays" validate:"required"`
	MaxClassesPerWeek int    `csv:"MaxClassesPerWeek" validate:"gt=0"`
}

type Repository struct {
	classesPath  string
	teachersPath string
	lessonsPath  string
	validate     *validator.Validate
}

var _ ports.RosterRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	classesPath, err := resolvePath(cfg.GetString(classesPathKey), defaultClassesPath)
	if err != nil {
		return nil, err
	}
	teachersPath, err := resolvePath(cfg.GetString(teachersPathKey), defaultTeachersPath)
	if err != nil {
		return nil, err
	}
	lessonsPath, err := resolvePath(cfg.GetString(lessonsPathKey), defaultLessonsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{
		classesPath:  classesPath,
		teachersPath: teachersPath,
		lessonsPath:  lessonsPath,
		validate:     validator.New(),
	}, nil
}

func (r *Repository) Classes(ctx context.Context) ([]domain.ClassDefinition, error) {
	var rows []classRow
	if err := r.readTable(ctx, r.classesPath, &rows); err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}

	classes := make([]domain.ClassDefinition, 0, len(rows))
	for i, row := range rows {
		if err := r.validate.Struct(row); err != nil {
			return nil, fmt.Errorf("classes row %d: %w: %w", i+2, domain.ErrInvalidClass, err)
		}

		days, err := domain.ParseWeekdayList(row.MeetingDays)
		if err != nil {
			return nil, fmt.Errorf("classes row %d: %w", i+2, err)
		}

		classes = append(classes, domain.ClassDefinition{
			Name:        strings.TrimSpace(row.ClassName),
			MeetingDays: days,
			Time:        strings.TrimSpace(row.Time),
			Location:    strings.TrimSpace(row.Location),
		})
	}

	return classes, nil
}

func (r *Repository) Teachers(ctx context.Context) ([]domain.TeacherDefinition, error) {
	var rows []teacherRow
	if err := r.readTable(ctx, r.teachersPath, &rows); err != nil {
		return nil, fmt.Errorf("teachers: %w", err)
	}

	teachers := make([]domain.TeacherDefinition, 0, len(rows))
	for i, row := range rows {
		if err := r.validate.Struct(row); err != nil {
			return nil, fmt.Errorf("teachers row %d: %w: %w", i+2, domain.ErrInvalidTeacher, err)
		}

		rank, err := domain.ParseRank(row.Rank)
		if err != nil {
			return nil, fmt.Errorf("teachers row %d: %w", i+2, err)
		}

		days, err := domain.ParseWeekdayList(row.AvailableDays)
		if err != nil {
			return nil, fmt.Errorf("teachers row %d: %w", i+2, err)
		}

		teachers = append(teachers, domain.TeacherDefinition{
			Name:          strings.TrimSpace(row.Name),
			Rank:          rank,
			AvailableDays: days,
			MaxPerWeek:    row.MaxClassesPerWeek,
		})
	}

	return teachers, nil
}

func (r *Repository) Lessons(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.lessonsPath)
	if err != nil {
		return nil, fmt.Errorf("read lessons file: %w", err)
	}

	lessons := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lessons = append(lessons, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan lessons file: %w", err)
	}

	return lessons, nil
}

func (r *Repository) readTable(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("file is empty")
	}

	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = fallback
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return filepath.Clean(absPath), nil
}
