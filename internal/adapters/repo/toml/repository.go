package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	rosterPathKey   = "roster.path"
	rosterFile      = "roster.toml"
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".semsched-*.toml.tmp"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// RosterRepository reads classes, teachers and lessons from a single TOML
// file.
type RosterRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.RosterRepository = (*RosterRepository)(nil)

func NewRosterRepository(cfg *viper.Viper) (*RosterRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(rosterPathKey)
	if path == "" {
		path = filepath.Join("data", rosterFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &RosterRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *RosterRepository) Classes(ctx context.Context) ([]domain.ClassDefinition, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	classes := make([]domain.ClassDefinition, 0, len(file.Classes))
	for i, entry := range file.Classes {
		class, err := fromClassSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i+1, err)
		}
		classes = append(classes, class)
	}

	return classes, nil
}

func (r *RosterRepository) Teachers(ctx context.Context) ([]domain.TeacherDefinition, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	teachers := make([]domain.TeacherDefinition, 0, len(file.Teachers))
	for i, entry := range file.Teachers {
		teacher, err := fromTeacherSchema(entry)
		if err != nil {
			return nil, fmt.Errorf("teacher %d: %w", i+1, err)
		}
		teachers = append(teachers, teacher)
	}

	return teachers, nil
}

func (r *RosterRepository) Lessons(ctx context.Context) ([]string, error) {
	file, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return file.Lessons, nil
}

func (r *RosterRepository) load(ctx context.Context) (rosterFileSchema, error) {
	if err := ctx.Err(); err != nil {
		return rosterFileSchema{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return rosterFileSchema{}, fmt.Errorf("read roster file: %w", err)
	}

	var file rosterFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return rosterFileSchema{}, fmt.Errorf("decode roster file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return rosterFileSchema{}, err
	}

	return file, nil
}

func fromClassSchema(schema classSchema) (domain.ClassDefinition, error) {
	days, err := domain.ParseWeekdays(schema.MeetingDays)
	if err != nil {
		return domain.ClassDefinition{}, fmt.Errorf("class %q: %w", schema.Name, err)
	}

	return domain.ClassDefinition{
		Name:        strings.TrimSpace(schema.Name),
		MeetingDays: days,
		Time:        strings.TrimSpace(schema.Time),
		Location:    strings.TrimSpace(schema.Location),
	}, nil
}

func fromTeacherSchema(schema teacherSchema) (domain.TeacherDefinition, error) {
	rank, err := domain.ParseRank(schema.Rank)
	if err != nil {
		return domain.TeacherDefinition{}, fmt.Errorf("teacher %q: %w", schema.Name, err)
	}

	days, err := domain.ParseWeekdays(schema.AvailableDays)
	if err != nil {
		return domain.TeacherDefinition{}, fmt.Errorf("teacher %q: %w", schema.Name, err)
	}

	return domain.TeacherDefinition{
		Name:          strings.TrimSpace(schema.Name),
		Rank:          rank,
		AvailableDays: days,
		MaxPerWeek:    schema.MaxPerWeek,
	}, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeTOMLFile(path string, file any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	cleanup = false
	return nil
}

func readTOMLFile(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read file: %w", err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode file: %w", err)
	}
	return true, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
