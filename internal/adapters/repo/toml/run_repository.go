package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"github.com/spf13/viper"
)

const (
	runsPathKey  = "runs.path"
	runsFileName = "runs.toml"
	configDir    = ".config/semsched"
)

// RunRepository keeps the ledger of generated schedules.
type RunRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.RunRepository = (*RunRepository)(nil)

func NewRunRepository(cfg *viper.Viper) (*RunRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(runsPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, configDir, runsFileName)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &RunRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *RunRepository) Save(ctx context.Context, run domain.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := toRunSchema(run)
	updated := false
	for i := range file.Runs {
		if file.Runs[i].ID == encoded.ID {
			file.Runs[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Runs = append(file.Runs, encoded)
	}

	return writeTOMLFile(r.path, file)
}

func (r *RunRepository) GetByID(ctx context.Context, id string) (domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return domain.Run{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Run{}, err
	}

	for _, entry := range file.Runs {
		if entry.ID == id {
			return fromRunSchema(entry)
		}
	}

	return domain.Run{}, domain.ErrRunNotFound
}

func (r *RunRepository) List(ctx context.Context) ([]domain.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	runs := make([]domain.Run, 0, len(file.Runs))
	for _, entry := range file.Runs {
		run, err := fromRunSchema(entry)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, nil
}

func (r *RunRepository) readSchema() (runsFileSchema, error) {
	var file runsFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return runsFileSchema{}, fmt.Errorf("runs file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return runsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

// Seeds are stored as decimal strings; TOML integers stop at MaxInt64.
func toRunSchema(run domain.Run) runSchema {
	seed := ""
	if run.Seeded {
		seed = strconv.FormatUint(run.Seed, 10)
	}

	return runSchema{
		ID:          run.ID,
		GeneratedAt: formatTime(run.GeneratedAt),
		Start:       formatDate(run.Range.Start),
		End:         formatDate(run.Range.End),
		Seed:        seed,
		Seeded:      run.Seeded,
		Sessions:    run.Sessions,
		Assignments: run.Assignments,
		Skipped:     run.Skipped,
		OutputPath:  run.OutputPath,
	}
}

func fromRunSchema(schema runSchema) (domain.Run, error) {
	var seed uint64
	if schema.Seed != "" {
		parsed, err := strconv.ParseUint(schema.Seed, 10, 64)
		if err != nil {
			return domain.Run{}, fmt.Errorf("run %s: parse seed: %w", schema.ID, err)
		}
		seed = parsed
	}

	return domain.Run{
		ID:          schema.ID,
		GeneratedAt: parseTime(schema.GeneratedAt),
		Range: domain.DateRange{
			Start: parseDate(schema.Start),
			End:   parseDate(schema.End),
		},
		Seed:        seed,
		Seeded:      schema.Seeded,
		Sessions:    schema.Sessions,
		Assignments: schema.Assignments,
		Skipped:     schema.Skipped,
		OutputPath:  schema.OutputPath,
	}, nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(domain.DateLayout)
}

func parseDate(raw string) time.Time {
	parsed, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
