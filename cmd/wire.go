package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/semester-scheduler/internal/adapters/export"
	scheduleview "github.com/bnema/semester-scheduler/internal/adapters/render/schedule"
	csvrepo "github.com/bnema/semester-scheduler/internal/adapters/repo/csv"
	tomlrepo "github.com/bnema/semester-scheduler/internal/adapters/repo/toml"
	"github.com/bnema/semester-scheduler/internal/application"
	"github.com/bnema/semester-scheduler/internal/config"
	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg            *viper.Viper
	logger         *zap.Logger
	scheduler      *application.SchedulerService
	exporter       export.FileExporter
	renderSchedule func(domain.Schedule, scheduleview.RenderOptions) (string, error)
	renderSessions func([]domain.Session) (string, error)
}

// wire builds the application for the command about to run. Flags of that
// command override config file and environment values.
func (a *app) wire(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	if err := config.BindFlags(cfg, cmd.Flags()); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}

	roster, err := newRosterRepository(cfg)
	if err != nil {
		return fmt.Errorf("wire roster repository: %w", err)
	}

	runs, err := tomlrepo.NewRunRepository(cfg)
	if err != nil {
		return fmt.Errorf("wire run repository: %w", err)
	}

	exporter, err := newExporter(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.exporter = exporter
	a.scheduler = application.NewSchedulerService(roster, runs, exporter, ports.SystemClock{}, ports.SystemRandom{}, logger)
	a.renderSchedule = scheduleview.Render
	a.renderSessions = scheduleview.RenderSessions
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRosterRepository(cfg *viper.Viper) (ports.RosterRepository, error) {
	format := strings.ToLower(strings.TrimSpace(cfg.GetString(config.KeyRosterFormat)))
	switch format {
	case config.RosterFormatCSV:
		return csvrepo.NewRepository(cfg)
	case config.RosterFormatTOML:
		return tomlrepo.NewRosterRepository(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported roster format %q", domain.ErrConfiguration, format)
	}
}

func newExporter(cfg *viper.Viper, stdout io.Writer) (export.FileExporter, error) {
	exporter := export.FileExporter{Stdout: stdout}

	raw := cfg.GetString(config.KeyOutputFormat)
	if strings.TrimSpace(raw) == "" {
		return exporter, nil
	}

	format, err := export.ParseFormat(raw)
	if err != nil {
		return export.FileExporter{}, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	exporter.Format = format
	return exporter, nil
}

// newLogger writes human-readable log lines to the command's stderr so they
// never mix with table or JSON output.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("%w: log level: %w", domain.ErrConfiguration, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
