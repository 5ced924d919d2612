package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/bnema/semester-scheduler/internal/ports"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	fileMode = 0o644
	dirMode  = 0o755
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, value)
	}
}

// FormatFromPath picks the format matching the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Row is one exported schedule line. Column names match the table the
// scheduler has always produced.
type Row struct {
	Date             string `csv:"Date" json:"Date" yaml:"date"`
	Weekday          string `csv:"Weekday" json:"Weekday" yaml:"weekday"`
	ClassName        string `csv:"ClassName" json:"ClassName" yaml:"class_name"`
	Time             string `csv:"Time" json:"Time" yaml:"time"`
	Location         string `csv:"Location" json:"Location" yaml:"location"`
	LeadTeacher      string `csv:"LeadTeacher" json:"LeadTeacher" yaml:"lead_teacher"`
	AssistantTeacher string `csv:"AssistantTeacher" json:"AssistantTeacher" yaml:"assistant_teacher"`
	Lesson           string `csv:"Lesson" json:"Lesson" yaml:"lesson"`
}

var rowHeaders = []string{"Date", "Weekday", "ClassName", "Time", "Location", "LeadTeacher", "AssistantTeacher", "Lesson"}

func Rows(schedule domain.Schedule) []Row {
	rows := make([]Row, 0, len(schedule.Assignments))
	for _, assignment := range schedule.Assignments {
		rows = append(rows, Row{
			Date:             assignment.Date.Format(domain.DateLayout),
			Weekday:          assignment.Weekday.String(),
			ClassName:        assignment.ClassName,
			Time:             assignment.Time,
			Location:         assignment.Location,
			LeadTeacher:      assignment.LeadTeacher,
			AssistantTeacher: assignment.AssistantTeacher,
			Lesson:           assignment.Lesson,
		})
	}
	return rows
}

func (r Row) values() []any {
	return []any{r.Date, r.Weekday, r.ClassName, r.Time, r.Location, r.LeadTeacher, r.AssistantTeacher, r.Lesson}
}

// StdoutPath as an export path sends the encoded schedule to
// FileExporter.Stdout instead of a file.
const StdoutPath = "-"

// FileExporter writes a schedule to disk. An empty Format is derived from
// the target path's extension.
type FileExporter struct {
	Format Format
	Stdout io.Writer
}

var _ ports.ScheduleExporter = FileExporter{}

// FormatFor resolves the format an export to path would use.
func (e FileExporter) FormatFor(path string) (Format, error) {
	if e.Format != "" {
		return e.Format, nil
	}
	if path == StdoutPath {
		return "", fmt.Errorf("%w: writing to stdout needs an explicit format", ErrUnsupportedFormat)
	}
	return FormatFromPath(path)
}

func (e FileExporter) Export(ctx context.Context, schedule domain.Schedule, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := e.FormatFor(path)
	if err != nil {
		return err
	}

	if path == StdoutPath {
		if e.Stdout == nil {
			return errors.New("no stdout configured for export")
		}
		return Write(e.Stdout, format, schedule)
	}

	encode, err := encoderFor(format)
	if err != nil {
		return err
	}

	return writeFile(path, func(w io.Writer) error {
		return encode(w, Rows(schedule))
	})
}

// Write encodes the schedule to w in the given format.
func Write(w io.Writer, format Format, schedule domain.Schedule) error {
	encode, err := encoderFor(format)
	if err != nil {
		return err
	}
	return encode(w, Rows(schedule))
}

type encodeFunc func(io.Writer, []Row) error

func encoderFor(format Format) (encodeFunc, error) {
	switch format {
	case FormatXLSX:
		return encodeXLSX, nil
	case FormatCSV:
		return encodeCSV, nil
	case FormatJSON:
		return encodeJSON, nil
	case FormatYAML:
		return encodeYAML, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

func encodeCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, strings.Join(rowHeaders, ","))
		return err
	}
	return gocsv.Marshal(&rows, w)
}

func encodeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func encodeYAML(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func writeFile(path string, encode func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".schedule-*.tmp")
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

	if err := encode(tempFile); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("encode schedule: %w", err)
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
