package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/payslip-filler/config"
	"github.com/Aashish23092/payslip-filler/document"
	"github.com/Aashish23092/payslip-filler/dto"
	"github.com/Aashish23092/payslip-filler/utils"
)

// ReportSource turns a report file into text.
type ReportSource interface {
	ReadReport(ctx context.Context, path string) (string, error)
	Supports(path string) bool
}

type PayrollService struct {
	reports   ReportSource
	hosts     *document.Registry
	builder   utils.Builder
	delimiter string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewPayrollService(
	reports ReportSource,
	hosts *document.Registry,
	cfg config.TemplateConfig,
	logger zerolog.Logger,
) *PayrollService {
	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = document.DefaultDelimiter
	}
	return &PayrollService{
		reports:   reports,
		hosts:     hosts,
		builder:   utils.Builder{GroupSeparator: cfg.GroupSeparator},
		delimiter: delimiter,
		logger:    logger.With().Str("component", "payroll").Logger(),
		now:       time.Now,
	}
}

// Placeholders reads a report and computes its placeholder map.
func (s *PayrollService) Placeholders(ctx context.Context, reportPath string) (*dto.PayrollFacts, dto.PlaceholderMap, error) {
	text, err := s.reports.ReadReport(ctx, reportPath)
	if err != nil {
		return nil, dto.PlaceholderMap{}, err
	}

	facts, err := utils.ParseReport(text)
	if err != nil {
		return nil, dto.PlaceholderMap{}, fmt.Errorf("report %s: %w", filepath.Base(reportPath), err)
	}

	placeholders, err := s.builder.Build(facts)
	if err != nil {
		return nil, dto.PlaceholderMap{}, fmt.Errorf("report %s: %w", filepath.Base(reportPath), err)
	}
	return &facts, placeholders, nil
}

// Fill substitutes the placeholders of a report into a template. The
// template is only opened once the report was fully parsed.
func (s *PayrollService) Fill(ctx context.Context, req dto.FillRequest) (*dto.FillResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := s.logger.With().Str("run_id", runID).Logger()

	host, err := s.hosts.For(req.TemplatePath)
	if err != nil {
		return nil, err
	}

	facts, placeholders, err := s.Placeholders(ctx, req.ReportPath)
	if err != nil {
		logger.Error().Err(err).Str("report", req.ReportPath).Msg("Failed to compute placeholders")
		return nil, err
	}

	output := req.OutputPath
	if output == "" {
		output = req.TemplatePath
	}

	replacer := document.NewReplacer(s.delimiter, placeholders)
	stats, err := host.Substitute(ctx, req.TemplatePath, output, replacer)
	if err != nil {
		logger.Error().Err(err).Str("template", req.TemplatePath).Msg("Failed to fill template")
		return nil, fmt.Errorf("template %s: %w", filepath.Base(req.TemplatePath), err)
	}

	result := &dto.FillResult{
		RunID:        runID,
		ReportPath:   req.ReportPath,
		TemplatePath: req.TemplatePath,
		OutputPath:   output,
		Period:       facts.Period,
		Regions:      stats.Regions,
		Replacements: stats.Total(),
		PerKey:       stats.PerKey(replacer),
		ProcessedAt:  s.now().Format(time.RFC3339),
	}

	logger.Info().
		Str("period", facts.Period.String()).
		Str("output", output).
		Int("regions", result.Regions).
		Int("replacements", result.Replacements).
		Msg("Template filled")
	return result, nil
}

// Discover picks the report and the template of a working directory: the
// first report file by name, and the first .docx template (other template
// formats after that). Office lock files and hidden files are ignored.
// A file whose extension is a report extension is always taken as a report,
// so with the default extensions a plain-text template is found only as .md;
// a .txt template has to be passed explicitly to Fill.
func (s *PayrollService) Discover(dir string) (string, string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("failed to read directory: %w", err)
	}

	var report string
	templates := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if s.reports.Supports(path) {
			if report == "" {
				report = path
			}
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, seen := templates[ext]; !seen && s.hosts.Supports(path) {
			templates[ext] = path
		}
	}

	template := templates[".docx"]
	if template == "" {
		for _, ext := range s.hosts.Extensions() {
			if t, ok := templates[ext]; ok {
				template = t
				break
			}
		}
	}

	switch {
	case report == "":
		return "", "", fmt.Errorf("%w: no report in %s", dto.ErrNothingToDo, dir)
	case template == "":
		return "", "", fmt.Errorf("%w: no template in %s", dto.ErrNothingToDo, dir)
	}
	return report, template, nil
}

// FillDirectory discovers the report and template of dir and fills the
// template in place.
func (s *PayrollService) FillDirectory(ctx context.Context, dir string) (*dto.FillResult, error) {
	report, template, err := s.Discover(dir)
	if err != nil {
		return nil, err
	}
	return s.Fill(ctx, dto.FillRequest{ReportPath: report, TemplatePath: template})
}
