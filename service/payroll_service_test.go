package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/payslip-filler/config"
	"github.com/Aashish23092/payslip-filler/document"
	"github.com/Aashish23092/payslip-filler/dto"
)

const mdTemplate = "Date: @$#%date_num@$#% @$#%month_ua@$#% @$#%year@$#%\n" +
	"Total: @$#%total@$#%,@$#%total_dec@$#% (@$#%total_text_en@$#%)\n" +
	"Additional: @$#%TOTAL_ADD@$#%,@$#%total_add_dec@$#%\n"

const mdFilled = "Date: 31 березня 2024\n" +
	"Total: 10 500,25 (ten thousand five hundred)\n" +
	"Additional: 500,25\n"

func newTestService() *PayrollService {
	reader := NewReportReader(NewPDFProcessor(), nil, testReportConfig(), zerolog.Nop())
	svc := NewPayrollService(reader, document.NewRegistry(), config.TemplateConfig{
		Delimiter:      document.DefaultDelimiter,
		GroupSeparator: " ",
	}, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestPlaceholders(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "report.txt", []byte(sampleReport))

	facts, m, err := newTestService().Placeholders(context.Background(), report)
	require.NoError(t, err)

	assert.Equal(t, dto.Period{Year: 2024, Month: time.March}, facts.Period)
	assert.Equal(t, 20, m.Len())
	v, ok := m.Get("total")
	require.True(t, ok)
	assert.Equal(t, "10 500", v)
}

func TestFill(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "report.txt", []byte(sampleReport))
	template := writeFile(t, dir, "template.md", []byte(mdTemplate))
	output := filepath.Join(dir, "filled.md")

	result, err := newTestService().Fill(context.Background(), dto.FillRequest{
		ReportPath:   report,
		TemplatePath: template,
		OutputPath:   output,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, mdFilled, string(data))

	original, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, mdTemplate, string(original))

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, output, result.OutputPath)
	assert.Equal(t, dto.Period{Year: 2024, Month: time.March}, result.Period)
	assert.Equal(t, 1, result.Regions)
	assert.Equal(t, 8, result.Replacements)
	assert.Len(t, result.PerKey, 20)
	assert.Equal(t, "2024-04-01T09:00:00Z", result.ProcessedAt)
}

func TestFillInPlace(t *testing.T) {
	dir := t.TempDir()
	report := writeFile(t, dir, "report.txt", []byte(sampleReport))
	template := writeFile(t, dir, "template.md", []byte(mdTemplate))

	result, err := newTestService().Fill(context.Background(), dto.FillRequest{ReportPath: report, TemplatePath: template})
	require.NoError(t, err)
	assert.Equal(t, template, result.OutputPath)

	data, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, mdFilled, string(data))
}

func TestFillBrokenReportLeavesTemplate(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		wantErr error
	}{
		{
			name:    "missing total line",
			report:  "основна винагорода, грн. 1,00\n",
			wantErr: dto.ErrMissingField,
		},
		{
			name: "invalid month",
			report: "основна винагорода, грн. 1,00\nдодаткова винагорода, грн. 0,00\n" +
				"оплата щорічної перерви, грн. 0,00\nЗагальна винагорода за 13.2024 1,00\n",
			wantErr: dto.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			report := writeFile(t, dir, "report.txt", []byte(tt.report))
			template := writeFile(t, dir, "template.md", []byte(mdTemplate))

			_, err := newTestService().Fill(context.Background(), dto.FillRequest{ReportPath: report, TemplatePath: template})
			assert.ErrorIs(t, err, tt.wantErr)

			data, err := os.ReadFile(template)
			require.NoError(t, err)
			assert.Equal(t, mdTemplate, string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestFillValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Fill(context.Background(), dto.FillRequest{TemplatePath: "t.docx"})
	assert.Error(t, err)

	_, err = svc.Fill(context.Background(), dto.FillRequest{ReportPath: "r.txt", TemplatePath: "t.odt"})
	assert.ErrorIs(t, err, dto.ErrUnsupportedFormat)
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name         string
		files        []string
		wantReport   string
		wantTemplate string
		wantErr      error
	}{
		{
			name:         "docx preferred",
			files:        []string{"b.txt", "a.txt", "notes.md", "~$template.docx", "template.docx"},
			wantReport:   "a.txt",
			wantTemplate: "template.docx",
		},
		{
			name:         "other template formats",
			files:        []string{"report.txt", "sheet.xlsx", "notes.md", ".hidden.docx"},
			wantReport:   "report.txt",
			wantTemplate: "notes.md",
		},
		{
			name:    "txt is never a template",
			files:   []string{"a.txt", "template.txt"},
			wantErr: dto.ErrNothingToDo,
		},
		{
			name:         "txt report beside md template",
			files:        []string{"payslip.md", "report.txt", "template.txt"},
			wantReport:   "report.txt",
			wantTemplate: "payslip.md",
		},
		{
			name:    "no template",
			files:   []string{"report.txt", "~$lock.docx"},
			wantErr: dto.ErrNothingToDo,
		},
		{
			name:    "no report",
			files:   []string{"template.docx"},
			wantErr: dto.ErrNothingToDo,
		},
		{
			name:    "empty directory",
			wantErr: dto.ErrNothingToDo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.files {
				writeFile(t, dir, name, []byte("x"))
			}
			require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.docx"), 0o755))

			report, template, err := newTestService().Discover(dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.wantReport), report)
			assert.Equal(t, filepath.Join(dir, tt.wantTemplate), template)
		})
	}
}

func TestFillDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "report.txt", []byte(sampleReport))
	template := writeFile(t, dir, "payslip.md", []byte(mdTemplate))

	result, err := newTestService().FillDirectory(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, template, result.OutputPath)

	data, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, mdFilled, string(data))
}
