package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Aashish23092/payslip-filler/dto"
)

var (
	placeholdersTmpl = template.Must(template.New("placeholders").Parse(
		`Period: {{.Period}}
{{range .Placeholders.Entries}}{{printf "%-20s" .Key}} {{.Value}}
{{end}}`))

	fillTmpl = template.Must(template.New("fill").Parse(
		`Filled {{.OutputPath}}
Report:       {{.ReportPath}}
Period:       {{.Period}}
Regions:      {{.Regions}}
Replacements: {{.Replacements}}
{{range .PerKey}}{{if .Occurrences}}  {{printf "%-20s" .Key}} {{.Occurrences}}
{{end}}{{end}}`))
)

// Reporter prints command results in a formatted text form or as JSON.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Placeholders(resp dto.PlaceholdersResponse, asJSON bool) error {
	if asJSON {
		return r.JSON(resp)
	}
	return placeholdersTmpl.Execute(r.writer, resp)
}

func (r *Reporter) Fill(result *dto.FillResult, asJSON bool) error {
	if asJSON {
		return r.JSON(result)
	}
	return fillTmpl.Execute(r.writer, result)
}

func (r *Reporter) Line(s string) error {
	_, err := fmt.Fprintln(r.writer, s)
	return err
}

func (r *Reporter) JSON(v any) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
