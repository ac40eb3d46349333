package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FieldKind names a labelled field of the payroll report.
type FieldKind int

const (
	FieldMainWage FieldKind = iota
	FieldAdditionalWage
	FieldVacationPay
	FieldTotalWage
	// FieldPeriod is only used to name the offending field of a date failure.
	FieldPeriod
)

func (k FieldKind) String() string {
	switch k {
	case FieldMainWage:
		return "main"
	case FieldAdditionalWage:
		return "additional"
	case FieldVacationPay:
		return "vacation"
	case FieldTotalWage:
		return "total"
	case FieldPeriod:
		return "period"
	default:
		return fmt.Sprintf("field(%d)", int(k))
	}
}

// Period is the payroll month a report covers.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// LastDay returns the last calendar day of the period's month.
func (p Period) LastDay() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p Period) String() string {
	return fmt.Sprintf("%02d.%04d", int(p.Month), p.Year)
}

// PayrollFacts is everything the placeholder builder needs from one report.
// Amounts are non-negative with at most two fractional digits.
type PayrollFacts struct {
	Period     Period          `json:"period"`
	Total      decimal.Decimal `json:"total"`
	Main       decimal.Decimal `json:"main"`
	Additional decimal.Decimal `json:"additional"`
	Vacation   decimal.Decimal `json:"vacation"`
}

// Amount returns the amount stored for a wage field.
func (f PayrollFacts) Amount(kind FieldKind) (decimal.Decimal, bool) {
	switch kind {
	case FieldTotalWage:
		return f.Total, true
	case FieldMainWage:
		return f.Main, true
	case FieldAdditionalWage:
		return f.Additional, true
	case FieldVacationPay:
		return f.Vacation, true
	}
	return decimal.Zero, false
}

// ReplacementStats counts how often one placeholder was replaced.
type ReplacementStats struct {
	Key         string `json:"key"`
	Occurrences int    `json:"occurrences"`
}

// FillResult describes one completed template fill.
type FillResult struct {
	RunID        string             `json:"run_id"`
	ReportPath   string             `json:"report_path"`
	TemplatePath string             `json:"template_path"`
	OutputPath   string             `json:"output_path"`
	Period       Period             `json:"period"`
	Regions      int                `json:"regions"`
	Replacements int                `json:"replacements"`
	PerKey       []ReplacementStats `json:"per_key"`
	ProcessedAt  string             `json:"processed_at"`
}
