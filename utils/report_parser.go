package utils

import (
	"github.com/shopspring/decimal"

	"github.com/Aashish23092/payslip-filler/dto"
)

// ParseReport extracts the payroll facts from the text of a payroll report.
// The first failing field aborts the parse; no partial facts are returned.
func ParseReport(text string) (dto.PayrollFacts, error) {
	totalLine, err := ExtractLine(text, dto.FieldTotalWage)
	if err != nil {
		return dto.PayrollFacts{}, missingField(dto.FieldTotalWage, err)
	}

	period, err := ExtractPeriod(totalLine)
	if err != nil {
		return dto.PayrollFacts{}, missingField(dto.FieldPeriod, err)
	}

	total, err := parseAmount(totalLine, dto.FieldTotalWage)
	if err != nil {
		return dto.PayrollFacts{}, err
	}

	facts := dto.PayrollFacts{Period: period, Total: total}
	for _, field := range []struct {
		kind dto.FieldKind
		dst  *decimal.Decimal
	}{
		{dto.FieldMainWage, &facts.Main},
		{dto.FieldAdditionalWage, &facts.Additional},
		{dto.FieldVacationPay, &facts.Vacation},
	} {
		line, err := ExtractLine(text, field.kind)
		if err != nil {
			return dto.PayrollFacts{}, missingField(field.kind, err)
		}
		amount, err := parseAmount(line, field.kind)
		if err != nil {
			return dto.PayrollFacts{}, err
		}
		*field.dst = amount
	}

	return facts, nil
}

func parseAmount(line string, kind dto.FieldKind) (decimal.Decimal, error) {
	amount, err := ParseMoney(line)
	if err != nil {
		return decimal.Zero, missingField(kind, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, &dto.ReportError{Kind: dto.ErrInvalidAmount, Field: kind}
	}
	return amount, nil
}

func missingField(kind dto.FieldKind, cause error) error {
	return &dto.ReportError{Kind: dto.ErrMissingField, Field: kind, Err: cause}
}
