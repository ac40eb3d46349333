package utils

import (
	"fmt"
	"regexp"

	"github.com/Aashish23092/payslip-filler/dto"
)

// Labels as printed by the accounting export. Each pattern captures the label
// and everything after it up to the end of the line.
var linePatterns = map[dto.FieldKind]*regexp.Regexp{
	dto.FieldMainWage:       regexp.MustCompile(`(?i)основна винагорода, грн[.][^\r\n]*`),
	dto.FieldAdditionalWage: regexp.MustCompile(`(?i)додаткова винагорода, грн[.][^\r\n]*`),
	dto.FieldVacationPay:    regexp.MustCompile(`(?i)оплата щорічної перерви, грн[.][^\r\n]*`),
	dto.FieldTotalWage:      regexp.MustCompile(`(?i)загальна винагорода за [^\r\n]*`),
}

// ExtractLine returns the first line fragment of report that starts with the
// label bound to kind.
func ExtractLine(report string, kind dto.FieldKind) (string, error) {
	re, ok := linePatterns[kind]
	if !ok {
		return "", fmt.Errorf("%w: no label defined for field %s", dto.ErrNotFound, kind)
	}
	line := re.FindString(report)
	if line == "" {
		return "", fmt.Errorf("%w: %s line", dto.ErrNotFound, kind)
	}
	return line, nil
}
