package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Aashish23092/payslip-filler/dto"
)

var periodRegex = regexp.MustCompile(`(?:^|\s)(\d{2}\.\d{4})(?:\s|$)`)

// ExtractPeriod reads the MM.YYYY token of the total wage line.
func ExtractPeriod(totalLine string) (dto.Period, error) {
	m := periodRegex.FindStringSubmatch(totalLine)
	if len(m) < 2 {
		return dto.Period{}, fmt.Errorf("%w: no MM.YYYY period in %q", dto.ErrParse, snippet(totalLine, 80))
	}
	return parsePeriod(m[1])
}

func parsePeriod(token string) (dto.Period, error) {
	// token is guaranteed to be \d{2}\.\d{4} by the caller
	month, err := strconv.Atoi(token[:2])
	if err != nil {
		return dto.Period{}, fmt.Errorf("%w: invalid month in %q", dto.ErrParse, token)
	}
	year, err := strconv.Atoi(token[3:])
	if err != nil {
		return dto.Period{}, fmt.Errorf("%w: invalid year in %q", dto.ErrParse, token)
	}
	if month < 1 || month > 12 {
		return dto.Period{}, fmt.Errorf("%w: invalid month %02d in %q", dto.ErrParse, month, token)
	}
	if year < 1 {
		return dto.Period{}, fmt.Errorf("%w: invalid year %04d in %q", dto.ErrParse, year, token)
	}
	return dto.Period{Year: year, Month: time.Month(month)}, nil
}
