package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/payslip-filler/dto"
	"github.com/Aashish23092/payslip-filler/utils/numeral"
)

// Placeholder keys
const (
	KeyDateNum = "date_num"
	KeyMonthUA = "month_ua"
	KeyMonthEN = "month_en"
	KeyYear    = "year"

	KeyTotal      = "total"
	KeyTotalMain  = "total_main"
	KeyTotalAdd   = "total_add"
	KeyTotalVac   = "total_vac"
	suffixTextEN  = "_text_en"
	suffixTextUA  = "_text_ua"
	suffixDecimal = "_dec"
)

// PlaceholderCount is the number of keys BuildPlaceholders always produces.
const PlaceholderCount = 4 + 4*4

// Hryvnia is feminine: "одна гривня", "дві гривні".
const currencyGender = numeral.Feminine

var wordsLimit = decimal.NewFromInt(numeral.Limit)

var monthsUA = [12]string{
	"січня", "лютого", "березня", "квітня", "травня", "червня",
	"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
}

// MonthNameUA returns the genitive Ukrainian name of m.
func MonthNameUA(m time.Month) (string, error) {
	if m < time.January || m > time.December {
		return "", fmt.Errorf("invalid month %d", int(m))
	}
	return monthsUA[m-1], nil
}

// Builder turns payroll facts into placeholder values.
type Builder struct {
	// GroupSeparator separates thousands in the display amounts.
	GroupSeparator string
}

// DefaultBuilder groups thousands with a plain space.
var DefaultBuilder = Builder{GroupSeparator: " "}

// BuildPlaceholders is DefaultBuilder.Build.
func BuildPlaceholders(facts dto.PayrollFacts) (dto.PlaceholderMap, error) {
	return DefaultBuilder.Build(facts)
}

// Build maps facts to the fixed set of placeholder keys.
func (b Builder) Build(facts dto.PayrollFacts) (dto.PlaceholderMap, error) {
	monthUA, err := MonthNameUA(facts.Period.Month)
	if err != nil {
		return dto.PlaceholderMap{}, err
	}

	entries := make([]dto.Placeholder, 0, PlaceholderCount)
	entries = append(entries,
		dto.Placeholder{Key: KeyDateNum, Value: strconv.Itoa(facts.Period.LastDay())},
		dto.Placeholder{Key: KeyMonthUA, Value: monthUA},
		dto.Placeholder{Key: KeyMonthEN, Value: facts.Period.Month.String()},
		dto.Placeholder{Key: KeyYear, Value: strconv.Itoa(facts.Period.Year)},
	)

	for _, a := range []struct {
		key    string
		amount decimal.Decimal
	}{
		{KeyTotal, facts.Total},
		{KeyTotalMain, facts.Main},
		{KeyTotalAdd, facts.Additional},
		{KeyTotalVac, facts.Vacation},
	} {
		amountEntries, err := b.amountEntries(a.key, a.amount)
		if err != nil {
			return dto.PlaceholderMap{}, fmt.Errorf("%s: %w", a.key, err)
		}
		entries = append(entries, amountEntries...)
	}

	return dto.NewPlaceholderMap(entries...), nil
}

func (b Builder) amountEntries(key string, amount decimal.Decimal) ([]dto.Placeholder, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", dto.ErrInvalidAmount, amount.String())
	}
	// SplitAmount works on int64; larger amounts would wrap around
	if amount.GreaterThanOrEqual(wordsLimit) {
		return nil, fmt.Errorf("%w: %s", numeral.ErrOutOfRange, amount.String())
	}
	whole, minor := SplitAmount(amount)

	en, err := numeral.ToWords(whole, numeral.English)
	if err != nil {
		return nil, err
	}
	ua, err := numeral.ToWords(whole, numeral.Ukrainian, numeral.WithGender(currencyGender))
	if err != nil {
		return nil, err
	}

	return []dto.Placeholder{
		{Key: key, Value: FormatGrouped(whole, b.GroupSeparator)},
		{Key: key + suffixTextEN, Value: en},
		{Key: key + suffixTextUA, Value: ua},
		{Key: key + suffixDecimal, Value: fmt.Sprintf("%02d", minor)},
	}, nil
}
