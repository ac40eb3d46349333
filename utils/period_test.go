package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/payslip-filler/dto"
)

func TestExtractPeriod(t *testing.T) {
	tests := []struct {
		line string
		want dto.Period
	}{
		{"Загальна винагорода за 03.2024 10 000,00", dto.Period{Year: 2024, Month: time.March}},
		{"Загальна винагорода за 12.1999", dto.Period{Year: 1999, Month: time.December}},
		{"Загальна винагорода за\t01.2025\t1,00", dto.Period{Year: 2025, Month: time.January}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ExtractPeriod(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPeriodErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{"month 13", "Загальна винагорода за 13.2024 1,00", "invalid month"},
		{"month 00", "Загальна винагорода за 00.2024 1,00", "invalid month"},
		{"year 0000", "Загальна винагорода за 05.0000 1,00", "invalid year"},
		{"no token", "Загальна винагорода за березень 1,00", "no MM.YYYY period"},
		{"single digit month", "Загальна винагорода за 3.2024 1,00", "no MM.YYYY period"},
		{"two digit year", "Загальна винагорода за 03.24 1,00", "no MM.YYYY period"},
		{"glued to text", "Загальна винагорода за03.2024 1,00", "no MM.YYYY period"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractPeriod(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, dto.ErrParse)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestPeriodLastDay(t *testing.T) {
	tests := []struct {
		period dto.Period
		want   int
	}{
		{dto.Period{Year: 2024, Month: time.March}, 31},
		{dto.Period{Year: 2024, Month: time.April}, 30},
		{dto.Period{Year: 2024, Month: time.February}, 29},
		{dto.Period{Year: 2023, Month: time.February}, 28},
		{dto.Period{Year: 1900, Month: time.February}, 28},
		{dto.Period{Year: 2000, Month: time.February}, 29},
		{dto.Period{Year: 2024, Month: time.December}, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.period.LastDay(), tt.period.String())
	}
}
