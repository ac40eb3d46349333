package document

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XlsxHost edits string cells of every worksheet of a workbook.
type XlsxHost struct{}

func (XlsxHost) Substitute(ctx context.Context, src, dst string, r *Replacer) (Stats, error) {
	stats := newStats(r)

	f, err := excelize.OpenFile(src)
	if err != nil {
		return stats, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return stats, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		stats.Regions++

		for ri, row := range rows {
			for ci, value := range row {
				if value == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					return stats, err
				}
				if formula, _ := f.GetCellFormula(sheet, cell); formula != "" {
					continue
				}
				out, counts := r.Apply(value)
				stats.add(counts)
				if out == value {
					continue
				}
				if err := f.SetCellStr(sheet, cell, out); err != nil {
					return stats, fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
				}
			}
		}
	}

	err = writeFileAtomic(dst, fileMode(src), func(w io.Writer) error {
		return f.Write(w)
	})
	return stats, err
}
