package document

import (
	"context"
	"fmt"
	"io"
	"os"
)

// TextHost treats a plain text template as a single region.
type TextHost struct{}

func (TextHost) Substitute(ctx context.Context, src, dst string, r *Replacer) (Stats, error) {
	stats := newStats(r)
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return stats, fmt.Errorf("failed to read template: %w", err)
	}

	out, counts := r.Apply(string(data))
	stats.add(counts)
	stats.Regions = 1

	err = writeFileAtomic(dst, fileMode(src), func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
	return stats, err
}
