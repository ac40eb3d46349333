package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strings"
)

// DocxHost edits the text regions of an Office Open XML word document.
type DocxHost struct{}

var (
	docxRegionRegex = regexp.MustCompile(`^word/(document|header\d*|footer\d*|footnotes|endnotes)\.xml$`)
	// text run content; self-closing <w:t/> carries no text
	wtRegex = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)
)

const paragraphEnd = "</w:p>"

// IsDocxRegion reports whether a zip entry holds document text.
func IsDocxRegion(name string) bool {
	return docxRegionRegex.MatchString(name)
}

func (DocxHost) Substitute(ctx context.Context, src, dst string, r *Replacer) (Stats, error) {
	stats := newStats(r)

	// read fully so no handle on src is held when dst == src is replaced
	data, err := os.ReadFile(src)
	if err != nil {
		return stats, fmt.Errorf("failed to read docx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return stats, fmt.Errorf("failed to open docx: %w", err)
	}

	err = writeFileAtomic(dst, fileMode(src), func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, f := range zr.File {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !IsDocxRegion(f.Name) {
				if err := zw.Copy(f); err != nil {
					return fmt.Errorf("failed to copy %s: %w", f.Name, err)
				}
				continue
			}

			part, err := readZipFile(f)
			if err != nil {
				return err
			}
			out, counts := substituteParagraphs(part, r)
			stats.add(counts)
			stats.Regions++

			hdr := f.FileHeader
			hdr.CompressedSize64 = 0
			hdr.UncompressedSize64 = 0
			hdr.CRC32 = 0
			fw, err := zw.CreateHeader(&hdr)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Name, err)
			}
			if _, err := io.WriteString(fw, out); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Name, err)
			}
		}
		return zw.Close()
	})
	return stats, err
}

func readZipFile(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Name, err)
	}
	return string(data), nil
}

// substituteParagraphs applies r paragraph by paragraph so a token split over
// several runs of the same paragraph is still replaced.
func substituteParagraphs(part string, r *Replacer) (string, []int) {
	counts := make([]int, r.Len())
	chunks := strings.SplitAfter(part, paragraphEnd)
	for i, chunk := range chunks {
		chunks[i] = substituteRuns(chunk, r, counts)
	}
	return strings.Join(chunks, ""), counts
}

func substituteRuns(chunk string, r *Replacer, counts []int) string {
	locs := wtRegex.FindAllStringSubmatchIndex(chunk, -1)
	if len(locs) == 0 {
		return chunk
	}

	texts := make([]string, len(locs))
	for i, loc := range locs {
		texts[i] = html.UnescapeString(chunk[loc[2]:loc[3]])
	}
	changed := make([]bool, len(locs))

	for ri, rl := range r.rules {
		joined := strings.Join(texts, "")
		matches := rl.pattern.FindAllStringIndex(joined, -1)
		if len(matches) == 0 {
			continue
		}
		counts[ri] += len(matches)

		starts := make([]int, len(texts))
		offset := 0
		for i, t := range texts {
			starts[i] = offset
			offset += len(t)
		}

		// right to left keeps the offsets of earlier matches valid
		for mi := len(matches) - 1; mi >= 0; mi-- {
			a, b := matches[mi][0], matches[mi][1]
			first := runAt(starts, texts, a)
			last := runAt(starts, texts, b-1)

			if first == last {
				t := texts[first]
				texts[first] = t[:a-starts[first]] + rl.value + t[b-starts[first]:]
			} else {
				texts[first] = texts[first][:a-starts[first]] + rl.value
				for k := first + 1; k < last; k++ {
					texts[k] = ""
					changed[k] = true
				}
				texts[last] = texts[last][b-starts[last]:]
				changed[last] = true
			}
			changed[first] = true
		}
	}

	var b strings.Builder
	prev := 0
	for i, loc := range locs {
		b.WriteString(chunk[prev:loc[0]])
		if changed[i] {
			b.WriteString(`<w:t xml:space="preserve">`)
			b.WriteString(escapeXML(texts[i]))
			b.WriteString(`</w:t>`)
		} else {
			b.WriteString(chunk[loc[0]:loc[1]])
		}
		prev = loc[1]
	}
	b.WriteString(chunk[prev:])
	return b.String()
}

// runAt returns the index of the run holding byte pos of the joined text.
func runAt(starts []int, texts []string, pos int) int {
	for i := range texts {
		if pos >= starts[i] && pos < starts[i]+len(texts[i]) {
			return i
		}
	}
	return len(texts) - 1
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
