package document

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/payslip-filler/dto"
)

func testReplacer() *Replacer {
	return NewReplacer(DefaultDelimiter, dto.NewPlaceholderMap(
		dto.Placeholder{Key: "total", Value: "10 000"},
		dto.Placeholder{Key: "total_dec", Value: "00"},
		dto.Placeholder{Key: "month_en", Value: "March"},
		dto.Placeholder{Key: "company", Value: "Smith & <Sons>"},
	))
}

func TestReplacerApply(t *testing.T) {
	r := testReplacer()

	out, counts := r.Apply("Paid @$#%total@$#%,@$#%TOTAL_DEC@$#% UAH; again @$#%Total@$#% in @$#%month_en@$#%")

	assert.Equal(t, "Paid 10 000,00 UAH; again 10 000 in March", out)
	assert.Equal(t, []int{2, 1, 1, 0}, counts)
}

func TestReplacerLiteralValues(t *testing.T) {
	r := NewReplacer("{{", dto.NewPlaceholderMap(dto.Placeholder{Key: "x", Value: "$1 and ${x}"}))

	out, counts := r.Apply("a {{x{{ b")

	assert.Equal(t, "a $1 and ${x} b", out)
	assert.Equal(t, []int{1}, counts)
}

func TestToken(t *testing.T) {
	assert.Equal(t, "@$#%year@$#%", Token(DefaultDelimiter, "year"))
}

func TestTextHost(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(src, []byte("Total: @$#%total@$#%,@$#%total_dec@$#%\n"), 0o600))

	stats, err := TextHost{}.Substitute(context.Background(), src, src, testReplacer())
	require.NoError(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "Total: 10 000,00\n", string(data))
	assert.Equal(t, 1, stats.Regions)
	assert.Equal(t, 2, stats.Total())

	info, err := os.Stat(src)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Amount: @$#%total@$#%</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t xml:space="preserve">Split @$#%to</w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>tal_d</w:t></w:r><w:r><w:t>ec@$#% end</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>For @$#%MONTH_EN@$#% by @$#%company@$#%</w:t></w:r><w:r><w:tab/></w:r></w:p>` +
	`<w:p><w:r><w:t>@$#%to</w:t></w:r></w:p><w:p><w:r><w:t>tal@$#%</w:t></w:r></w:p>` +
	`</w:body></w:document>`

func writeDocx(t *testing.T, path string, parts map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "word/header1.xml", "word/footer1.xml", "word/footnotes.xml", "word/styles.xml"} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func readDocxParts(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	parts := map[string]string{}
	for _, f := range zr.File {
		content, err := readZipFile(f)
		require.NoError(t, err)
		parts[f.Name] = content
	}
	return parts
}

func TestDocxHost(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.docx")
	dst := filepath.Join(dir, "out.docx")

	header := `<w:hdr xmlns:w="x"><w:p><w:r><w:t>Header @$#%total@$#%</w:t></w:r></w:p></w:hdr>`
	footer := `<w:ftr xmlns:w="x"><w:p><w:r><w:t>Footer @$#%month_en@$#%</w:t></w:r></w:p></w:ftr>`
	footnotes := `<w:footnotes xmlns:w="x"><w:footnote><w:p><w:r><w:t>Note @$#%total_dec@$#%</w:t></w:r></w:p></w:footnote></w:footnotes>`
	styles := `<w:styles>@$#%total@$#%</w:styles>`
	writeDocx(t, src, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   docxBody,
		"word/header1.xml":    header,
		"word/footer1.xml":    footer,
		"word/footnotes.xml":  footnotes,
		"word/styles.xml":     styles,
	})

	stats, err := DocxHost{}.Substitute(context.Background(), src, dst, testReplacer())
	require.NoError(t, err)

	parts := readDocxParts(t, dst)
	body := parts["word/document.xml"]

	assert.Contains(t, body, `<w:t xml:space="preserve">Amount: 10 000</w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve">Split 00</w:t>`)
	assert.Contains(t, body, `<w:t xml:space="preserve"> end</w:t>`)
	assert.Contains(t, body, `<w:rPr><w:b/></w:rPr><w:t xml:space="preserve"></w:t>`)
	assert.Contains(t, body, `For March by Smith &amp; &lt;Sons&gt;`)
	assert.Contains(t, body, `<w:tab/>`)
	// tokens never span paragraphs
	assert.Contains(t, body, `<w:t>@$#%to</w:t>`)
	assert.Contains(t, body, `<w:t>tal@$#%</w:t>`)

	assert.Contains(t, parts["word/header1.xml"], "Header 10 000")
	assert.Contains(t, parts["word/footer1.xml"], "Footer March")
	assert.Contains(t, parts["word/footnotes.xml"], "Note 00")
	assert.Equal(t, styles, parts["word/styles.xml"])
	assert.Equal(t, `<Types/>`, parts["[Content_Types].xml"])

	assert.Equal(t, 4, stats.Regions)
	assert.Equal(t, 7, stats.Total())
	assert.Equal(t, []dto.ReplacementStats{
		{Key: "total", Occurrences: 2},
		{Key: "total_dec", Occurrences: 2},
		{Key: "month_en", Occurrences: 2},
		{Key: "company", Occurrences: 1},
	}, stats.PerKey(testReplacer()))

	original := readDocxParts(t, src)
	assert.Equal(t, docxBody, original["word/document.xml"])
}

func TestDocxHostInPlace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.docx")
	writeDocx(t, src, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   docxBody,
	})

	stats, err := DocxHost{}.Substitute(context.Background(), src, src, testReplacer())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Regions)

	parts := readDocxParts(t, src)
	assert.Contains(t, parts["word/document.xml"], "Amount: 10 000")
	assert.NotContains(t, parts["word/document.xml"], "@$#%total@$#%")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDocxHostRejectsNonZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(src, []byte("not a zip"), 0o644))

	_, err := DocxHost{}.Substitute(context.Background(), src, src, testReplacer())
	require.Error(t, err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "not a zip", string(data))
}

func TestIsDocxRegion(t *testing.T) {
	for name, want := range map[string]bool{
		"word/document.xml":            true,
		"word/header2.xml":             true,
		"word/footer.xml":              true,
		"word/footnotes.xml":           true,
		"word/endnotes.xml":            true,
		"word/styles.xml":              false,
		"word/_rels/document.xml.rels": false,
		"docProps/core.xml":            false,
	} {
		assert.Equal(t, want, IsDocxRegion(name), name)
	}
}

func TestXlsxHost(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Total @$#%total@$#%,@$#%total_dec@$#%"))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "untouched"))
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	require.NoError(t, f.SetCellStr("Summary", "C3", "@$#%Month_En@$#%"))
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	stats, err := XlsxHost{}.Substitute(context.Background(), src, src, testReplacer())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Regions)
	assert.Equal(t, 3, stats.Total())

	out, err := excelize.OpenFile(src)
	require.NoError(t, err)
	defer out.Close()

	v, err := out.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Total 10 000,00", v)

	v, err = out.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "untouched", v)

	v, err = out.GetCellValue("Summary", "C3")
	require.NoError(t, err)
	assert.Equal(t, "March", v)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	h, err := r.For("/tmp/Template.DOCX")
	require.NoError(t, err)
	assert.IsType(t, DocxHost{}, h)

	_, err = r.For("template.odt")
	assert.ErrorIs(t, err, dto.ErrUnsupportedFormat)

	require.NoError(t, r.Register("odt", TextHost{}))
	assert.True(t, r.Supports("template.odt"))
	assert.Error(t, r.Register("", TextHost{}))
	assert.Error(t, r.Register(".rtf", nil))

	assert.Equal(t, []string{".docx", ".md", ".odt", ".txt", ".xlsx"}, r.Extensions())
	assert.True(t, strings.HasPrefix(r.Extensions()[0], "."))
}
