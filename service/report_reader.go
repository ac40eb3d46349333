package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Aashish23092/payslip-filler/config"
	"github.com/Aashish23092/payslip-filler/dto"
)

// OCR recognizes text in scanned reports.
type OCR interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
	ExtractTextFromBytes(ctx context.Context, data []byte) (string, error)
}

// ReportReader turns a report file into plain text.
type ReportReader struct {
	pdfProcessor PDFProcessor
	ocr          OCR
	cfg          config.ReportConfig
	logger       zerolog.Logger
}

// NewReportReader builds a reader. A nil ocr disables image reports and the
// scanned-PDF fallback.
func NewReportReader(pdfProcessor PDFProcessor, ocr OCR, cfg config.ReportConfig, logger zerolog.Logger) *ReportReader {
	return &ReportReader{
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
		cfg:          cfg,
		logger:       logger.With().Str("component", "report_reader").Logger(),
	}
}

func isImageExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return true
	}
	return false
}

// Supports reports whether path has a configured report extension.
func (r *ReportReader) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range r.cfg.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (r *ReportReader) ReadReport(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(path))

	switch {
	case ext == ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read report: %w", err)
		}
		return DecodeText(data, r.cfg.Encoding)
	case ext == ".pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read report: %w", err)
		}
		return r.readPDF(ctx, path, data)
	case isImageExt(ext):
		if r.ocr == nil {
			return "", fmt.Errorf("%w: OCR is disabled for %s", dto.ErrUnsupportedFormat, filepath.Base(path))
		}
		text, err := r.ocr.ExtractText(ctx, path)
		if err != nil {
			return "", fmt.Errorf("OCR extraction failed: %w", err)
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: report %q", dto.ErrUnsupportedFormat, filepath.Base(path))
}

func (r *ReportReader) readPDF(ctx context.Context, path string, data []byte) (string, error) {
	text, textErr := r.pdfProcessor.ExtractText(data, r.cfg.Password)
	if textErr != nil {
		r.logger.Warn().Err(textErr).Str("file", path).Msg("PDF text extraction failed")
	}
	if textErr == nil && len(strings.TrimSpace(text)) >= r.cfg.MinTextLength {
		return text, nil
	}
	if r.ocr == nil {
		if textErr != nil {
			return "", textErr
		}
		return text, nil
	}

	r.logger.Info().Str("file", path).Msg("PDF has minimal text, attempting image-based OCR")
	images, err := r.pdfProcessor.ExtractImages(data, r.cfg.Password)
	if err != nil {
		if textErr != nil {
			return "", textErr
		}
		return "", err
	}

	var b strings.Builder
	b.WriteString(text)
	for i, img := range images {
		pageText, err := r.ocr.ExtractTextFromBytes(ctx, img)
		if err != nil {
			return "", fmt.Errorf("OCR of image %d failed: %w", i+1, err)
		}
		b.WriteString("\n")
		b.WriteString(pageText)
	}
	return b.String(), nil
}

// DecodeText decodes a text report. A UTF-8 or UTF-16 byte order mark wins
// over the configured encoding.
func DecodeText(data []byte, encoding string) (string, error) {
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if encoding == config.EncodingWindows1251 {
		fallback = charmap.Windows1251.NewDecoder()
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode report: %w", err)
	}
	return string(out), nil
}
