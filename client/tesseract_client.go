package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/payslip-filler/config"
)

const defaultLanguages = "ukr+eng"

// TesseractClient runs OCR through one engine instance, created on first
// use and shared by all calls until Close.
type TesseractClient struct {
	dataPath  string
	languages []string
	logger    zerolog.Logger

	mu     sync.Mutex
	engine *gosseract.Client
}

func NewTesseractClient(cfg config.TesseractConfig, logger zerolog.Logger) *TesseractClient {
	langs := cfg.Languages
	if strings.TrimSpace(langs) == "" {
		langs = defaultLanguages
	}
	return &TesseractClient{
		dataPath:  cfg.DataPath,
		languages: strings.Split(langs, "+"),
		logger:    logger.With().Str("component", "tesseract").Logger(),
	}
}

// ExtractText runs OCR on an image file.
func (tc *TesseractClient) ExtractText(ctx context.Context, filePath string) (string, error) {
	text, conf, err := tc.run(ctx, func(c *gosseract.Client) error {
		return c.SetImage(filePath)
	})
	if err != nil {
		return "", err
	}
	tc.logger.Debug().Str("file", filePath).Float64("confidence", conf).Msg("OCR finished")
	return text, nil
}

// ExtractTextFromBytes runs OCR on an encoded image held in memory.
func (tc *TesseractClient) ExtractTextFromBytes(ctx context.Context, data []byte) (string, error) {
	text, conf, err := tc.run(ctx, func(c *gosseract.Client) error {
		return c.SetImageFromBytes(data)
	})
	if err != nil {
		return "", err
	}
	tc.logger.Debug().Int("bytes", len(data)).Float64("confidence", conf).Msg("OCR finished")
	return text, nil
}

// run returns the recognized text and the mean word confidence.
func (tc *TesseractClient) run(ctx context.Context, setImage func(*gosseract.Client) error) (string, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	client, err := tc.acquire()
	if err != nil {
		return "", 0, err
	}
	if err := setImage(client); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return text, 0, nil
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return text, total / float64(len(boxes)), nil
}

// acquire returns the shared engine, creating it on first use. Callers hold mu.
func (tc *TesseractClient) acquire() (*gosseract.Client, error) {
	if tc.engine != nil {
		return tc.engine, nil
	}

	client := gosseract.NewClient()
	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage(tc.languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	tc.engine = client
	return client, nil
}

// Close releases the engine. The client stays usable and starts a new
// engine on the next call.
func (tc *TesseractClient) Close() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.engine == nil {
		return
	}
	if err := tc.engine.Close(); err != nil {
		tc.logger.Warn().Err(err).Msg("Failed to close tesseract engine")
	}
	tc.engine = nil
	tc.logger.Debug().Msg("Tesseract engine closed")
}
