package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aashish23092/cibil-report-parser/config"
	"github.com/otiai10/gosseract/v2"
)

type TesseractClient struct {
	tessdataPrefix string
	languages      []string
}

// NewTesseractClient builds a client from explicit OCR settings. Nothing is
// read from or written to the process environment.
func NewTesseractClient(cfg config.OCRConfig) *TesseractClient {
	languages := cfg.Languages
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractClient{
		tessdataPrefix: cfg.TessdataPrefix,
		languages:      languages,
	}
}

func (tc *TesseractClient) Name() string {
	return "tesseract"
}

// ExtractText runs Tesseract over one page image.
func (tc *TesseractClient) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if tc.tessdataPrefix != "" {
		client.SetTessdataPrefix(tc.tessdataPrefix)
	}

	if err := client.SetLanguage(tc.languages...); err != nil {
		return "", fmt.Errorf("failed to set language %s: %w", strings.Join(tc.languages, "+"), err)
	}

	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}
