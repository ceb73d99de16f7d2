package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Aashish23092/cibil-report-parser/client"
	"github.com/Aashish23092/cibil-report-parser/config"
	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/metrics"
	"github.com/sirupsen/logrus"
)

// OCREngine reads the text of one page image.
type OCREngine interface {
	Name() string
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// PageExtractor turns a PDF into one text string per page, in page order.
type PageExtractor interface {
	ExtractPages(ctx context.Context, pdfPath string) ([]string, error)
}

type pageExtractor struct {
	pdf          PDFProcessor
	engines      []OCREngine
	minTextChars int
	logger       *logrus.Logger
	metrics      *metrics.Metrics
}

// NewPageExtractor prefers the PDF text layer and falls back to OCR of the
// page images when the layer holds fewer than minTextChars characters.
// Engines are tried in order for every image.
func NewPageExtractor(pdf PDFProcessor, engines []OCREngine, minTextChars int, logger *logrus.Logger, m *metrics.Metrics) PageExtractor {
	return &pageExtractor{
		pdf:          pdf,
		engines:      engines,
		minTextChars: minTextChars,
		logger:       logger,
		metrics:      m,
	}
}

func (e *pageExtractor) ExtractPages(ctx context.Context, pdfPath string) ([]string, error) {
	textPages, err := e.pdf.PageTexts(pdfPath)
	if err != nil {
		e.logger.WithError(err).WithField("pdf", pdfPath).Warn("pdf text layer unreadable, falling back to OCR")
	} else if textLength(textPages) >= e.minTextChars {
		e.metrics.PagesExtracted.WithLabelValues("text_layer").Add(float64(len(textPages)))
		return textPages, nil
	}

	pages, ocrErr := e.ocrPages(ctx, pdfPath)
	if ocrErr == nil && textLength(pages) > 0 {
		e.metrics.PagesExtracted.WithLabelValues("ocr").Add(float64(len(pages)))
		return pages, nil
	}
	if errors.Is(ocrErr, context.Canceled) || errors.Is(ocrErr, context.DeadlineExceeded) {
		return nil, ocrErr
	}

	// A thin text layer still beats nothing.
	if textLength(textPages) > 0 {
		e.logger.WithError(ocrErr).WithField("pdf", pdfPath).Warn("OCR produced no text, using sparse text layer")
		e.metrics.PagesExtracted.WithLabelValues("text_layer").Add(float64(len(textPages)))
		return textPages, nil
	}

	if ocrErr != nil {
		return nil, fmt.Errorf("%w: %w", dto.ErrNoPageText, ocrErr)
	}
	return nil, fmt.Errorf("%s: %w", pdfPath, dto.ErrNoPageText)
}

func (e *pageExtractor) ocrPages(ctx context.Context, pdfPath string) ([]string, error) {
	if len(e.engines) == 0 {
		return nil, fmt.Errorf("no OCR engine configured: %w", dto.ErrNoPageText)
	}

	dir, err := os.MkdirTemp("", "cibil-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	images, err := e.pdf.ExtractPageImages(pdfPath, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to render pages for OCR: %w", err)
	}

	pages := make([]string, len(images))
	for i, pageImages := range images {
		var texts []string
		for _, img := range pageImages {
			text, err := e.ocrImage(ctx, img)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				e.logger.WithError(err).WithFields(logrus.Fields{
					"page":  i + 1,
					"image": img,
				}).Warn("no OCR engine could read page image")
				continue
			}
			texts = append(texts, text)
		}
		pages[i] = strings.Join(texts, "\n")
	}

	return pages, nil
}

// ocrImage returns the first non-blank text any engine produced.
func (e *pageExtractor) ocrImage(ctx context.Context, imagePath string) (string, error) {
	var errs []error
	for _, engine := range e.engines {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := engine.ExtractText(ctx, imagePath)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty text")
		}

		e.metrics.OCRFailures.WithLabelValues(engine.Name()).Inc()
		errs = append(errs, fmt.Errorf("%s: %w", engine.Name(), err))
	}
	return "", errors.Join(errs...)
}

func textLength(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

// DefaultOCREngines returns PaddleOCR (when an API URL is set) followed by
// the local Tesseract engine.
func DefaultOCREngines(cfg config.OCRConfig) []OCREngine {
	var engines []OCREngine
	if paddle := client.NewPaddleClient(cfg); paddle.Enabled() {
		engines = append(engines, paddle)
	}
	return append(engines, client.NewTesseractClient(cfg))
}
