package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFProcessor reads a PDF page by page.
type PDFProcessor interface {
	// PageTexts returns the embedded text layer, one entry per page.
	PageTexts(pdfPath string) ([]string, error)
	// ExtractPageImages writes the images of every page below outDir and
	// returns their paths grouped by page, in page order.
	ExtractPageImages(pdfPath, outDir string) ([][]string, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) PageTexts(pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)

	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read text of page %d: %w", pageIndex, err)
		}

		var sb strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
		pages = append(pages, sb.String())
	}

	return pages, nil
}

func (p *pdfProcessor) ExtractPageImages(pdfPath, outDir string) ([][]string, error) {
	conf := model.NewDefaultConfiguration()

	count, err := api.PageCountFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	images := make([][]string, count)
	for pageNr := 1; pageNr <= count; pageNr++ {
		pageDir := filepath.Join(outDir, fmt.Sprintf("page-%03d", pageNr))
		if err := os.MkdirAll(pageDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create image dir: %w", err)
		}

		if err := api.ExtractImagesFile(pdfPath, pageDir, []string{strconv.Itoa(pageNr)}, conf); err != nil {
			return nil, fmt.Errorf("failed to extract images of page %d: %w", pageNr, err)
		}

		entries, err := os.ReadDir(pageDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read image dir: %w", err)
		}

		var paths []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			paths = append(paths, filepath.Join(pageDir, entry.Name()))
		}
		sort.Strings(paths)
		images[pageNr-1] = paths
	}

	return images, nil
}
