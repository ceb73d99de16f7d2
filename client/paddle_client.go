package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Aashish23092/cibil-report-parser/config"
)

// PaddleClient calls a PaddleOCR serving endpoint with one page image per
// request. It is only used when an API URL is configured.
type PaddleClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewPaddleClient(cfg config.OCRConfig) *PaddleClient {
	return &PaddleClient{
		apiURL:     cfg.PaddleAPIURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (p *PaddleClient) Name() string {
	return "paddleocr"
}

// Enabled reports whether an endpoint was configured.
func (p *PaddleClient) Enabled() bool {
	return p.apiURL != ""
}

type paddleRequest struct {
	Images []string `json:"images"`
}

type paddleResponse struct {
	Results [][]struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"results"`
}

// ExtractText sends the image at imagePath to the PaddleOCR API and joins
// the recognised lines.
func (p *PaddleClient) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if !p.Enabled() {
		return "", fmt.Errorf("PaddleOCR API URL is not configured")
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	payload, err := json.Marshal(paddleRequest{
		Images: []string{base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build PaddleOCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result paddleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var sb strings.Builder
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			sb.WriteString(line.Text)
			sb.WriteString("\n")
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from image")
	}
	return text, nil
}
