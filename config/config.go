package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	DatabasePath       string
	MaxUploadBytes     int64
	ReplaceOnReingest  bool
	LogLevel           string
	CORSAllowedOrigins []string
	OCR                OCRConfig
}

// OCRConfig is handed to the OCR clients explicitly instead of being
// pushed into the process environment.
type OCRConfig struct {
	TessdataPrefix string
	Languages      []string
	PaddleAPIURL   string
	// MinTextChars is the amount of embedded text below which a PDF is
	// treated as scanned and sent through OCR.
	MinTextChars int
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DatabasePath:       getEnv("DB_PATH", "cibil.db"),
		MaxUploadBytes:     getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
		ReplaceOnReingest:  getEnvAsBool("REPLACE_ON_REINGEST", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
		OCR: OCRConfig{
			TessdataPrefix: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
			Languages:      splitAndTrim(getEnv("OCR_LANGUAGES", "eng")),
			PaddleAPIURL:   getEnv("PADDLEOCR_API_URL", ""),
			MinTextChars:   int(getEnvAsInt64("OCR_MIN_TEXT_CHARS", 200)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
