package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Aashish23092/cibil-report-parser/config"
	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/metrics"
	"github.com/Aashish23092/cibil-report-parser/repository"
	"github.com/Aashish23092/cibil-report-parser/service"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.LoadConfig()

	pdfPath := flag.String("pdf", "", "Path to the CIBIL PDF (required)")
	dbPath := flag.String("db", cfg.DatabasePath, "SQLite database path")
	jsonOut := flag.String("json-out", "cibil_output.json", "Where to write the parsed report as JSON")
	tessdata := flag.String("tessdata", cfg.OCR.TessdataPrefix, "Tesseract tessdata directory")
	replace := flag.Bool("replace", cfg.ReplaceOnReingest, "Replace child rows when the control number is already stored")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Fprintln(os.Stderr, "--pdf is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, *pdfPath, *dbPath, *jsonOut, *tessdata, *replace); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, pdfPath, dbPath, jsonOut, tessdata string, replace bool) error {
	logger := config.NewLogger(cfg.LogLevel)
	ocrCfg := cfg.OCR
	ocrCfg.TessdataPrefix = tessdata

	db, err := repository.OpenDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repository.CloseDatabase(db)

	m := metrics.New(prometheus.NewRegistry())
	extractor := service.NewPageExtractor(service.NewPDFProcessor(), service.DefaultOCREngines(ocrCfg), ocrCfg.MinTextChars, logger, m)
	svc := service.NewReportService(extractor, repository.NewReportRepository(db, logger), replace, logger, m)

	result, err := svc.Ingest(context.Background(), pdfPath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", pdfPath, err)
	}

	if err := writeJSON(jsonOut, result.Report); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonOut, err)
	}
	fmt.Printf("JSON saved -> %s\n", jsonOut)
	fmt.Printf("DB saved   -> %s (report_id=%d)\n", dbPath, result.ReportID)

	printSummary(os.Stdout, result.Report, result.Quality)
	return nil
}

func writeJSON(path string, report dto.CreditReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printSummary(w io.Writer, report dto.CreditReport, quality dto.ExtractionQuality) {
	historyEntries := 0
	for _, a := range report.Accounts.All() {
		historyEntries += len(a.PaymentHistory)
	}

	fmt.Fprintln(w, "\nExtraction Summary:")
	fmt.Fprintf(w, "    Score       : %s\n", intOrNone(report.ScoreSummary.CibilScore))
	fmt.Fprintf(w, "    Name        : %s\n", stringOrNone(report.PersonalDetails.FullName))
	fmt.Fprintf(w, "    Open accts  : %d\n", len(report.Accounts.OpenAccounts))
	fmt.Fprintf(w, "    Closed accts: %d\n", len(report.Accounts.ClosedAccounts))
	fmt.Fprintf(w, "    Enquiries   : %d\n", len(report.Enquiries))
	fmt.Fprintf(w, "    Pay. history: %d month-entries\n", historyEntries)
	if len(quality.MissingFields) > 0 {
		fmt.Fprintf(w, "    Missing     : %v\n", quality.MissingFields)
	}
	if len(quality.Issues) > 0 {
		fmt.Fprintf(w, "    Issues      : %v\n", quality.Issues)
	}
}

func intOrNone(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(*v)
}

func stringOrNone(v *string) string {
	if v == nil {
		return "None"
	}
	return *v
}
