package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/metrics"
	"github.com/Aashish23092/cibil-report-parser/models"
	"github.com/Aashish23092/cibil-report-parser/utils/cibil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReportStore is the persistence the service needs.
type ReportStore interface {
	Save(ctx context.Context, report dto.CreditReport, replaceChildren bool) (uint, error)
	List(ctx context.Context) ([]dto.ReportListItem, error)
	Get(ctx context.Context, id uint) (*models.ReportMetadata, error)
	GetScore(ctx context.Context, id uint) (*models.ScoreSummary, error)
	GetAccounts(ctx context.Context, id uint) ([]models.Account, error)
	GetEnquiries(ctx context.Context, id uint) ([]models.Enquiry, error)
	Delete(ctx context.Context, id uint) error
}

// IngestResult is what one parse-and-store run produced.
type IngestResult struct {
	ReportID uint
	Report   dto.CreditReport
	Quality  dto.ExtractionQuality
}

// AccountsView is the accounts of one report split by status.
type AccountsView struct {
	OpenAccounts   []models.Account    `json:"open_accounts"`
	ClosedAccounts []models.Account    `json:"closed_accounts"`
	Summary        dto.AccountsSummary `json:"summary"`
}

// ReportView is a stored report in the same nine sections a parse returns.
// Absent single sections are null; absent lists are empty.
type ReportView struct {
	ReportMetadata        *models.ReportMetadata        `json:"report_metadata"`
	ScoreSummary          *models.ScoreSummary          `json:"score_summary"`
	PersonalDetails       *models.PersonalDetail        `json:"personal_details"`
	IdentificationDetails []models.IdentificationDetail `json:"identification_details"`
	AddressDetails        []models.AddressDetail        `json:"address_details"`
	ContactDetails        *models.ContactDetail         `json:"contact_details"`
	EmploymentDetails     *models.EmploymentDetail      `json:"employment_details"`
	Accounts              AccountGroups                 `json:"accounts"`
	Enquiries             []models.Enquiry              `json:"enquiries"`
}

type AccountGroups struct {
	OpenAccounts   []models.Account `json:"open_accounts"`
	ClosedAccounts []models.Account `json:"closed_accounts"`
}

type EnquiriesView struct {
	Total     int              `json:"total"`
	Enquiries []models.Enquiry `json:"enquiries"`
}

type ReportService struct {
	extractor         PageExtractor
	store             ReportStore
	replaceOnReingest bool
	logger            *logrus.Logger
	metrics           *metrics.Metrics
}

func NewReportService(
	extractor PageExtractor,
	store ReportStore,
	replaceOnReingest bool,
	logger *logrus.Logger,
	m *metrics.Metrics,
) *ReportService {
	return &ReportService{
		extractor:         extractor,
		store:             store,
		replaceOnReingest: replaceOnReingest,
		logger:            logger,
		metrics:           m,
	}
}

// Parse extracts and parses a report without storing it.
func (s *ReportService) Parse(ctx context.Context, pdfPath string) (dto.CreditReport, dto.ExtractionQuality, error) {
	pages, err := s.extractor.ExtractPages(ctx, pdfPath)
	if err != nil {
		return dto.CreditReport{}, dto.ExtractionQuality{}, fmt.Errorf("failed to extract pages: %w", err)
	}

	report := cibil.ParseReport(pages)
	return report, cibil.AssessQuality(report, len(pages)), nil
}

// Ingest parses the PDF at pdfPath and stores the result.
func (s *ReportService) Ingest(ctx context.Context, pdfPath string) (*IngestResult, error) {
	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{
		"ingestion_id": uuid.NewString(),
		"pdf":          filepath.Base(pdfPath),
	})

	result, err := s.ingest(ctx, pdfPath, log)
	s.metrics.ObserveOutcome(err)
	s.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).Error("ingestion failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"report_id":      result.ReportID,
		"pages":          result.Quality.PageCount,
		"missing_fields": len(result.Quality.MissingFields),
		"duration":       time.Since(start).String(),
	}).Info("ingestion finished")
	return result, nil
}

func (s *ReportService) ingest(ctx context.Context, pdfPath string, log *logrus.Entry) (*IngestResult, error) {
	report, quality, err := s.Parse(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	for _, field := range quality.MissingFields {
		s.metrics.MissingFields.WithLabelValues(field).Inc()
	}
	s.metrics.AccountsParsed.WithLabelValues("open").Add(float64(len(report.Accounts.OpenAccounts)))
	s.metrics.AccountsParsed.WithLabelValues("closed").Add(float64(len(report.Accounts.ClosedAccounts)))

	if len(quality.Issues) > 0 {
		log.WithField("issues", quality.Issues).Warn("report parsed with issues")
	}

	id, err := s.store.Save(ctx, report, s.replaceOnReingest)
	if err != nil {
		return nil, err
	}

	return &IngestResult{ReportID: id, Report: report, Quality: quality}, nil
}

// IngestUpload copies an uploaded PDF to a temp file, ingests it and
// removes the temp file again.
func (s *ReportService) IngestUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*IngestResult, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempPath := filepath.Join(os.TempDir(), "cibil-"+uuid.NewString()+".pdf")
	tempFile, err := os.Create(tempPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	if _, err := io.Copy(tempFile, file); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return s.Ingest(ctx, tempPath)
}

func (s *ReportService) ListReports(ctx context.Context) ([]dto.ReportListItem, error) {
	return s.store.List(ctx)
}

// GetReport loads a stored report and regroups it into the nine sections,
// deriving open and closed accounts at read time.
func (s *ReportService) GetReport(ctx context.Context, id uint) (*ReportView, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ReportView{
		ReportMetadata:        report,
		ScoreSummary:          report.ScoreSummary,
		PersonalDetails:       report.PersonalDetail,
		IdentificationDetails: nonNil(report.IdentificationDetails),
		AddressDetails:        nonNil(report.AddressDetails),
		ContactDetails:        report.ContactDetail,
		EmploymentDetails:     report.EmploymentDetail,
		Accounts:              splitAccounts(report.Accounts),
		Enquiries:             nonNil(report.Enquiries),
	}
	return view, nil
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func splitAccounts(accounts []models.Account) AccountGroups {
	groups := AccountGroups{
		OpenAccounts:   []models.Account{},
		ClosedAccounts: []models.Account{},
	}
	for _, a := range accounts {
		if a.IsOpen() {
			groups.OpenAccounts = append(groups.OpenAccounts, a)
		} else {
			groups.ClosedAccounts = append(groups.ClosedAccounts, a)
		}
	}
	return groups
}

func (s *ReportService) GetScore(ctx context.Context, id uint) (*models.ScoreSummary, error) {
	return s.store.GetScore(ctx, id)
}

// GetAccounts splits the stored accounts of a report into open and closed
// and totals them.
func (s *ReportService) GetAccounts(ctx context.Context, id uint) (*AccountsView, error) {
	accounts, err := s.store.GetAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	groups := splitAccounts(accounts)
	return &AccountsView{
		OpenAccounts:   groups.OpenAccounts,
		ClosedAccounts: groups.ClosedAccounts,
		Summary:        SummarizeAccounts(groups.OpenAccounts, groups.ClosedAccounts),
	}, nil
}

// SummarizeAccounts totals overdue amounts and balances of the open accounts
// and counts accounts, open or closed, with any month past due.
func SummarizeAccounts(open, closed []models.Account) dto.AccountsSummary {
	overdue := decimal.Zero
	balance := decimal.Zero
	for _, a := range open {
		if a.AmountOverdue != nil {
			overdue = overdue.Add(decimal.NewFromFloat(*a.AmountOverdue))
		}
		if a.CurrentBalance != nil {
			balance = balance.Add(decimal.NewFromFloat(*a.CurrentBalance))
		}
	}

	withDPD := 0
	for _, group := range [][]models.Account{open, closed} {
		for _, a := range group {
			if hasDaysPastDue(a.PaymentHistory) {
				withDPD++
			}
		}
	}

	return dto.AccountsSummary{
		TotalOpen:       len(open),
		TotalClosed:     len(closed),
		TotalOverdue:    overdue.InexactFloat64(),
		TotalBalance:    balance.InexactFloat64(),
		AccountsWithDPD: withDPD,
	}
}

func hasDaysPastDue(history []models.PaymentHistory) bool {
	for _, h := range history {
		if h.DPD != nil && *h.DPD > 0 {
			return true
		}
	}
	return false
}

func (s *ReportService) GetEnquiries(ctx context.Context, id uint) (*EnquiriesView, error) {
	enquiries, err := s.store.GetEnquiries(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EnquiriesView{Total: len(enquiries), Enquiries: enquiries}, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}
