package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"testing"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/metrics"
	"github.com/Aashish23092/cibil-report-parser/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportPage = `Control Number : 1,234,567
Date : 5/3/2024
Hello, ASHA MEHTA
Your CIBIL Score is 742
ALL ACCOUNTS
Member Name
ABC Bank
Account Type
Credit Card
Date Closed
-
Jan 2024 STD
Feb 2024 30
`

type fakeExtractor struct {
	pages []string
	err   error
	paths []string
}

func (f *fakeExtractor) ExtractPages(_ context.Context, pdfPath string) ([]string, error) {
	f.paths = append(f.paths, pdfPath)
	if _, err := os.Stat(pdfPath); err != nil && f.err == nil {
		return nil, err
	}
	return f.pages, f.err
}

type fakeStore struct {
	saved     []dto.CreditReport
	replace   []bool
	saveErr   error
	accounts  []models.Account
	enquiries []models.Enquiry
	report    *models.ReportMetadata
	deleted   []uint
}

func (f *fakeStore) Save(_ context.Context, report dto.CreditReport, replaceChildren bool) (uint, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, report)
	f.replace = append(f.replace, replaceChildren)
	return uint(len(f.saved)), nil
}

func (f *fakeStore) List(context.Context) ([]dto.ReportListItem, error) {
	return []dto.ReportListItem{{ID: 1}}, nil
}

func (f *fakeStore) Get(_ context.Context, id uint) (*models.ReportMetadata, error) {
	if f.report != nil {
		return f.report, nil
	}
	return &models.ReportMetadata{ID: id}, nil
}

func (f *fakeStore) GetScore(_ context.Context, id uint) (*models.ScoreSummary, error) {
	return nil, dto.ErrReportNotFound
}

func (f *fakeStore) GetAccounts(context.Context, uint) ([]models.Account, error) {
	if len(f.accounts) == 0 {
		return nil, dto.ErrReportNotFound
	}
	return f.accounts, nil
}

func (f *fakeStore) GetEnquiries(context.Context, uint) ([]models.Enquiry, error) {
	return f.enquiries, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func writePDF(t *testing.T) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "*.pdf")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newService(extractor PageExtractor, store ReportStore) (*ReportService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	return NewReportService(extractor, store, true, testLogger(), m), m
}

func TestIngest(t *testing.T) {
	store := &fakeStore{}
	svc, m := newService(&fakeExtractor{pages: []string{reportPage}}, store)

	result, err := svc.Ingest(context.Background(), writePDF(t))

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ReportID)
	assert.Equal(t, "1234567", *result.Report.ReportMetadata.ControlNumber)
	assert.Equal(t, "2024-03-05", *result.Report.ReportMetadata.ReportDate)
	assert.Equal(t, 742, *result.Report.ScoreSummary.CibilScore)
	require.Len(t, result.Report.Accounts.OpenAccounts, 1)
	assert.Equal(t, 1, result.Quality.PageCount)
	assert.Contains(t, result.Quality.MissingFields, "personal_details.gender")

	require.Len(t, store.saved, 1)
	assert.True(t, store.replace[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ingestions.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AccountsParsed.WithLabelValues("open")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MissingFields.WithLabelValues("personal_details.gender")))
}

func TestIngestExtractionFailure(t *testing.T) {
	store := &fakeStore{}
	svc, m := newService(&fakeExtractor{err: dto.ErrNoPageText}, store)

	_, err := svc.Ingest(context.Background(), "missing.pdf")

	assert.ErrorIs(t, err, dto.ErrNoPageText)
	assert.Empty(t, store.saved)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Ingestions.WithLabelValues("failed")))
}

func TestIngestStoreFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("database is locked")}
	svc, _ := newService(&fakeExtractor{pages: []string{reportPage}}, store)

	_, err := svc.Ingest(context.Background(), writePDF(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestIngestUploadRemovesTempFile(t *testing.T) {
	extractor := &fakeExtractor{pages: []string{reportPage}}
	svc, _ := newService(extractor, &fakeStore{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "report.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	defer form.RemoveAll()

	result, err := svc.IngestUpload(context.Background(), form.File["file"][0])

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ReportID)
	require.Len(t, extractor.paths, 1)
	assert.Contains(t, extractor.paths[0], "cibil-")
	_, statErr := os.Stat(extractor.paths[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestGetAccountsSplitsAndSummarizes(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }
	closed := "2021-02-15"

	store := &fakeStore{accounts: []models.Account{
		{ID: 1, AmountOverdue: f(1500.10), CurrentBalance: f(45250.20), PaymentHistory: []models.PaymentHistory{{DPD: i(0)}, {DPD: nil}}},
		{ID: 2, AmountOverdue: nil, CurrentBalance: f(0.10), PaymentHistory: []models.PaymentHistory{{DPD: i(30)}}},
		{ID: 3, DateClosed: &closed, AmountOverdue: f(999), CurrentBalance: f(999), PaymentHistory: []models.PaymentHistory{{DPD: i(90)}}},
	}}
	svc, _ := newService(&fakeExtractor{}, store)

	view, err := svc.GetAccounts(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, view.OpenAccounts, 2)
	assert.Len(t, view.ClosedAccounts, 1)
	assert.Equal(t, dto.AccountsSummary{
		TotalOpen:       2,
		TotalClosed:     1,
		TotalOverdue:    1500.10,
		TotalBalance:    45250.30,
		AccountsWithDPD: 2,
	}, view.Summary)
}

func TestGetAccountsNotFound(t *testing.T) {
	svc, _ := newService(&fakeExtractor{}, &fakeStore{})

	_, err := svc.GetAccounts(context.Background(), 7)

	assert.ErrorIs(t, err, dto.ErrReportNotFound)
}

func TestGetEnquiries(t *testing.T) {
	store := &fakeStore{enquiries: []models.Enquiry{{ID: 1}, {ID: 2}}}
	svc, _ := newService(&fakeExtractor{}, store)

	view, err := svc.GetEnquiries(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 2, view.Total)
}

func TestSummarizeAccountsEmpty(t *testing.T) {
	assert.Equal(t, dto.AccountsSummary{}, SummarizeAccounts(nil, nil))
}

func TestGetReportGroupsSections(t *testing.T) {
	control := "1234567"
	closed := "2021-02-15"
	score := 742
	store := &fakeStore{report: &models.ReportMetadata{
		ID:            7,
		ControlNumber: &control,
		ReportVersion: "1.0",
		ScoreSummary:  &models.ScoreSummary{ReportID: 7, CibilScore: &score},
		Accounts: []models.Account{
			{ID: 1, ReportID: 7},
			{ID: 2, ReportID: 7, DateClosed: &closed},
			{ID: 3, ReportID: 7},
		},
	}}
	svc, _ := newService(&fakeExtractor{}, store)

	view, err := svc.GetReport(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, uint(7), view.ReportMetadata.ID)
	assert.Equal(t, 742, *view.ScoreSummary.CibilScore)
	assert.Nil(t, view.PersonalDetails)
	assert.Len(t, view.Accounts.OpenAccounts, 2)
	require.Len(t, view.Accounts.ClosedAccounts, 1)
	assert.Equal(t, uint(2), view.Accounts.ClosedAccounts[0].ID)

	data, err := json.Marshal(view)
	require.NoError(t, err)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Len(t, body, 9)
	assert.JSONEq(t, "[]", string(body["enquiries"]))
	assert.JSONEq(t, "[]", string(body["identification_details"]))
	assert.JSONEq(t, "null", string(body["employment_details"]))

	var meta map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["report_metadata"], &meta))
	assert.JSONEq(t, `"1234567"`, string(meta["control_number"]))
	assert.NotContains(t, meta, "accounts")
	assert.NotContains(t, meta, "score_summary")
}

func TestGetReportNotFound(t *testing.T) {
	svc, _ := newService(&fakeExtractor{}, &notFoundStore{})

	_, err := svc.GetReport(context.Background(), 9)

	assert.ErrorIs(t, err, dto.ErrReportNotFound)
}

type notFoundStore struct{ fakeStore }

func (notFoundStore) Get(context.Context, uint) (*models.ReportMetadata, error) {
	return nil, dto.ErrReportNotFound
}
