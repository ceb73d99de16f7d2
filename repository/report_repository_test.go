package repository

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenDatabase(filepath.Join(t.TempDir(), "cibil.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })
	return db
}

func newTestRepository(t *testing.T) (*ReportRepository, *gorm.DB) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := newTestDB(t)
	return NewReportRepository(db, logger), db
}

func sampleReport() dto.CreditReport {
	amount := int64(500000)

	return dto.CreditReport{
		ReportMetadata: dto.ReportMetadata{
			ControlNumber: strPtr("3456789012"),
			ReportDate:    strPtr("2025-10-14"),
			ReportVersion: "1.0",
		},
		ScoreSummary: dto.ScoreSummary{
			CibilScore:    intPtr(765),
			ScoreDate:     strPtr("2025-10-14"),
			ScoreRangeMin: 300,
			ScoreRangeMax: 900,
		},
		PersonalDetails: dto.PersonalDetails{
			FullName: strPtr("RAHUL KUMAR SHARMA"),
			Gender:   strPtr("Male"),
		},
		IdentificationDetails: []dto.IdentificationDocument{
			{IDType: "PAN", IDNumber: strPtr("ABCPS1234K")},
		},
		AddressDetails: []dto.Address{
			{AddressType: "Residence", Address: "FLAT 12 SUNRISE APARTMENTS PUNE 411001"},
		},
		ContactDetails: dto.ContactDetails{
			PhoneNumbers: []string{"9876543210"},
			Emails:       []string{"rahul.sharma@example.com"},
		},
		EmploymentDetails: dto.EmploymentDetails{
			Occupation: strPtr("Salaried"),
			Income:     floatPtr(1200000),
		},
		Accounts: dto.Accounts{
			OpenAccounts: []dto.Account{{
				MemberName: strPtr("HDFC BANK"),
				AccountDetails: dto.AccountDetails{
					CurrentBalance: floatPtr(45250),
				},
				PaymentHistory: []dto.PaymentHistoryEntry{
					{Month: "2025-08", DPD: intPtr(0), Status: "STD"},
					{Month: "2025-09", DPD: intPtr(30), Status: "30"},
				},
			}},
			ClosedAccounts: []dto.Account{{
				MemberName: strPtr("ICICI BANK"),
				AccountDetails: dto.AccountDetails{
					DateClosed:       strPtr("2021-02-15"),
					WrittenOffAmount: 25000,
				},
				PaymentHistory: []dto.PaymentHistoryEntry{
					{Month: "2021-01", Status: "SMA"},
				},
			}},
		},
		Enquiries: []dto.Enquiry{
			{MemberName: "AXIS BANK", EnquiryDate: strPtr("2025-07-21"), EnquiryType: "Credit Card"},
			{MemberName: "BAJAJ FINANCE LTD", EnquiryDate: strPtr("2025-09-12"), EnquiryAmount: &amount, EnquiryType: "Personal Loan"},
		},
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSaveAndGet(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)
	assert.NotZero(t, id)

	report, err := repo.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "3456789012", *report.ControlNumber)
	require.NotNil(t, report.ScoreSummary)
	assert.Equal(t, 765, *report.ScoreSummary.CibilScore)
	require.NotNil(t, report.PersonalDetail)
	assert.Equal(t, "RAHUL KUMAR SHARMA", *report.PersonalDetail.FullName)
	assert.Len(t, report.IdentificationDetails, 1)
	assert.Len(t, report.AddressDetails, 1)
	require.NotNil(t, report.ContactDetail)
	assert.JSONEq(t, `["9876543210"]`, string(report.ContactDetail.PhoneNumbers))
	assert.Equal(t, 1200000.0, *report.EmploymentDetail.Income)

	require.Len(t, report.Accounts, 2)
	assert.True(t, report.Accounts[0].IsOpen())
	assert.False(t, report.Accounts[1].IsOpen())
	assert.Equal(t, 25000.0, report.Accounts[1].WrittenOffAmount)

	history := report.Accounts[0].PaymentHistory
	require.Len(t, history, 2)
	assert.Equal(t, "2025-09", history[0].Month, "latest month first")
	assert.Equal(t, 30, *history[0].DPD)
	assert.Nil(t, report.Accounts[1].PaymentHistory[0].DPD)
	assert.Equal(t, "SMA", report.Accounts[1].PaymentHistory[0].Status)

	require.Len(t, report.Enquiries, 2)
	assert.Equal(t, "BAJAJ FINANCE LTD", report.Enquiries[0].MemberName)
}

func TestSaveReingestReplacesChildren(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)

	again := sampleReport()
	again.ReportMetadata.ReportDate = strPtr("2025-11-01")
	second, err := repo.Save(ctx, again, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), countRows(t, db, &models.ReportMetadata{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.ScoreSummary{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.Account{}))
	assert.Equal(t, int64(3), countRows(t, db, &models.PaymentHistory{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.Enquiry{}))

	report, err := repo.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-01", *report.ReportDate)
}

func TestSaveReingestAppendModeDoublesChildren(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, sampleReport(), false)
	require.NoError(t, err)
	second, err := repo.Save(ctx, sampleReport(), false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), countRows(t, db, &models.ReportMetadata{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.ScoreSummary{}))
	assert.Equal(t, int64(2), countRows(t, db, &models.IdentificationDetail{}))
	assert.Equal(t, int64(4), countRows(t, db, &models.Account{}))
	assert.Equal(t, int64(6), countRows(t, db, &models.PaymentHistory{}))
	assert.Equal(t, int64(4), countRows(t, db, &models.Enquiry{}))
}

func TestSaveWithoutControlNumberAlwaysInserts(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	report := sampleReport()
	report.ReportMetadata.ControlNumber = nil

	first, err := repo.Save(ctx, report, true)
	require.NoError(t, err)
	second, err := repo.Save(ctx, report, true)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, int64(2), countRows(t, db, &models.ReportMetadata{}))
}

func TestSaveRollsBackOnFailure(t *testing.T) {
	repo, db := newTestRepository(t)

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_enquiries", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "enquiries" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	_, err = repo.Save(context.Background(), sampleReport(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Zero(t, countRows(t, db, &models.ReportMetadata{}))
	assert.Zero(t, countRows(t, db, &models.ScoreSummary{}))
	assert.Zero(t, countRows(t, db, &models.Account{}))
	assert.Zero(t, countRows(t, db, &models.PaymentHistory{}))
}

func TestList(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	id, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)

	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "3456789012", *items[0].ControlNumber)
	assert.Equal(t, 765, *items[0].CibilScore)
	assert.Equal(t, "RAHUL KUMAR SHARMA", *items[0].FullName)
}

func TestNarrowedViews(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)

	score, err := repo.GetScore(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 765, *score.CibilScore)

	accounts, err := repo.GetAccounts(ctx, id)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	enquiries, err := repo.GetEnquiries(ctx, id)
	require.NoError(t, err)
	require.Len(t, enquiries, 2)
	assert.Equal(t, "2025-09-12", *enquiries[0].EnquiryDate)
	assert.Equal(t, "2025-07-21", *enquiries[1].EnquiryDate)
}

func TestNarrowedViewsNotFound(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, 42)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
	_, err = repo.GetScore(ctx, 42)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
	_, err = repo.GetAccounts(ctx, 42)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
	_, err = repo.GetEnquiries(ctx, 42)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
}

func TestGetAccountsEmptyReport(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	report := sampleReport()
	report.Accounts = dto.Accounts{}
	id, err := repo.Save(ctx, report, true)
	require.NoError(t, err)

	_, err = repo.GetAccounts(ctx, id)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
}

func TestDeleteCascades(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	for _, table := range models.All() {
		assert.Zero(t, countRows(t, db, table))
	}

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, dto.ErrReportNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), dto.ErrReportNotFound)
}

func TestDeleteKeepsOtherReports(t *testing.T) {
	repo, db := newTestRepository(t)
	ctx := context.Background()

	keep, err := repo.Save(ctx, sampleReport(), true)
	require.NoError(t, err)

	other := sampleReport()
	other.ReportMetadata.ControlNumber = strPtr("1111111111")
	drop, err := repo.Save(ctx, other, true)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, drop))

	assert.Equal(t, int64(1), countRows(t, db, &models.ReportMetadata{}))
	assert.Equal(t, int64(3), countRows(t, db, &models.PaymentHistory{}))
	_, err = repo.Get(ctx, keep)
	assert.NoError(t, err)
}
