package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReportRepository persists parsed credit reports across the report tables.
type ReportRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewReportRepository(db *gorm.DB, logger *logrus.Logger) *ReportRepository {
	return &ReportRepository{db: db, logger: logger}
}

// Save writes report in one transaction and returns its report id.
//
// A report whose control number is already stored keeps its id and gets a
// fresh report_date. With replaceChildren its previous child rows are
// removed first; without it the new rows are appended next to the old ones.
// A report without a control number is always inserted as a new report.
func (r *ReportRepository) Save(ctx context.Context, report dto.CreditReport, replaceChildren bool) (uint, error) {
	var reportID uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, existed, err := upsertReport(tx, report.ReportMetadata)
		if err != nil {
			return err
		}
		reportID = id

		if existed && replaceChildren {
			if err := deleteChildren(tx, id); err != nil {
				return err
			}
		}

		return insertChildren(tx, flattenReport(id, report))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"report_id":        reportID,
		"accounts":         len(report.Accounts.All()),
		"enquiries":        len(report.Enquiries),
		"replace_children": replaceChildren,
	}).Info("report saved")

	return reportID, nil
}

func upsertReport(tx *gorm.DB, meta dto.ReportMetadata) (uint, bool, error) {
	if meta.ControlNumber != nil {
		var existing models.ReportMetadata
		err := tx.Where("control_number = ?", *meta.ControlNumber).Take(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"report_date": meta.ReportDate,
				"updated_at":  time.Now(),
			}).Error; err != nil {
				return 0, false, fmt.Errorf("update report_metadata: %w", err)
			}
			return existing.ID, true, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return 0, false, fmt.Errorf("lookup report_metadata: %w", err)
		}
	}

	row := models.ReportMetadata{
		ControlNumber: meta.ControlNumber,
		ReportDate:    meta.ReportDate,
		ReportVersion: meta.ReportVersion,
	}
	if err := tx.Create(&row).Error; err != nil {
		return 0, false, fmt.Errorf("insert report_metadata: %w", err)
	}
	return row.ID, false, nil
}

func insertChildren(tx *gorm.DB, rows reportRows) error {
	if err := tx.Create(&rows.score).Error; err != nil {
		return fmt.Errorf("insert score_summary: %w", err)
	}
	if err := tx.Create(&rows.personal).Error; err != nil {
		return fmt.Errorf("insert personal_details: %w", err)
	}
	if len(rows.identifications) > 0 {
		if err := tx.Create(&rows.identifications).Error; err != nil {
			return fmt.Errorf("insert identification_details: %w", err)
		}
	}
	if len(rows.addresses) > 0 {
		if err := tx.Create(&rows.addresses).Error; err != nil {
			return fmt.Errorf("insert address_details: %w", err)
		}
	}
	if err := tx.Create(&rows.contact).Error; err != nil {
		return fmt.Errorf("insert contact_details: %w", err)
	}
	if err := tx.Create(&rows.employment).Error; err != nil {
		return fmt.Errorf("insert employment_details: %w", err)
	}
	// One account at a time so each payment history row gets its account id.
	for i := range rows.accounts {
		if err := tx.Create(&rows.accounts[i]).Error; err != nil {
			return fmt.Errorf("insert accounts: %w", err)
		}
	}
	if len(rows.enquiries) > 0 {
		if err := tx.Create(&rows.enquiries).Error; err != nil {
			return fmt.Errorf("insert enquiries: %w", err)
		}
	}
	return nil
}

// deleteChildren removes every child row of a report, payment history first.
func deleteChildren(tx *gorm.DB, reportID uint) error {
	var accountIDs []uint
	if err := tx.Model(&models.Account{}).Where("report_id = ?", reportID).Pluck("id", &accountIDs).Error; err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accountIDs) > 0 {
		if err := tx.Where("account_id IN ?", accountIDs).Delete(&models.PaymentHistory{}).Error; err != nil {
			return fmt.Errorf("delete payment_history: %w", err)
		}
	}

	for _, table := range []interface{}{
		&models.Account{},
		&models.ScoreSummary{},
		&models.PersonalDetail{},
		&models.IdentificationDetail{},
		&models.AddressDetail{},
		&models.ContactDetail{},
		&models.EmploymentDetail{},
		&models.Enquiry{},
	} {
		if err := tx.Where("report_id = ?", reportID).Delete(table).Error; err != nil {
			return fmt.Errorf("delete children of report %d: %w", reportID, err)
		}
	}
	return nil
}

// List returns every stored report with its score and holder name, newest first.
func (r *ReportRepository) List(ctx context.Context) ([]dto.ReportListItem, error) {
	items := []dto.ReportListItem{}

	err := r.db.WithContext(ctx).
		Table("report_metadata AS r").
		Select("r.id, r.control_number, r.report_date, r.created_at, r.updated_at, s.cibil_score, p.full_name").
		Joins("LEFT JOIN score_summary s ON s.report_id = r.id").
		Joins("LEFT JOIN personal_details p ON p.report_id = r.id").
		Order("r.created_at DESC, r.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return items, nil
}

// Get loads a report with all of its sections.
func (r *ReportRepository) Get(ctx context.Context, id uint) (*models.ReportMetadata, error) {
	var report models.ReportMetadata

	err := r.db.WithContext(ctx).
		Preload("ScoreSummary").
		Preload("PersonalDetail").
		Preload("IdentificationDetails").
		Preload("AddressDetails").
		Preload("ContactDetail").
		Preload("EmploymentDetail").
		Preload("Accounts", orderByID).
		Preload("Accounts.PaymentHistory", orderByMonth).
		Preload("Enquiries", orderByEnquiryDate).
		First(&report, id).Error
	if err != nil {
		return nil, notFound(err, "report %d", id)
	}
	return &report, nil
}

// GetScore returns the score summary of a report.
func (r *ReportRepository) GetScore(ctx context.Context, id uint) (*models.ScoreSummary, error) {
	var score models.ScoreSummary
	if err := r.db.WithContext(ctx).Where("report_id = ?", id).First(&score).Error; err != nil {
		return nil, notFound(err, "score summary of report %d", id)
	}
	return &score, nil
}

// GetAccounts returns the accounts of a report with their payment history,
// latest month first. A report without accounts is reported as not found.
func (r *ReportRepository) GetAccounts(ctx context.Context, id uint) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.WithContext(ctx).
		Preload("PaymentHistory", orderByMonth).
		Where("report_id = ?", id).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("accounts of report %d: %w", id, dto.ErrReportNotFound)
	}
	return accounts, nil
}

// GetEnquiries returns the enquiries of an existing report, latest first.
func (r *ReportRepository) GetEnquiries(ctx context.Context, id uint) ([]models.Enquiry, error) {
	if err := r.exists(ctx, id); err != nil {
		return nil, err
	}

	enquiries := []models.Enquiry{}
	err := r.db.WithContext(ctx).
		Scopes(orderByEnquiryDate).
		Where("report_id = ?", id).
		Find(&enquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiries: %w", err)
	}
	return enquiries, nil
}

// Delete removes a report and all of its rows in dependency order.
func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.ReportMetadata
		if err := tx.Select("id").First(&report, id).Error; err != nil {
			return notFound(err, "report %d", id)
		}
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.ReportMetadata{}, id).Error
	})
	if err != nil {
		return err
	}

	r.logger.WithField("report_id", id).Info("report deleted")
	return nil
}

func (r *ReportRepository) exists(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReportMetadata{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up report: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("report %d: %w", id, dto.ErrReportNotFound)
	}
	return nil
}

func notFound(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, dto.ErrReportNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func orderByMonth(db *gorm.DB) *gorm.DB {
	return db.Order("month DESC, id")
}

func orderByEnquiryDate(db *gorm.DB) *gorm.DB {
	return db.Order("enquiry_date DESC, id")
}
