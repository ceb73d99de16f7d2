// Package models holds the relational schema of a stored credit report.
// Every child table carries report_id; payment_history hangs off accounts.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReportMetadata is the root row of one ingested report. ControlNumber is
// the natural key; SQLite lets several rows share a NULL control number.
// Sections are loaded as associations but serialised through
// service.ReportView, never as part of this row.
type ReportMetadata struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ControlNumber *string   `gorm:"uniqueIndex" json:"control_number"`
	ReportDate    *string   `json:"report_date"`
	ReportVersion string    `json:"report_version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	ScoreSummary          *ScoreSummary          `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	PersonalDetail        *PersonalDetail        `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	IdentificationDetails []IdentificationDetail `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	AddressDetails        []AddressDetail        `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	ContactDetail         *ContactDetail         `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	EmploymentDetail      *EmploymentDetail      `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	Accounts              []Account              `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
	Enquiries             []Enquiry              `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ReportMetadata) TableName() string { return "report_metadata" }

type ScoreSummary struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ReportID      uint    `gorm:"index;not null" json:"report_id"`
	CibilScore    *int    `json:"cibil_score"`
	ScoreDate     *string `json:"score_date"`
	ScoreRangeMin int     `json:"score_range_min"`
	ScoreRangeMax int     `json:"score_range_max"`
}

func (ScoreSummary) TableName() string { return "score_summary" }

type PersonalDetail struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	ReportID    uint    `gorm:"index;not null" json:"report_id"`
	FullName    *string `json:"full_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

func (PersonalDetail) TableName() string { return "personal_details" }

type IdentificationDetail struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ReportID   uint    `gorm:"index;not null" json:"report_id"`
	IDType     string  `gorm:"column:id_type" json:"id_type"`
	IDNumber   *string `gorm:"column:id_number" json:"id_number"`
	IssueDate  *string `json:"issue_date"`
	ExpiryDate *string `json:"expiry_date"`
}

func (IdentificationDetail) TableName() string { return "identification_details" }

type AddressDetail struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ReportID     uint    `gorm:"index;not null" json:"report_id"`
	AddressType  string  `json:"address_type"`
	Address      string  `json:"address"`
	Category     *string `json:"category"`
	DateReported *string `json:"date_reported"`
}

func (AddressDetail) TableName() string { return "address_details" }

// ContactDetail keeps phone numbers and e-mails as JSON arrays.
type ContactDetail struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ReportID     uint           `gorm:"index;not null" json:"report_id"`
	PhoneNumbers datatypes.JSON `json:"phone_numbers"`
	Emails       datatypes.JSON `json:"emails"`
}

func (ContactDetail) TableName() string { return "contact_details" }

type EmploymentDetail struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ReportID    uint     `gorm:"index;not null" json:"report_id"`
	AccountType *string  `json:"account_type"`
	Occupation  *string  `json:"occupation"`
	Income      *float64 `json:"income"`
	IncomeType  *string  `json:"income_type"`
	NetGross    *string  `json:"net_gross"`
}

func (EmploymentDetail) TableName() string { return "employment_details" }

type Enquiry struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ReportID      uint    `gorm:"index;not null" json:"report_id"`
	MemberName    string  `json:"member_name"`
	EnquiryDate   *string `gorm:"index" json:"enquiry_date"`
	EnquiryAmount *int64  `json:"enquiry_amount"`
	EnquiryType   string  `json:"enquiry_type"`
}

func (Enquiry) TableName() string { return "enquiries" }

// All lists every table in creation order.
func All() []interface{} {
	return []interface{}{
		&ReportMetadata{},
		&ScoreSummary{},
		&PersonalDetail{},
		&IdentificationDetail{},
		&AddressDetail{},
		&ContactDetail{},
		&EmploymentDetail{},
		&Account{},
		&PaymentHistory{},
		&Enquiry{},
	}
}
