package models

import "github.com/Aashish23092/cibil-report-parser/dto"

// Account is one credit facility. Whether it is open is derived from
// DateClosed and never stored.
type Account struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	ReportID            uint     `gorm:"index;not null" json:"report_id"`
	MemberName          *string  `json:"member_name"`
	AccountType         *string  `json:"account_type"`
	Ownership           *string  `json:"ownership"`
	AccountNumberMasked *string  `json:"account_number_masked"`
	CreditLimit         *float64 `json:"credit_limit"`
	HighCredit          *float64 `json:"high_credit"`
	SanctionedAmount    *float64 `json:"sanctioned_amount"`
	CurrentBalance      *float64 `json:"current_balance"`
	CashLimit           *float64 `json:"cash_limit"`
	AmountOverdue       *float64 `json:"amount_overdue"`
	RateOfInterest      *float64 `json:"rate_of_interest"`
	RepaymentTenure     *int     `json:"repayment_tenure"`
	EMIAmount           *float64 `gorm:"column:emi_amount" json:"emi_amount"`
	PaymentFrequency    *string  `json:"payment_frequency"`
	DateOpened          *string  `json:"date_opened"`
	DateClosed          *string  `json:"date_closed"`
	DateLastPayment     *string  `json:"date_last_payment"`
	WrittenOffAmount    float64  `gorm:"not null" json:"written_off_amount"`
	SettlementAmount    float64  `gorm:"not null" json:"settlement_amount"`
	SuitFiledFlag       bool     `gorm:"not null" json:"suit_filed_flag"`

	PaymentHistory []PaymentHistory `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"payment_history"`
}

func (Account) TableName() string { return "accounts" }

func (a Account) IsOpen() bool {
	return dto.IsOpenAccount(a.DateClosed)
}

// PaymentHistory is one month of an account's DPD timeline. Months are
// not unique per account.
type PaymentHistory struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"index;not null" json:"account_id"`
	Month     string `gorm:"size:7;index" json:"month"`
	DPD       *int   `gorm:"column:dpd" json:"dpd"`
	Status    string `json:"status"`
}

func (PaymentHistory) TableName() string { return "payment_history" }
