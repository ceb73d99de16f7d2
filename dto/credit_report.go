package dto

// CreditReport is the structured result of parsing one CIBIL report.
// It always carries exactly nine sections; every leaf is independently nullable.
type CreditReport struct {
	ReportMetadata        ReportMetadata           `json:"report_metadata"`
	ScoreSummary          ScoreSummary             `json:"score_summary"`
	PersonalDetails       PersonalDetails          `json:"personal_details"`
	IdentificationDetails []IdentificationDocument `json:"identification_details"`
	AddressDetails        []Address                `json:"address_details"`
	ContactDetails        ContactDetails           `json:"contact_details"`
	EmploymentDetails     EmploymentDetails        `json:"employment_details"`
	Accounts              Accounts                 `json:"accounts"`
	Enquiries             []Enquiry                `json:"enquiries"`
}

type ReportMetadata struct {
	ControlNumber *string `json:"control_number"`
	ReportDate    *string `json:"report_date"`
	ReportVersion string  `json:"report_version"`
}

type ScoreSummary struct {
	CibilScore    *int    `json:"cibil_score"`
	ScoreDate     *string `json:"score_date"`
	ScoreRangeMin int     `json:"score_range_min"`
	ScoreRangeMax int     `json:"score_range_max"`
}

type PersonalDetails struct {
	FullName    *string `json:"full_name"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

type IdentificationDocument struct {
	IDType     string  `json:"id_type"`
	IDNumber   *string `json:"id_number"`
	IssueDate  *string `json:"issue_date"`
	ExpiryDate *string `json:"expiry_date"`
}

type Address struct {
	AddressType  string  `json:"address_type"`
	Address      string  `json:"address"`
	Category     *string `json:"category"`
	DateReported *string `json:"date_reported"`
}

type ContactDetails struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
}

type EmploymentDetails struct {
	AccountType *string  `json:"account_type"`
	Occupation  *string  `json:"occupation"`
	Income      *float64 `json:"income"`
	IncomeType  *string  `json:"income_type"`
	NetGross    *string  `json:"net_gross"`
}

type Accounts struct {
	OpenAccounts   []Account `json:"open_accounts"`
	ClosedAccounts []Account `json:"closed_accounts"`
}

// All returns open accounts followed by closed ones.
func (a Accounts) All() []Account {
	all := make([]Account, 0, len(a.OpenAccounts)+len(a.ClosedAccounts))
	all = append(all, a.OpenAccounts...)
	return append(all, a.ClosedAccounts...)
}

type Account struct {
	MemberName          *string               `json:"member_name"`
	AccountType         *string               `json:"account_type"`
	Ownership           *string               `json:"ownership"`
	AccountNumberMasked *string               `json:"account_number_masked"`
	AccountDetails      AccountDetails        `json:"account_details"`
	PaymentHistory      []PaymentHistoryEntry `json:"payment_history"`
}

// IsOpen reports whether the account is still open. An account is closed
// exactly when a closing date was reported.
func (a Account) IsOpen() bool {
	return IsOpenAccount(a.AccountDetails.DateClosed)
}

// IsOpenAccount is the single open/closed rule, shared by the parser and by
// anything that re-derives the classification from stored rows.
func IsOpenAccount(dateClosed *string) bool {
	return dateClosed == nil
}

type AccountDetails struct {
	CreditLimit      *float64 `json:"credit_limit"`
	HighCredit       *float64 `json:"high_credit"`
	SanctionedAmount *float64 `json:"sanctioned_amount"`
	CurrentBalance   *float64 `json:"current_balance"`
	CashLimit        *float64 `json:"cash_limit"`
	AmountOverdue    *float64 `json:"amount_overdue"`
	RateOfInterest   *float64 `json:"rate_of_interest"`
	RepaymentTenure  *int     `json:"repayment_tenure"`
	EMIAmount        *float64 `json:"emi_amount"`
	PaymentFrequency *string  `json:"payment_frequency"`
	DateOpened       *string  `json:"date_opened"`
	DateClosed       *string  `json:"date_closed"`
	DateLastPayment  *string  `json:"date_last_payment"`
	WrittenOffAmount float64  `json:"written_off_amount"`
	SettlementAmount float64  `json:"settlement_amount"`
	SuitFiledFlag    bool     `json:"suit_filed_flag"`
}

// PaymentHistoryEntry is one month of the delinquency timeline.
// DPD is nil when the bureau withheld the value (XXX) or reported a
// status without a day count (SMA); Status keeps the raw token.
type PaymentHistoryEntry struct {
	Month  string `json:"month"`
	DPD    *int   `json:"dpd"`
	Status string `json:"status,omitempty"`
}

type Enquiry struct {
	MemberName    string  `json:"member_name"`
	EnquiryDate   *string `json:"enquiry_date"`
	EnquiryAmount *int64  `json:"enquiry_amount"`
	EnquiryType   string  `json:"enquiry_type"`
}

// ExtractionQuality makes best-effort degradation visible to callers.
// It is reported next to the report, never persisted.
type ExtractionQuality struct {
	PageCount     int      `json:"page_count"`
	MissingFields []string `json:"missing_fields"`
	Issues        []string `json:"issues"`
}
