package cibil

import (
	"github.com/Aashish23092/cibil-report-parser/dto"
)

// ParseReport runs every section parser over the page texts. The parsers
// share no state; each one picks its own window of pages.
func ParseReport(pages []string) dto.CreditReport {
	return dto.CreditReport{
		ReportMetadata:        ParseReportMetadata(pages),
		ScoreSummary:          ParseScoreSummary(pages),
		PersonalDetails:       ParsePersonalDetails(pages),
		IdentificationDetails: ParseIdentification(pages),
		AddressDetails:        ParseAddresses(pages),
		ContactDetails:        ParseContactDetails(pages),
		EmploymentDetails:     ParseEmploymentDetails(pages),
		Accounts:              ParseAccounts(pages),
		Enquiries:             ParseEnquiries(pages),
	}
}

// AssessQuality lists the headline fields the parser could not find.
// It does not score the report.
func AssessQuality(report dto.CreditReport, pageCount int) dto.ExtractionQuality {
	quality := dto.ExtractionQuality{
		PageCount:     pageCount,
		MissingFields: []string{},
		Issues:        []string{},
	}

	missing := func(field string, absent bool) {
		if absent {
			quality.MissingFields = append(quality.MissingFields, field)
		}
	}
	missing("report_metadata.control_number", report.ReportMetadata.ControlNumber == nil)
	missing("report_metadata.report_date", report.ReportMetadata.ReportDate == nil)
	missing("score_summary.cibil_score", report.ScoreSummary.CibilScore == nil)
	missing("score_summary.score_date", report.ScoreSummary.ScoreDate == nil)
	missing("personal_details.full_name", report.PersonalDetails.FullName == nil)
	missing("personal_details.date_of_birth", report.PersonalDetails.DateOfBirth == nil)
	missing("personal_details.gender", report.PersonalDetails.Gender == nil)
	missing("identification_details", len(report.IdentificationDetails) == 0)
	missing("address_details", len(report.AddressDetails) == 0)

	if report.ReportMetadata.ControlNumber == nil {
		quality.Issues = append(quality.Issues, "no_control_number_reingest_not_deduplicated")
	}

	for _, account := range report.Accounts.All() {
		if len(account.PaymentHistory) == 0 {
			quality.Issues = append(quality.Issues, "account_without_payment_history")
			break
		}
	}
	for _, account := range report.Accounts.All() {
		if hasStatus(account.PaymentHistory, statusSMA) {
			quality.Issues = append(quality.Issues, "sma_status_without_dpd")
			break
		}
	}

	return quality
}

func hasStatus(history []dto.PaymentHistoryEntry, status string) bool {
	for _, entry := range history {
		if entry.Status == status {
			return true
		}
	}
	return false
}
