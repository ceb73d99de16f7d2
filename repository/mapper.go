package repository

import (
	"encoding/json"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/models"
	"gorm.io/datatypes"
)

// reportRows is a parsed report flattened into the child rows of one
// report_metadata row.
type reportRows struct {
	score           models.ScoreSummary
	personal        models.PersonalDetail
	identifications []models.IdentificationDetail
	addresses       []models.AddressDetail
	contact         models.ContactDetail
	employment      models.EmploymentDetail
	accounts        []models.Account
	enquiries       []models.Enquiry
}

func flattenReport(reportID uint, report dto.CreditReport) reportRows {
	rows := reportRows{
		score: models.ScoreSummary{
			ReportID:      reportID,
			CibilScore:    report.ScoreSummary.CibilScore,
			ScoreDate:     report.ScoreSummary.ScoreDate,
			ScoreRangeMin: report.ScoreSummary.ScoreRangeMin,
			ScoreRangeMax: report.ScoreSummary.ScoreRangeMax,
		},
		personal: models.PersonalDetail{
			ReportID:    reportID,
			FullName:    report.PersonalDetails.FullName,
			DateOfBirth: report.PersonalDetails.DateOfBirth,
			Gender:      report.PersonalDetails.Gender,
		},
		contact: models.ContactDetail{
			ReportID:     reportID,
			PhoneNumbers: jsonArray(report.ContactDetails.PhoneNumbers),
			Emails:       jsonArray(report.ContactDetails.Emails),
		},
		employment: models.EmploymentDetail{
			ReportID:    reportID,
			AccountType: report.EmploymentDetails.AccountType,
			Occupation:  report.EmploymentDetails.Occupation,
			Income:      report.EmploymentDetails.Income,
			IncomeType:  report.EmploymentDetails.IncomeType,
			NetGross:    report.EmploymentDetails.NetGross,
		},
	}

	for _, doc := range report.IdentificationDetails {
		rows.identifications = append(rows.identifications, models.IdentificationDetail{
			ReportID:   reportID,
			IDType:     doc.IDType,
			IDNumber:   doc.IDNumber,
			IssueDate:  doc.IssueDate,
			ExpiryDate: doc.ExpiryDate,
		})
	}

	for _, addr := range report.AddressDetails {
		rows.addresses = append(rows.addresses, models.AddressDetail{
			ReportID:     reportID,
			AddressType:  addr.AddressType,
			Address:      addr.Address,
			Category:     addr.Category,
			DateReported: addr.DateReported,
		})
	}

	for _, account := range report.Accounts.All() {
		rows.accounts = append(rows.accounts, accountRow(reportID, account))
	}

	for _, enq := range report.Enquiries {
		rows.enquiries = append(rows.enquiries, models.Enquiry{
			ReportID:      reportID,
			MemberName:    enq.MemberName,
			EnquiryDate:   enq.EnquiryDate,
			EnquiryAmount: enq.EnquiryAmount,
			EnquiryType:   enq.EnquiryType,
		})
	}

	return rows
}

func accountRow(reportID uint, account dto.Account) models.Account {
	d := account.AccountDetails
	row := models.Account{
		ReportID:            reportID,
		MemberName:          account.MemberName,
		AccountType:         account.AccountType,
		Ownership:           account.Ownership,
		AccountNumberMasked: account.AccountNumberMasked,
		CreditLimit:         d.CreditLimit,
		HighCredit:          d.HighCredit,
		SanctionedAmount:    d.SanctionedAmount,
		CurrentBalance:      d.CurrentBalance,
		CashLimit:           d.CashLimit,
		AmountOverdue:       d.AmountOverdue,
		RateOfInterest:      d.RateOfInterest,
		RepaymentTenure:     d.RepaymentTenure,
		EMIAmount:           d.EMIAmount,
		PaymentFrequency:    d.PaymentFrequency,
		DateOpened:          d.DateOpened,
		DateClosed:          d.DateClosed,
		DateLastPayment:     d.DateLastPayment,
		WrittenOffAmount:    d.WrittenOffAmount,
		SettlementAmount:    d.SettlementAmount,
		SuitFiledFlag:       d.SuitFiledFlag,
	}

	for _, entry := range account.PaymentHistory {
		row.PaymentHistory = append(row.PaymentHistory, models.PaymentHistory{
			Month:  entry.Month,
			DPD:    entry.DPD,
			Status: entry.Status,
		})
	}
	return row
}

// jsonArray encodes values as a JSON array, never as null.
func jsonArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return datatypes.JSON(b)
}
