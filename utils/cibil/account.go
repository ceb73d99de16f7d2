package cibil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/cibil-report-parser/dto"
)

var (
	// OCR bleeding the next label into the account number shows up as
	// lowercase words or the Ownership label itself.
	accountNumberNoiseRegex = regexp.MustCompile(`[a-z]{3,}|Ownership`)
	memberNameLineRegex     = regexp.MustCompile(`(?m)^[ \t]*Member Name[ \t]*\r?\n`)
	leadingDigitsRegex      = regexp.MustCompile(`^\d+`)
	digitRegex              = regexp.MustCompile(`\d`)
)

// ParseAccounts reads the ALL ACCOUNTS section and classifies each account
// as open or closed.
func ParseAccounts(pages []string) dto.Accounts {
	block := section(allPages(pages), `ALL ACCOUNTS`, `ENQUIRY DETAILS|End of report`)

	accounts := dto.Accounts{
		OpenAccounts:   []dto.Account{},
		ClosedAccounts: []dto.Account{},
	}

	for _, chunk := range SplitAccountBlocks(block) {
		if !strings.Contains(chunk, "Account Type") {
			continue
		}

		account := ParseAccount(chunk)
		if account.MemberName == nil {
			continue
		}

		if account.IsOpen() {
			accounts.OpenAccounts = append(accounts.OpenAccounts, account)
		} else {
			accounts.ClosedAccounts = append(accounts.ClosedAccounts, account)
		}
	}

	return accounts
}

// SplitAccountBlocks cuts the accounts section so that every block starts
// at its own "Member Name" line. Text before the first one is returned as
// the leading block.
func SplitAccountBlocks(text string) []string {
	starts := memberNameLineRegex.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return []string{text}
	}

	blocks := make([]string, 0, len(starts)+1)
	prev := 0
	for _, loc := range starts {
		if loc[0] > prev {
			blocks = append(blocks, text[prev:loc[0]])
		}
		prev = loc[0]
	}
	return append(blocks, text[prev:])
}

// ParseAccount extracts one account block.
func ParseAccount(block string) dto.Account {
	accountNumber := nextLine(`Account Number`, block)
	if accountNumber != nil && accountNumberNoiseRegex.MatchString(*accountNumber) {
		accountNumber = nil
	}

	details := dto.AccountDetails{
		CreditLimit:      amount(`Credit Limit`, block),
		HighCredit:       amount(`High Credit`, block),
		SanctionedAmount: amount(`Sanctioned Amount`, block),
		CurrentBalance:   amount(`Current Balance`, block),
		CashLimit:        amount(`Cash Limit`, block),
		AmountOverdue:    amount(`Amount Overdue`, block),
		RateOfInterest:   rateOfInterest(block),
		RepaymentTenure:  repaymentTenure(block),
		EMIAmount:        amount(`EMI Amount`, block),
		PaymentFrequency: labelValue(`Payment Frequency`, block),
		DateOpened:       dateOf(labelValue(`Date Opened / Disbursed`, block)),
		DateClosed:       dateOf(labelValue(`Date Closed`, block)),
		DateLastPayment:  dateOf(labelValue(`Date of Last Payment`, block)),
		WrittenOffAmount: amountOrZero(`Written-off Amount (Total)`, block),
		SettlementAmount: amountOrZero(`Settlement Amount`, block),
		SuitFiledFlag:    labelValue(`Suit - Filed / Wilful Default`, block) != nil,
	}

	return dto.Account{
		MemberName:          nextLine(`Member Name`, block),
		AccountType:         nextLine(`Account Type`, block),
		Ownership:           nextLine(`Ownership`, block),
		AccountNumberMasked: accountNumber,
		AccountDetails:      details,
		PaymentHistory:      ParsePaymentHistory(block),
	}
}

// amount is nil unless the labelled value carries at least one digit.
func amount(label, block string) *float64 {
	raw := labelValue(label, block)
	if raw == nil || !digitRegex.MatchString(*raw) {
		return nil
	}
	return floatOf(raw)
}

// amountOrZero is used for written-off and settlement amounts, which the
// bureau omits when nothing was written off or settled.
func amountOrZero(label, block string) float64 {
	if v := amount(label, block); v != nil {
		return *v
	}
	return 0
}

func rateOfInterest(block string) *float64 {
	raw := labelValue(`Rate of Interest`, block)
	if raw == nil {
		return nil
	}
	stripped := strings.ReplaceAll(*raw, "%", "")
	return floatOf(&stripped)
}

func repaymentTenure(block string) *int {
	raw := labelValue(`Repayment Tenure`, block)
	if raw == nil {
		return nil
	}

	digits := leadingDigitsRegex.FindString(*raw)
	if digits == "" {
		return nil
	}
	months, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &months
}
