package cibil

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Aashish23092/cibil-report-parser/dto"
)

const (
	statusStandard = "STD"
	statusWithheld = "XXX"
	statusSMA      = "SMA"
)

var monthNumbers = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// One match carries month, year and the optional status token, so a
// dropped token can never shift the values of later months. The token may
// sit on the same line or the next one. A digit run followed by a date
// separator is the start of a date, captured in group 4 and discarded.
var paymentHistoryRegex = regexp.MustCompile(
	`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{4})(?:[ \t]*(?:\r?\n[ \t]*)?(STD|XXX|SMA|\d+)([/.\-]\d)?)?`,
)

// ParsePaymentHistory extracts the month-by-month DPD timeline of one
// account block, in document order. Duplicate months are kept.
func ParsePaymentHistory(block string) []dto.PaymentHistoryEntry {
	history := []dto.PaymentHistoryEntry{}

	for _, m := range paymentHistoryRegex.FindAllStringSubmatch(block, -1) {
		token := m[3]
		if m[4] != "" {
			token = ""
		}
		history = append(history, dto.PaymentHistoryEntry{
			Month:  fmt.Sprintf("%s-%02d", m[2], monthNumbers[m[1]]),
			DPD:    DaysPastDue(token),
			Status: token,
		})
	}

	return history
}

// DaysPastDue maps a payment-history token to days past due.
// STD, "0" and a missing token mean on time. XXX (withheld) and SMA
// (special-mention status without a day count) are unknown.
// Unparseable digit runs degrade to 0.
func DaysPastDue(token string) *int {
	zero := 0
	switch token {
	case "", statusStandard, "0":
		return &zero
	case statusWithheld, statusSMA:
		return nil
	}

	days, err := strconv.Atoi(token)
	if err != nil {
		return &zero
	}
	return &days
}
