package cibil

import (
	"regexp"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/utils"
)

const passportWindow = 200

var (
	// Income-tax PAN: five letters, four digits, one letter.
	panRegex           = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	dateRegex          = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	passportLabelRegex = regexp.MustCompile(`(?i)Passport Number`)
)

// ParseIdentification reads PAN and passport details from pages 1-3.
// A document is only reported when at least one of its values was found.
func ParseIdentification(pages []string) []dto.IdentificationDocument {
	text := firstPages(pages, 3)
	docs := []dto.IdentificationDocument{}

	if pan := parsePAN(text); pan != nil {
		docs = append(docs, dto.IdentificationDocument{
			IDType:   "PAN",
			IDNumber: pan,
		})
	}

	if passport, ok := parsePassport(text); ok {
		docs = append(docs, passport)
	}

	return docs
}

func parsePAN(text string) *string {
	if pan := utils.Search(`(?:Income Tax ID|PAN)[^\n]*\n+([A-Z]{5}\d{4}[A-Z])`, text, 1); pan != nil {
		return pan
	}

	// Labels are often lost in OCR; the PAN shape alone is distinctive enough.
	if pan := panRegex.FindString(text); pan != "" {
		return &pan
	}
	return nil
}

func parsePassport(text string) (dto.IdentificationDocument, bool) {
	number := utils.Search(`Passport Number\s*\n+([A-Z]\d{7,8})`, text, 1)

	var dates []string
	if loc := passportLabelRegex.FindStringIndex(text); loc != nil {
		end := loc[1] + passportWindow
		if end > len(text) {
			end = len(text)
		}
		dates = dateRegex.FindAllString(text[loc[1]:end], 2)
	}

	if number == nil && len(dates) == 0 {
		return dto.IdentificationDocument{}, false
	}

	doc := dto.IdentificationDocument{
		IDType:   "Passport",
		IDNumber: number,
	}
	if len(dates) > 0 {
		doc.IssueDate = utils.NormalizeDate(dates[0])
	}
	if len(dates) > 1 {
		doc.ExpiryDate = utils.NormalizeDate(dates[1])
	}
	return doc, true
}
