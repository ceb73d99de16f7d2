package cibil

import (
	"strings"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/utils"
)

// ParsePersonalDetails reads name, date of birth and gender from pages 1-2.
func ParsePersonalDetails(pages []string) dto.PersonalDetails {
	text := firstPages(pages, 2)

	name := utils.Search(`Hello,\s+([A-Z][A-Z\s]+?)(?:\n|Your)`, text, 1)
	if name == nil {
		name = utils.Search(`Name\s*\n([A-Z][^\n]+)`, text, 1)
	}

	return dto.PersonalDetails{
		FullName:    nonEmpty(name),
		DateOfBirth: dateOf(utils.Search(`Date Of Birth\s*[,\n\s]+([\d/]+)`, text, 1)),
		Gender:      utils.Search(`Gender\s+(Male|Female|Transgender|Other)`, text, 1),
	}
}

// ParseContactDetails collects distinct mobile numbers and e-mail addresses
// from pages 1-4, in the order they first appear.
func ParseContactDetails(pages []string) dto.ContactDetails {
	text := firstPages(pages, 4)

	phones := []string{}
	for _, m := range utils.SearchAll(`\b[6-9]\d{9}\b`, text) {
		phones = appendUnique(phones, m[0])
	}

	emails := []string{}
	for _, m := range utils.SearchAll(`[\w.\-]+@[\w.\-]+\.[a-zA-Z]{2,}`, text) {
		email := m[0]
		at := strings.LastIndex(email, "@")
		// OCR garbles short addresses; keep only plausible ones.
		if len(email) <= 6 || !strings.Contains(email[at+1:], ".") {
			continue
		}
		emails = appendUnique(emails, email)
	}

	return dto.ContactDetails{
		PhoneNumbers: phones,
		Emails:       emails,
	}
}

// ParseEmploymentDetails reads the EMPLOYMENT DETAILS block on pages 1-4.
func ParseEmploymentDetails(pages []string) dto.EmploymentDetails {
	text := firstPages(pages, 4)

	block := ""
	if raw := utils.Search(`EMPLOYMENT DETAILS(.{1,600}?)(?:ALL ACCOUNTS|ENQUIRY|\z)`, text, 1); raw != nil {
		block = *raw
	}

	return dto.EmploymentDetails{
		AccountType: nextLine(`Account Type`, block),
		Occupation:  nextLine(`Occupation`, block),
		Income:      floatOf(utils.Search(`Income\s*\n([\d,]+)`, block, 1)),
		IncomeType:  nonEmpty(nextLine(`Monthly / Annual Income Indicator`, block)),
		NetGross:    nonEmpty(nextLine(`Net / Gross Income Indicator`, block)),
	}
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
