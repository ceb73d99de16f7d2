package cibil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/utils"
)

const noEnquiriesMarker = "No Enquiry Information Reported"

var (
	enquiryRowRegex    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*\n([A-Z][^\n]{2,50})\s*\n([^\n]{3,50})\s*\n([^\n]{3,50})`)
	enquiryAmountRegex = regexp.MustCompile(`\d{5,}`)

	// Address fragments that end up in the member column when OCR
	// misaligns the enquiry table.
	enquiryMemberDenylist = []string{"NAGAR", "CITY", "TALUKA", "ROAD", "PLOT", "WING"}
)

// ParseEnquiries reads the ENQUIRY DETAILS table of the whole report.
func ParseEnquiries(pages []string) []dto.Enquiry {
	block := section(allPages(pages), `ENQUIRY DETAILS`, `End of report`)
	enquiries := []dto.Enquiry{}

	if strings.Contains(block, noEnquiriesMarker) {
		return enquiries
	}

	for _, row := range enquiryRowRegex.FindAllStringSubmatch(block, -1) {
		date, member, enquiryType, purpose := row[1], row[2], row[3], row[4]
		if isMisalignedMember(member) {
			continue
		}

		enquiries = append(enquiries, dto.Enquiry{
			MemberName:    strings.TrimSpace(member),
			EnquiryDate:   utils.NormalizeDate(date),
			EnquiryAmount: enquiryAmount(purpose, enquiryType),
			EnquiryType:   strings.TrimSpace(enquiryType),
		})
	}

	return enquiries
}

func isMisalignedMember(member string) bool {
	upper := strings.ToUpper(member)
	for _, word := range enquiryMemberDenylist {
		if strings.Contains(upper, word) {
			return true
		}
	}
	return false
}

// enquiryAmount takes the first run of five or more digits from the
// trailing lines, purpose first.
func enquiryAmount(lines ...string) *int64 {
	for _, line := range lines {
		if digits := enquiryAmountRegex.FindString(line); digits != "" {
			if amount, err := strconv.ParseInt(digits, 10, 64); err == nil {
				return &amount
			}
		}
	}
	return nil
}
