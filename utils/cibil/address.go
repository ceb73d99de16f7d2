package cibil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/utils"
)

const minAddressLength = 10

var (
	addressSplitRegex = regexp.MustCompile(`\n[ \t]*Address\s*\n`)
	addressStopRegex  = regexp.MustCompile(`(?i)^(Category|Residence Code|Date Reported)`)
)

// ParseAddresses reads every "Address" block on pages 1-3.
func ParseAddresses(pages []string) []dto.Address {
	text := "\n" + firstPages(pages, 3)
	addresses := []dto.Address{}

	chunks := addressSplitRegex.Split(text, -1)
	for _, chunk := range chunks[1:] {
		var parts []string
		for _, line := range normalizeLines(chunk) {
			if addressStopRegex.MatchString(line) {
				break
			}
			parts = append(parts, line)
		}

		address := strings.TrimSpace(strings.Join(parts, " "))
		if utf8.RuneCountInString(address) < minAddressLength {
			continue
		}

		category := nextLine(`Category`, chunk)
		if category == nil {
			category = nextLine(`Residence Code`, chunk)
		}

		addresses = append(addresses, dto.Address{
			AddressType:  classifyAddress(category, address),
			Address:      address,
			Category:     category,
			DateReported: dateOf(utils.Search(`Date Reported\s*\n([\d/]+)`, chunk, 1)),
		})
	}

	return addresses
}

func classifyAddress(category *string, address string) string {
	if category != nil && strings.Contains(strings.ToLower(*category), "office") {
		return "Office"
	}
	if strings.Contains(strings.ToLower(address), "office") {
		return "Office"
	}
	return "Residence"
}

// normalizeLines splits OCR text into trimmed, non-empty lines.
func normalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
