// Package cibil turns the page texts of a CIBIL credit report into a
// dto.CreditReport. Every section parser is independent and best-effort:
// a missing field yields nil, it never aborts the other fields.
package cibil

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/cibil-report-parser/utils"
)

// firstPages joins up to n pages with newlines.
func firstPages(pages []string, n int) string {
	if n > len(pages) {
		n = len(pages)
	}
	return strings.Join(pages[:n], "\n")
}

func allPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// section returns the text between start and the first end marker, or the
// end of the text when no end marker follows. Empty when start is absent.
func section(text, start, end string) string {
	body := utils.Search(start+`(.+?)(?:`+end+`|\z)`, text, 1)
	if body == nil {
		return ""
	}
	return *body
}

// nextLine returns the line that follows a label line.
func nextLine(label, text string) *string {
	return utils.Search(label+`\s*\n([^\n]+)`, text, 1)
}

// labelValue tries "label value" on the same line, then the value on the
// following line, skipping bureau placeholders.
func labelValue(label, text string) *string {
	quoted := regexp.QuoteMeta(label)
	for _, pattern := range []string{
		quoted + `[ \t]+([^\n]+)`,
		quoted + `\s*\n([^\n]+)`,
	} {
		if v := utils.Search(pattern, text, 1); v != nil && !utils.IsPlaceholder(*v) {
			return v
		}
	}
	return nil
}

func dateOf(raw *string) *string {
	if raw == nil {
		return nil
	}
	return utils.NormalizeDate(*raw)
}

func floatOf(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	return utils.NormalizeFloat(*raw)
}

// nonEmpty drops values that trim to nothing.
func nonEmpty(raw *string) *string {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	return raw
}
