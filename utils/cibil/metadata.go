package cibil

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/utils"
)

const (
	reportVersion = "1.0"
	scoreRangeMin = 300
	scoreRangeMax = 900
)

// ParseReportMetadata reads the control number and report date from page 1.
func ParseReportMetadata(pages []string) dto.ReportMetadata {
	text := firstPages(pages, 1)

	var control *string
	if raw := utils.Search(`Control Number\s*[:\-]\s*([\d,\s]+)`, text, 1); raw != nil {
		digits := strings.Map(func(r rune) rune {
			if r == ',' || unicode.IsSpace(r) {
				return -1
			}
			return r
		}, *raw)
		control = nonEmpty(&digits)
	}

	return dto.ReportMetadata{
		ControlNumber: control,
		ReportDate:    dateOf(utils.Search(`Date\s*[:\-]\s*([\d/]+)`, text, 1)),
		ReportVersion: reportVersion,
	}
}

// ParseScoreSummary reads the CIBIL score and its as-of date from page 1.
func ParseScoreSummary(pages []string) dto.ScoreSummary {
	text := firstPages(pages, 1)

	var score *int
	if raw := utils.Search(`CIBIL Score is\s+(\d{3})`, text, 1); raw != nil {
		if v, err := strconv.Atoi(*raw); err == nil {
			score = &v
		}
	}

	return dto.ScoreSummary{
		CibilScore:    score,
		ScoreDate:     dateOf(utils.Search(`as of Date\s*[:\-]\s*([\d/]+)`, text, 1)),
		ScoreRangeMin: scoreRangeMin,
		ScoreRangeMax: scoreRangeMax,
	}
}
