// Package parser turns raw prospect lines into validated loan requests.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
)

const FieldCount = 4

// Field labels used in diagnostics.
const (
	FieldLoanAmount   = "loan amount"
	FieldInterestRate = "interest rate"
	FieldLoanTerm     = "loan term"
)

// ParseRecord parses one data line. lineNumber is 1-based with the header
// counted as line 1. The request is only returned when all four fields parse.
func ParseRecord(line string, lineNumber int) (domain.LoanRequest, error) {
	data := SplitFields(line)
	if len(data) < FieldCount {
		return domain.LoanRequest{}, MalformedLine(line, len(data))
	}

	loanAmount, err := ParseFloatField(data[1], FieldLoanAmount, lineNumber)
	if err != nil {
		return domain.LoanRequest{}, err
	}
	interestRate, err := ParseFloatField(data[2], FieldInterestRate, lineNumber)
	if err != nil {
		return domain.LoanRequest{}, err
	}
	loanTermYears, err := ParseIntField(data[3], FieldLoanTerm, lineNumber)
	if err != nil {
		return domain.LoanRequest{}, err
	}

	return domain.LoanRequest{
		CustomerName:      ExtractCustomerName(data[0]),
		Principal:         loanAmount,
		AnnualRatePercent: interestRate,
		TermYears:         loanTermYears,
	}, nil
}

// MalformedLine reports a line that does not have enough fields.
func MalformedLine(line string, found int) error {
	return perr.Newf(perr.ErrorCodeMalformedStructure,
		"Skipping malformed line (expected %d fields, found %d): %s", FieldCount, found, line)
}

// ParseFloatField parses a real number. Surrounding whitespace is tolerated;
// NaN and infinities are not numeric values for a loan.
func ParseFloatField(field, fieldName string, lineNumber int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, perr.FieldValue(fieldName, lineNumber, field,
			fmt.Sprintf("Expected a numeric value for %s on line %d, but found: '%s'", fieldName, lineNumber, field))
	}
	return v, nil
}

// ParseIntField parses a 32-bit decimal integer, without trimming.
func ParseIntField(field, fieldName string, lineNumber int) (int, error) {
	v, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, perr.FieldValue(fieldName, lineNumber, field,
			fmt.Sprintf("Expected an integer value for %s on line %d, but found: '%s'", fieldName, lineNumber, field))
	}
	return int(v), nil
}
