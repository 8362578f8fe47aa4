package parser

import "strings"

// SplitFields splits a line on commas that are outside double quotes.
// Quotes are kept in the returned fields and empty fields are preserved,
// so "a,b,," yields four fields and an empty line yields one.
func SplitFields(line string) []string {
	fields := make([]string, 0, FieldCount)

	var (
		b        strings.Builder
		inQuotes bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			b.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(fields, b.String())
}

// ExtractCustomerName strips one pair of surrounding quotes and turns every
// comma left inside into a single space. Unquoted names are returned as is.
func ExtractCustomerName(field string) string {
	if len(field) < 2 || !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
		return field
	}
	// Every comma becomes one space; "Smith, John" keeps both spaces.
	return strings.ReplaceAll(field[1:len(field)-1], ",", " ")
}
