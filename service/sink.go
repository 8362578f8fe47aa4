package service

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
)

// Sink receives batch outcomes in input order.
type Sink interface {
	Prospect(p domain.Prospect)
	Failure(f domain.LineFailure)
}

// TextSink writes results to Out and diagnostics to Err, one line each.
type TextSink struct {
	Out io.Writer
	Err io.Writer
}

func NewTextSink(out, errOut io.Writer) *TextSink {
	return &TextSink{Out: out, Err: errOut}
}

func (s *TextSink) Prospect(p domain.Prospect) {
	fmt.Fprintln(s.Out, FormatProspect(p))
}

func (s *TextSink) Failure(f domain.LineFailure) {
	fmt.Fprintln(s.Err, FormatFailure(f))
}

// CollectSink keeps every outcome in memory.
type CollectSink struct {
	Prospects []domain.Prospect
	Failures  []domain.LineFailure
}

func (s *CollectSink) Prospect(p domain.Prospect) {
	s.Prospects = append(s.Prospects, p)
}

func (s *CollectSink) Failure(f domain.LineFailure) {
	s.Failures = append(s.Failures, f)
}

func FormatProspect(p domain.Prospect) string {
	return fmt.Sprintf("Prospect %d: %s wants to borrow %s € for a period of %d years and pay %s € each month",
		p.Number,
		p.Request.CustomerName,
		twoDecimals(p.Request.Principal),
		p.Request.TermYears,
		twoDecimals(p.Payment.MonthlyPayment),
	)
}

// FormatFailure renders a skipped line. Malformed lines carry their own full text.
func FormatFailure(f domain.LineFailure) string {
	if perr.IsCode(f.Err, perr.ErrorCodeMalformedStructure) {
		return perr.MessageOf(f.Err)
	}
	return fmt.Sprintf("Error processing line: %s - %s", f.Raw, perr.MessageOf(f.Err))
}

// twoDecimals rounds half up on the shortest decimal form of v
func twoDecimals(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
