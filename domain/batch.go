package domain

// Prospect is a record that parsed and priced successfully.
// Number counts successes only, Line is the 1-based source line (header is line 1).
type Prospect struct {
	Number  int
	Line    int
	Request LoanRequest
	Payment PaymentResult
}

// LineFailure is a skipped line together with the reason it was skipped.
type LineFailure struct {
	Line int
	Raw  string
	Err  error
}

type BatchSummary struct {
	RunID     string
	Lines     int
	Prospects int
	Skipped   int
}
