package service

const (
	MonthsPerYear = 12
	PercentBase   = 100.0

	InvalidTermsMessage = "Loan amount, interest rate, and loan term must be positive numbers."
	TermLimitMessage    = "Loan term must not exceed %d years."
)
