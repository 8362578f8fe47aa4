package domain

type LoanRequest struct {
	CustomerName      string
	Principal         float64
	AnnualRatePercent float64
	TermYears         int
}

type PaymentResult struct {
	MonthlyPayment float64
}
