package service

import (
	"github.com/go-playground/validator/v10"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
)

var validate = validator.New()

type paymentTerms struct {
	Principal         float64 `validate:"gt=0"`
	AnnualRatePercent float64 `validate:"gt=0"`
	Years             int     `validate:"gt=0"`
}

// CalculateMonthlyPayment returns the fixed monthly repayment of an amortized loan.
// All three arguments must be strictly positive; a zero rate is rejected here
// and never reaches the formula.
func CalculateMonthlyPayment(principal, annualInterestRatePercent float64, years int) (float64, error) {
	terms := paymentTerms{
		Principal:         principal,
		AnnualRatePercent: annualInterestRatePercent,
		Years:             years,
	}
	if err := validate.Struct(terms); err != nil {
		return 0, perr.New(perr.ErrorCodeInvalidArgument, InvalidTermsMessage)
	}

	monthlyRate := annualInterestRatePercent / PercentBase / MonthsPerYear
	numberOfPayments := years * MonthsPerYear

	return (principal * monthlyRate) /
		(1 - Power(1+monthlyRate, -numberOfPayments)), nil
}

// Power raises base to an integer exponent by repeated multiplication.
// Negative exponents invert the base once. Fractional exponents are not supported.
func Power(base float64, exponent int) float64 {
	if exponent == 0 {
		return 1
	}
	if exponent < 0 {
		base = 1 / base
		exponent = -exponent
	}
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= base
	}
	return result
}

// CheckTermLimit rejects terms longer than maxYears. A maxYears of zero or less
// means no limit.
func CheckTermLimit(years, maxYears int) error {
	if maxYears > 0 && years > maxYears {
		return perr.Newf(perr.ErrorCodeInvalidArgument, TermLimitMessage, maxYears)
	}
	return nil
}

// Quote prices a parsed request.
func Quote(req domain.LoanRequest) (domain.PaymentResult, error) {
	payment, err := CalculateMonthlyPayment(req.Principal, req.AnnualRatePercent, req.TermYears)
	if err != nil {
		return domain.PaymentResult{}, err
	}
	return domain.PaymentResult{MonthlyPayment: payment}, nil
}
