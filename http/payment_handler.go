package http

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
	"mortgage-agent/service"
)

type paymentRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
}

type paymentResponse struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
}

type PaymentHandler struct {
	maxTermYears int
	log          zerolog.Logger
}

// NewPaymentHandler creates a handler rejecting terms above maxTermYears; zero means no limit.
func NewPaymentHandler(maxTermYears int, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{maxTermYears: maxTermYears, log: log}
}

func (h *PaymentHandler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var input paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.log, perr.Wrap(err, perr.ErrorCodeValidation, "invalid request body"))
		return
	}

	if err := service.CheckTermLimit(input.TermYears, h.maxTermYears); err != nil {
		writeError(w, h.log, err)
		return
	}

	result, err := service.Quote(domain.LoanRequest{
		Principal:         input.Principal,
		AnnualRatePercent: input.AnnualRatePercent,
		TermYears:         input.TermYears,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, paymentResponse{MonthlyPayment: result.MonthlyPayment})
}
