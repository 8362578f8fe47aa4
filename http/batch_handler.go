package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
	"mortgage-agent/service"
)

// BatchProcessor runs batches over request bodies or named source documents.
type BatchProcessor interface {
	Process(ctx context.Context, r io.Reader, sink service.Sink) (domain.BatchSummary, error)
	ProcessFile(ctx context.Context, name string, sink service.Sink) (domain.BatchSummary, error)
}

type prospectDTO struct {
	Number            int     `json:"number"`
	Line              int     `json:"line"`
	CustomerName      string  `json:"customerName"`
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
}

type diagnosticDTO struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type summaryDTO struct {
	Lines     int `json:"lines"`
	Prospects int `json:"prospects"`
	Skipped   int `json:"skipped"`
}

type batchResponse struct {
	RunID       string          `json:"runId"`
	Prospects   []prospectDTO   `json:"prospects"`
	Output      []string        `json:"output"`
	Diagnostics []diagnosticDTO `json:"diagnostics"`
	Summary     summaryDTO      `json:"summary"`
}

type BatchHandler struct {
	batch        BatchProcessor
	maxBodyBytes int64
	log          zerolog.Logger
}

func NewBatchHandler(batch BatchProcessor, maxBodyBytes int64, log zerolog.Logger) *BatchHandler {
	return &BatchHandler{batch: batch, maxBodyBytes: maxBodyBytes, log: log}
}

// ProcessBatch runs a CSV body (header line included) and returns every outcome.
func (h *BatchHandler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || (mediaType != "text/csv" && mediaType != "text/plain") {
			http.Error(w, "Content-Type must be text/csv or text/plain", http.StatusUnsupportedMediaType)
			return
		}
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	sink := &service.CollectSink{}

	summary, err := h.batch.Process(r.Context(), body, sink)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.log.Error().Err(err).Str("run_id", summary.RunID).Msg("batch failed")
		writeError(w, h.log, perr.Wrap(err, perr.ErrorCodeValidation, "cannot read batch"))
		return
	}

	writeJSON(w, h.log, http.StatusOK, newBatchResponse(summary, sink))
}

// ProcessNamed runs a document from the configured source.
func (h *BatchHandler) ProcessNamed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name == ".." || strings.ContainsAny(name, `/\`) {
		writeError(w, h.log, perr.New(perr.ErrorCodeNotFound, "Resource file not found: "+name))
		return
	}
	sink := &service.CollectSink{}

	summary, err := h.batch.ProcessFile(r.Context(), name, sink)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, newBatchResponse(summary, sink))
}

func newBatchResponse(summary domain.BatchSummary, sink *service.CollectSink) batchResponse {
	return batchResponse{
		RunID: summary.RunID,
		Prospects: lo.Map(sink.Prospects, func(p domain.Prospect, _ int) prospectDTO {
			return prospectDTO{
				Number:            p.Number,
				Line:              p.Line,
				CustomerName:      p.Request.CustomerName,
				Principal:         p.Request.Principal,
				AnnualRatePercent: p.Request.AnnualRatePercent,
				TermYears:         p.Request.TermYears,
				MonthlyPayment:    p.Payment.MonthlyPayment,
			}
		}),
		Output: lo.Map(sink.Prospects, func(p domain.Prospect, _ int) string {
			return service.FormatProspect(p)
		}),
		Diagnostics: lo.Map(sink.Failures, func(f domain.LineFailure, _ int) diagnosticDTO {
			return diagnosticDTO{
				Line:    f.Line,
				Code:    perr.CodeOf(f.Err).String(),
				Message: service.FormatFailure(f),
			}
		}),
		Summary: summaryDTO{
			Lines:     summary.Lines,
			Prospects: summary.Prospects,
			Skipped:   summary.Skipped,
		},
	}
}
