package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mortgage-agent/domain"
	perr "mortgage-agent/errors"
	"mortgage-agent/metrics"
	"mortgage-agent/parser"
	"mortgage-agent/repository"
)

type BatchService struct {
	source       repository.SourceRepository
	log          zerolog.Logger
	recorder     metrics.Recorder
	maxTermYears int
}

type BatchOption func(*BatchService)

// WithMaxTermYears reports records with a longer term as invalid instead of pricing them.
func WithMaxTermYears(years int) BatchOption {
	return func(s *BatchService) { s.maxTermYears = years }
}

// NewBatchService creates a BatchService reading documents from source.
func NewBatchService(
	source repository.SourceRepository,
	log zerolog.Logger,
	recorder metrics.Recorder,
	opts ...BatchOption,
) *BatchService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	s := &BatchService{source: source, log: log, recorder: recorder}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFile opens the named document and processes it. Failing to open it is
// the only error returned before any line is read; the document is always closed.
func (s *BatchService) ProcessFile(ctx context.Context, name string, sink Sink) (domain.BatchSummary, error) {
	rc, err := s.source.Open(ctx, name)
	if err != nil {
		s.recorder.ObserveRun(perr.CodeOf(err).String())
		s.log.Error().Err(err).Str("source", name).Msg("cannot open input")
		return domain.BatchSummary{}, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Str("source", name).Msg("closing input")
		}
	}()

	return s.Process(ctx, rc, sink)
}

// Process reads r line by line, skips the header and reports every data line to
// sink. Bad lines are reported and skipped, they never stop the run.
func (s *BatchService) Process(ctx context.Context, r io.Reader, sink Sink) (domain.BatchSummary, error) {
	summary := domain.BatchSummary{RunID: uuid.NewString()}
	log := s.log.With().Str("run_id", summary.RunID).Logger()

	br := bufio.NewReader(r)

	lineNumber := 0
	for {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.recorder.ObserveRun("read_error")
			return summary, fmt.Errorf("reading input after line %d: %w", lineNumber, err)
		}
		lineNumber++
		if lineNumber == 1 {
			continue // header
		}
		if err := ctx.Err(); err != nil {
			s.recorder.ObserveRun("cancelled")
			return summary, err
		}

		summary.Lines++

		prospect, err := s.processLine(line, lineNumber)
		if err != nil {
			summary.Skipped++
			code := perr.CodeOf(err)
			s.recorder.ObserveLine(code.String())
			log.Debug().Int("line", lineNumber).Str("reason", code.String()).Msg("line skipped")
			sink.Failure(domain.LineFailure{Line: lineNumber, Raw: line, Err: err})
			continue
		}

		summary.Prospects++
		prospect.Number = summary.Prospects
		s.recorder.ObserveLine(metrics.OutcomeProspect)
		sink.Prospect(prospect)
	}

	s.recorder.ObserveRun("ok")
	log.Info().
		Int("lines", summary.Lines).
		Int("prospects", summary.Prospects).
		Int("skipped", summary.Skipped).
		Msg("batch finished")
	return summary, nil
}

// readLine returns the next line without its terminator. Lines have no length
// limit. A final line without a newline is returned with a nil error.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (s *BatchService) processLine(line string, lineNumber int) (domain.Prospect, error) {
	req, err := parser.ParseRecord(line, lineNumber)
	if err != nil {
		return domain.Prospect{}, err
	}
	if err := CheckTermLimit(req.TermYears, s.maxTermYears); err != nil {
		return domain.Prospect{}, err
	}
	payment, err := Quote(req)
	if err != nil {
		return domain.Prospect{}, err
	}
	return domain.Prospect{Line: lineNumber, Request: req, Payment: payment}, nil
}
