package glossary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lularocha/glossary-builder/internal/config"
	"github.com/lularocha/glossary-builder/internal/domain"
	"github.com/lularocha/glossary-builder/internal/llmjson"
	"github.com/lularocha/glossary-builder/internal/provider"
)

// Operation names used in logs and metrics.
const (
	OpGenerate = "generate"
	OpExpand   = "expand"
	OpExtend   = "extend"
)

// Outcomes reported to the metrics recorder.
const (
	OutcomeOK           = "ok"
	OutcomeUpstream     = "upstream_error"
	OutcomeMalformed    = "malformed"
	OutcomeInvalidShape = "invalid_shape"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type modelClient interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

type metricsRecorder interface {
	ObserveLLM(operation, outcome string, elapsed time.Duration)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service turns seed words into glossaries and expands individual terms.
// It holds no state between calls.
type Service struct {
	log     *slog.Logger
	model   modelClient
	metrics metricsRecorder
	cfg     config.LLMConfig
	now     func() time.Time
}

// NewService creates a new glossary service.
func NewService(logger *slog.Logger, model modelClient, cfg config.LLMConfig) *Service {
	return &Service{
		log:   logger.With("service", "glossary"),
		model: model,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetMetrics injects the optional metrics recorder.
func (s *Service) SetMetrics(m metricsRecorder) {
	s.metrics = m
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// ask sends one prompt and decodes the reply into T.
func ask[T any](
	ctx context.Context,
	s *Service,
	op string,
	req provider.CompletionRequest,
	validate func(*T) error,
) (*T, error) {
	start := time.Now()

	raw, err := s.model.Complete(ctx, req)
	if err != nil {
		s.observe(op, OutcomeUpstream, start)
		s.log.ErrorContext(ctx, "model call failed",
			slog.String("operation", op),
			slog.String("model", req.Model),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	out, err := llmjson.Decode(raw, validate)
	if err != nil {
		s.observe(op, outcomeOf(err), start)
		s.logRejected(ctx, op, err)
		return nil, err
	}

	s.observe(op, OutcomeOK, start)
	return out, nil
}

func (s *Service) logRejected(ctx context.Context, op string, err error) {
	var malformed *domain.MalformedResponseError
	if errors.As(err, &malformed) {
		s.log.WarnContext(ctx, "model reply is not valid JSON",
			slog.String("operation", op),
			slog.String("error", malformed.Err.Error()),
			slog.String("raw", malformed.Raw),
			slog.String("cleaned", malformed.Cleaned),
		)
		return
	}

	var shape *domain.InvalidShapeError
	if errors.As(err, &shape) {
		s.log.WarnContext(ctx, "model reply has invalid structure",
			slog.String("operation", op),
			slog.String("reason", shape.Reason),
			slog.Any("parsed_keys", keysOf(shape.Parsed)),
		)
		return
	}

	s.log.WarnContext(ctx, "model reply rejected", slog.String("operation", op), slog.String("error", err.Error()))
}

func (s *Service) observe(op, outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveLLM(op, outcome, time.Since(start))
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedResponse):
		return OutcomeMalformed
	case errors.Is(err, domain.ErrInvalidResponseShape):
		return OutcomeInvalidShape
	default:
		return OutcomeUpstream
	}
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
