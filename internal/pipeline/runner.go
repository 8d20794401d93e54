package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"marketstudy/internal/infrastructure"
)

// TracerName is the instrumentation scope of pipeline spans.
const TracerName = "marketstudy.pipeline"

// Runner executes steps in order against a fresh State.
type Runner struct {
	steps   []Step
	tracer  trace.Tracer
	metrics *infrastructure.StudyMetrics
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracer sets the tracer used for run and step spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics records step counters and durations on m.
func WithMetrics(m *infrastructure.StudyMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a runner for steps.
func NewRunner(steps []Step, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		steps:  steps,
		tracer: otel.Tracer(TracerName),
		logger: logger.With(slog.String("component", "pipeline")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Steps returns the configured steps in execution order.
func (r *Runner) Steps() []Step {
	return r.steps
}

// Run executes every step with a new run id. The returned state is never
// nil; when a step fails the remaining steps are skipped and the error is
// a *StepError.
func (r *Runner) Run(ctx context.Context) (*State, error) {
	state := NewState(infrastructure.NewRunID(), r.steps)
	err := r.Execute(ctx, state)
	return state, err
}

// Execute runs the steps against state.
func (r *Runner) Execute(ctx context.Context, state *State) error {
	ctx = infrastructure.WithRunID(infrastructure.EnsureTraceID(ctx), state.ID)
	ctx, span := r.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", state.ID),
			attribute.Int("run.steps", len(r.steps)),
		),
	)
	defer span.End()

	logger := r.logger
	logger.InfoContext(ctx, "study run started", slog.Int("steps", len(r.steps)))

	state.Start()
	start := time.Now()

	var runErr error
	for _, step := range r.steps {
		ss := state.Step(step.ID())

		if runErr != nil {
			ss.Skip("previous step failed")
			logger.InfoContext(ctx, "step skipped", slog.String("step", step.ID()))
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = &StepError{Step: step.ID(), Err: err}
			ss.Skip("run cancelled")
			continue
		}

		if err := r.executeStep(ctx, logger, step, ss, state); err != nil {
			runErr = &StepError{Step: step.ID(), Err: err}
		}
	}

	status := "success"
	switch {
	case runErr == nil:
		state.Complete()
		span.SetStatus(codes.Ok, "")
		logger.InfoContext(ctx, "study run completed",
			slog.Int("artifacts", len(state.Artifacts())),
			slog.Duration("duration", time.Since(start)),
		)
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		status = "cancelled"
		state.Cancel(runErr)
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "cancelled")
		logger.WarnContext(ctx, "study run cancelled", slog.String("error", runErr.Error()))
	default:
		status = "failure"
		state.Fail(runErr)
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		logger.ErrorContext(ctx, "study run failed",
			slog.String("error", runErr.Error()),
			slog.Duration("duration", time.Since(start)),
		)
	}

	if r.metrics != nil {
		r.metrics.PipelineRunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
		if n := len(state.Artifacts()); n > 0 && runErr == nil {
			r.metrics.ArtifactsWritten.Add(ctx, int64(n))
		}
	}
	return runErr
}

func (r *Runner) executeStep(ctx context.Context, logger *slog.Logger, step Step, ss *StepState, state *State) (err error) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("pipeline.step.%s", step.ID()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", state.ID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
	defer span.End()

	logger.InfoContext(ctx, "step started", slog.String("step", step.ID()), slog.String("name", step.Name()))
	ss.Start()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("step panicked: %v", rec)
		}

		duration := time.Since(start)
		infrastructure.RecordStepMetrics(ctx, r.metrics, state.ID, step.ID(), duration, err)

		if err != nil {
			ss.Fail(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.ErrorContext(ctx, "step failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()),
				slog.Duration("duration", duration),
			)
			return
		}

		ss.Complete()
		span.SetStatus(codes.Ok, "")
		logger.InfoContext(ctx, "step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
		)
	}()

	return step.Execute(ctx, state)
}
