package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorPrefix starts every reply that stands in for a failed completion.
const ErrorPrefix = "Error: "

// Result is the typed outcome of one completion.
type Result struct {
	Text  string
	Model string
	Err   error
}

// Reply renders the result as the text returned to users and logged.
func (r Result) Reply() string {
	if r.Err != nil {
		return ErrorPrefix + r.Err.Error()
	}
	return r.Text
}

// Completion sends [system persona, user input] through Client.
type Completion struct {
	Client       Client
	SystemPrompt string
	// Provider labels metrics and spans.
	Provider string
}

// Do performs exactly one call. Text is whitespace-trimmed on success.
func (c *Completion) Do(ctx context.Context, input string) Result {
	tr := otel.Tracer("llm/Completion")
	ctx, span := tr.Start(ctx, "Do",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.provider", c.Provider)),
	)
	defer span.End()

	msgs := []Message{
		{Role: RoleSystem, Content: c.SystemPrompt},
		{Role: RoleUser, Content: input},
	}

	start := time.Now()
	resp, err := c.Client.Generate(ctx, msgs)
	completionLat.WithLabelValues(c.Provider).Observe(time.Since(start).Seconds())

	if err != nil {
		completions.WithLabelValues(c.Provider, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		loggerFor(ctx).Warn().Err(err).Str("provider", c.Provider).Msg("completion failed")
		return Result{Err: err}
	}

	completions.WithLabelValues(c.Provider, "ok").Inc()
	completionTokens.WithLabelValues(c.Provider, "prompt").Add(float64(resp.PromptTokens))
	completionTokens.WithLabelValues(c.Provider, "completion").Add(float64(resp.CompletionTokens))
	span.SetAttributes(
		attribute.String("llm.model", resp.Model),
		attribute.Int("llm.tokens.total", resp.TotalTokens),
	)
	return Result{Text: strings.TrimSpace(resp.Content), Model: resp.Model}
}

// Complete never fails: errors come back as "Error: <description>".
func (c *Completion) Complete(ctx context.Context, input string) string {
	return c.Do(ctx, input).Reply()
}

// loggerFor prefers the request-scoped logger carried by ctx.
func loggerFor(ctx context.Context) *zerolog.Logger {
	if l := log.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
