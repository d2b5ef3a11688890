// Package services – ChatService
//
// ChatService is the orchestration behind POST /chat: one completion call,
// one appended interaction. Completion failures arrive as ordinary text
// ("Error: ...") and are logged like any other reply; only storage failures
// are returned as errors.
package services

import (
	"context"

	"github.com/tbourn/go-support-chat/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Completer produces a reply for a single user message. It never fails; errors
// are encoded in the returned text.
type Completer interface {
	Complete(ctx context.Context, input string) string
}

// Recorder is the storage contract ChatService needs.
type Recorder interface {
	Append(ctx context.Context, userInput, botResponse string) (*domain.Interaction, error)
	Recent(ctx context.Context, limit int) ([]domain.Interaction, error)
}

// ChatService wires a Completer to a Recorder.
type ChatService struct {
	Completer Completer
	Log       Recorder
}

// NewChatService constructs a ChatService.
func NewChatService(c Completer, log Recorder) *ChatService {
	return &ChatService{Completer: c, Log: log}
}

// Reply calls the completer once with the raw message, records the exchange,
// and returns the reply text.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.Int("message.bytes", len(message))),
	)
	defer span.End()

	if message == "" {
		return "", ErrEmptyMessage
	}

	reply := s.Completer.Complete(ctx, message)

	if _, err := s.Log.Append(ctx, message, reply); err != nil {
		span.RecordError(err)
		return "", err
	}
	return reply, nil
}

// Recent proxies to the log; it never calls the completer.
func (s *ChatService) Recent(ctx context.Context, limit int) ([]domain.Interaction, error) {
	return s.Log.Recent(ctx, limit)
}
