// Package services – InteractionLog
//
// InteractionLog is the append-only record of every chat exchange. It stamps
// rows with local wall-clock time and reads them back newest-first.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-chat/internal/domain"
	"github.com/tbourn/go-support-chat/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRecentLimit is the number of rows Recent returns when no limit is given.
const DefaultRecentLimit = 50

// InteractionLog persists interactions through the repo layer.
type InteractionLog struct {
	DB *gorm.DB
	// Now is the clock used for timestamps; nil means time.Now.
	Now func() time.Time
	// DefaultLimit replaces non-positive limits in Recent.
	DefaultLimit int
}

// NewInteractionLog returns a log bound to db using the system clock.
func NewInteractionLog(db *gorm.DB) *InteractionLog {
	return &InteractionLog{DB: db, Now: time.Now, DefaultLimit: DefaultRecentLimit}
}

// Append stores one exchange exactly as given. Storage errors propagate.
func (l *InteractionLog) Append(ctx context.Context, userInput, botResponse string) (*domain.Interaction, error) {
	tr := otel.Tracer("services/InteractionLog")
	ctx, span := tr.Start(ctx, "Append")
	defer span.End()

	it, err := repo.CreateInteraction(ctx, l.DB, domain.FormatTimestamp(l.now()), userInput, botResponse)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("interaction.id", it.ID))
	return it, nil
}

// Recent returns up to limit interactions ordered by id descending.
func (l *InteractionLog) Recent(ctx context.Context, limit int) ([]domain.Interaction, error) {
	if limit <= 0 {
		limit = l.DefaultLimit
		if limit <= 0 {
			limit = DefaultRecentLimit
		}
	}

	tr := otel.Tracer("services/InteractionLog")
	ctx, span := tr.Start(ctx, "Recent",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	items, err := repo.ListRecentInteractions(ctx, l.DB, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return items, nil
}

func (l *InteractionLog) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}
