// Package repo implements the persistence layer for the interaction log,
// backed by GORM. This file provides repository functions for the
// Interaction model. Rows are create-only.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-support-chat/internal/domain"
)

// CreateInteraction inserts a new row; SQLite assigns the id.
func CreateInteraction(ctx context.Context, db *gorm.DB, timestamp, userInput, botResponse string) (*domain.Interaction, error) {
	it := &domain.Interaction{
		Timestamp:   timestamp,
		UserInput:   userInput,
		BotResponse: botResponse,
	}
	if err := db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

// ListRecentInteractions returns up to limit rows ordered newest-first
// (id DESC). A limit <= 0 returns every row.
func ListRecentInteractions(ctx context.Context, db *gorm.DB, limit int) ([]domain.Interaction, error) {
	out := []domain.Interaction{}
	q := db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountInteractions uses a raw COUNT so a missing table surfaces as an error.
func CountInteractions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM interactions").Scan(&total).Error
	return total, err
}
