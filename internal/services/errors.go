// Package services defines the business logic for the support chat.
// This file centralizes service-level error values so they can be returned
// consistently and translated into HTTP results at the handler layer.
package services

import "errors"

var (
	// ErrEmptyMessage is returned when a chat request carries no message.
	// Whitespace-only text is a message and does not trigger it.
	ErrEmptyMessage = errors.New("message is empty")
)
