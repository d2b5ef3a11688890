// Chat HTTP handlers.
//
// This file exposes the support chat endpoints:
//   - POST /chat  (one completion, one logged interaction)
//   - GET  /logs  (most recent interactions, newest first)
//
// Handlers are transport-thin: they validate input, call the chat service,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-support-chat/internal/domain"
	"github.com/tbourn/go-support-chat/internal/services"
)

// PromptMessage is the fixed reply for requests without a usable message.
const PromptMessage = "Please provide a message."

// ChatService is the application contract consumed by the chat handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation.
type ChatService interface {
	// Reply completes message and records the exchange.
	Reply(ctx context.Context, message string) (string, error)
	// Recent returns up to limit interactions, newest first.
	Recent(ctx context.Context, limit int) ([]domain.Interaction, error)
}

// Handlers groups the HTTP endpoints of the support chat.
type Handlers struct {
	svc       ChatService
	logsLimit int
}

// New constructs Handlers. logsLimit caps GET /logs; values <= 0 mean 50.
func New(svc ChatService, logsLimit int) *Handlers {
	if logsLimit <= 0 {
		logsLimit = services.DefaultRecentLimit
	}
	return &Handlers{svc: svc, logsLimit: logsLimit}
}

//
// DTOs
//

// ChatRequest is the JSON payload for POST /chat.
type ChatRequest struct {
	// Message is the raw user text; it is forwarded and logged untrimmed.
	Message string `json:"message" example:"Where is my order?"`
}

// ChatResponse carries the assistant reply, or the fixed prompt on 400.
// Completion failures are reported inline as "Error: <description>".
type ChatResponse struct {
	Response string `json:"response" example:"I'd be happy to help you track your order."`
}

// LogEntry is one [timestamp, user_input, bot_response] triple.
type LogEntry [3]string

//
// Handlers
//

// PostChat godoc
// @ID          postChat
// @Summary     Send a message and get the assistant reply
// @Description Calls the completion provider once and appends the exchange to the interaction log.
// @Description Provider failures are returned with status 200 as "Error: <description>" and are logged too.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.ChatRequest   true  "User message"
// @Success     200   {object}  handlers.ChatResponse  "Assistant reply"
// @Failure     400   {object}  handlers.ChatResponse  "Missing or empty message"
// @Failure     413   {object}  handlers.ErrorResponse "Body over 1 MiB"
// @Failure     429   {object}  handlers.ErrorResponse "Rate limited"
// @Failure     500   {object}  handlers.ErrorResponse "Interaction log unavailable"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
			return
		}
		prompt(c)
		return
	}
	if req.Message == "" {
		prompt(c)
		return
	}

	// A client that hangs up still gets its exchange logged: the completion
	// and the insert run to the end, keeping trace and logger values.
	reply, err := h.svc.Reply(context.WithoutCancel(c.Request.Context()), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			prompt(c)
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeLogFailed, "could not record interaction", err)
		return
	}

	ok(c, http.StatusOK, ChatResponse{Response: reply})
}

// ListLogs godoc
// @ID          listLogs
// @Summary     Recent interactions
// @Description Returns up to 50 interactions, newest first, as [timestamp, user_input, bot_response] triples.
// @Tags        Chat
// @Produce     json
// @Success     200  {array}   handlers.LogEntry
// @Failure     500  {object}  handlers.ErrorResponse  "Interaction log unavailable"
// @Router      /logs [get]
func (h *Handlers) ListLogs(c *gin.Context) {
	items, err := h.svc.Recent(c.Request.Context(), h.logsLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not read interactions", err)
		return
	}

	out := make([]LogEntry, 0, len(items))
	for _, it := range items {
		out = append(out, it.Triple())
	}
	ok(c, http.StatusOK, out)
}
