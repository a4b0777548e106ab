package botport

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Package botport is the outbound boundary between the survey flow and chat
// adapters. The survey never talks to the Telegram API directly; it sends,
// edits and acknowledges through this port.

// BotMessage identifies a previously sent message in adapter-agnostic terms.
type BotMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

// BotError wraps adapter failures with a normalized code and a retry hint.
type BotError struct {
	Op         string
	Code       string
	RetryAfter time.Duration
	Wrapped    error
}

func (e *BotError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *BotError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// NewBotError builds a BotError preserving the wrapped error.
func NewBotError(op, code string, err error) *BotError {
	return &BotError{Op: op, Code: code, Wrapped: err}
}

// IsCode reports whether err is a BotError carrying the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var be *BotError
	if errors.As(err, &be) {
		return be != nil && be.Code == code
	}
	return false
}

// BotPort abstracts outbound message operations for adapters.
type BotPort interface {
	// SendMessage sends a new message; markup may be any keyboard type or nil.
	SendMessage(ctx context.Context, chatID int64, text string, markup interface{}) (BotMessage, error)
	// EditMessage rewrites an existing message's text and inline keyboard.
	// A nil markup clears the rendered controls.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, markup interface{}) (BotMessage, error)
	// AnswerCallback acknowledges a button tap, optionally as a popup alert.
	AnswerCallback(ctx context.Context, callbackID string, text string, alert bool) error
}
