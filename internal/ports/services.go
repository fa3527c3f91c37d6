// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrForbidden, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

// NewsSource supplies the current headlines.
//
// Implementations issue a single upstream request and return the articles
// in upstream order, already translated to domain values. Filtering,
// deduplication and capping happen in the application layer.
type NewsSource interface {
	// TopHeadlines returns one page of headlines.
	// Returns domain.ErrUnavailable if the provider is unreachable,
	// domain.ErrForbidden if the credentials were rejected and
	// domain.ErrMalformed if the reply could not be decoded.
	TopHeadlines(ctx context.Context) ([]domain.Article, error)
}

// Publisher delivers a formatted post to a chat.
type Publisher interface {
	// Publish sends text to chatID as one message.
	// Returns domain.ErrUnavailable on transport failure or flood control,
	// domain.ErrValidation if the message was refused.
	Publish(ctx context.Context, chatID, text string) error
}
