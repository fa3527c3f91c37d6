// Package publisher holds Publisher implementations that do not talk to a
// messaging API.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
)

// Message is one post handed to a LogPublisher.
type Message struct {
	ChatID string
	Text   string
}

// LogPublisher writes posts to the log instead of sending them.
// It is used for dry runs, where messaging credentials are not required.
type LogPublisher struct {
	mu   sync.Mutex
	sent []Message
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish logs the post at info level with the logger carried by ctx.
// It fails only if ctx is already done.
func (p *LogPublisher) Publish(ctx context.Context, chatID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logging.FromContext(ctx).InfoContext(ctx, "dry run: post not sent",
		slog.String("chat_id", chatID),
		slog.String("text", text),
	)

	p.mu.Lock()
	p.sent = append(p.sent, Message{ChatID: chatID, Text: text})
	p.mu.Unlock()

	return nil
}

// Messages returns the posts logged so far, in order.
func (p *LogPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Message, len(p.sent))
	copy(out, p.sent)

	return out
}

// Name identifies the publisher in health checks.
func (p *LogPublisher) Name() string {
	return "log-publisher"
}

// Check always succeeds.
func (p *LogPublisher) Check(context.Context) error {
	return nil
}
