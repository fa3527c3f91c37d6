// Package acl is the Anti-Corruption Layer between the job and the upstream
// APIs it talks to: NewsAPI, RSS/Atom feeds and the Telegram Bot API.
//
// Each adapter embeds [BaseAdapter], defines its external DTOs as unexported
// types, and translates them into domain values before returning. External
// shapes never leave this package.
//
// # Package Components
//
//   - [NewsAPIClient]: top headlines from newsapi.org
//   - [RSSClient]: headlines from any RSS or Atom feed (gofeed)
//   - [TelegramClient]: sendMessage publisher and getMe health check
//   - [MapHTTPError], [MapExternalCode]: upstream failures to domain errors
//   - [PlainText]: HTML description cleanup (goquery)
//   - [TranslateSlice]: batch translation that drops rejected items
//
// # Error Handling Strategy
//
// Upstream failures become domain errors:
//   - 400/422, NewsAPI parameter codes → [domain.ErrValidation]
//   - 401/403, NewsAPI key codes → [domain.ErrForbidden]
//   - 429, NewsAPI rateLimited → [domain.ErrUnavailable] with RetryAfter
//   - 5xx/network → [domain.ErrUnavailable]
//   - undecodable bodies → [domain.ErrMalformed]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// are translated to [domain.ErrUnavailable]. Context cancellation is passed
// through unchanged.
//
// # Secrets
//
// The NewsAPI key and the bot token are added to the request as the last step
// before sending. Spans render the Telegram URL through [RedactBotToken].
package acl
