// Package audit captures structured audit events for card mutations.
// Services emit through the Publisher interface; sinks range from a slog
// fallback to the Kafka outbox, so tests can swap sinks easily.
package audit

import (
	"context"
	"log/slog"
	"time"

	id "cardledger/pkg/domain"
)

// Actions recorded by the card service.
const (
	EventCardCreated     = "card_created"
	EventCardDeleted     = "card_deleted"
	EventCardBlocked     = "card_blocked"
	EventCardActivated   = "card_activated"
	EventTransferApplied = "transfer_applied"
)

// Event is one append-only audit record.
type Event struct {
	Action    string      `json:"action"`
	CardID    id.CardID   `json:"card_id"`
	PeerID    id.CardID   `json:"peer_id,omitempty"`
	HolderID  id.HolderID `json:"holder_id"`
	Amount    int64       `json:"amount,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Client    string      `json:"client,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher accepts audit events. Emit must not mutate the event.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Log emits the event through publisher when one is wired and always writes a
// structured log line. Audit is best-effort for card mutations: a failing
// sink is logged, never surfaced to the caller.
func Log(ctx context.Context, logger *slog.Logger, publisher Publisher, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if logger != nil {
		logger.InfoContext(ctx, "audit",
			"action", event.Action,
			"card_id", event.CardID,
			"holder_id", event.HolderID,
			"request_id", event.RequestID,
		)
	}
	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.ErrorContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
