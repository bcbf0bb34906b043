package models

import (
	id "cardledger/pkg/domain"
)

// TransferIntent is the ephemeral request to move funds between two of one
// holder's cards. It is never persisted; only its effects are. Structural
// validity (distinct endpoints, positive amount) is the guard pipeline's job
// and runs before the intent reaches a store.
type TransferIntent struct {
	FromID id.CardID
	ToID   id.CardID
	Amount int64
}
