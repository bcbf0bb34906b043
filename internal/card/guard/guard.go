// Package guard holds the validation pipeline: pure rule functions over card
// records, each failing with one specific domain error code.
//
// Ordering is significant and caller-explicit. Every state-changing operation
// composes exactly the guards it needs, in order, so block/activate/transfer
// can never bypass an expiry or status check. Guards that need a store fact
// (number uniqueness, holder's existing cards) take that fact as an argument;
// the guard itself never performs I/O.
package guard

import (
	"fmt"
	"time"

	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
)

// IDsDiffer rejects transfers whose endpoints are the same card.
func IDsDiffer(from, to id.CardID) error {
	if from == to {
		return dErrors.New(dErrors.CodeInvalidArgument, "from and to card must differ")
	}
	return nil
}

// AmountPositive rejects non-positive transfer amounts before any record is
// resolved.
func AmountPositive(amount int64) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidArgument, "transfer amount must be positive")
	}
	return nil
}

// Exists fails with not_found when the record did not resolve. It must run
// before any guard that dereferences the card.
func Exists(c *models.Card) error {
	if c == nil {
		return dErrors.New(dErrors.CodeNotFound, "card not found")
	}
	return nil
}

// NumberAvailable rejects creation when the number is already taken.
// The caller supplies the store's uniqueness fact.
func NumberAvailable(taken bool) error {
	if taken {
		return dErrors.New(dErrors.CodeAlreadyExists, "card number already exists")
	}
	return nil
}

// OwnerMatch enforces the cross-card consistency rule: when the holder
// already owns at least one card, a new card must carry the same owner name.
// Enforced at creation only.
func OwnerMatch(newOwner, existingOwner string, holderHasCards bool) error {
	if holderHasCards && newOwner != existingOwner {
		return dErrors.New(dErrors.CodeOwnerMismatch, "owner name conflicts with holder's existing cards")
	}
	return nil
}

// SufficientBalance rejects debits that exceed the source balance.
func SufficientBalance(from *models.Card, amount int64) error {
	if from.Balance < amount {
		return dErrors.New(dErrors.CodeInsufficientFunds, "insufficient funds")
	}
	return nil
}

// StatusIs requires the card to be in the expected state.
func StatusIs(c *models.Card, expected models.CardStatus) error {
	if c.Status != expected {
		return dErrors.New(dErrors.CodeInvalidStatus, fmt.Sprintf("card is %s, expected %s", c.Status, expected))
	}
	return nil
}

// StatusIsNot rejects the operation when the card is already in the forbidden
// state. This is the idempotency guard on block/activate: repeating a
// transition is an error, not a no-op.
func StatusIsNot(c *models.Card, forbidden models.CardStatus) error {
	if c.Status == forbidden {
		return dErrors.New(dErrors.CodeInvalidStatus, fmt.Sprintf("card is already %s", forbidden))
	}
	return nil
}

// NotExpired rejects any operation on a card whose expiry month has passed.
// Evaluated against the clock on every call, never cached.
func NotExpired(c *models.Card, at time.Time) error {
	if c.IsExpired(at) {
		return dErrors.New(dErrors.CodeExpired, "card is expired")
	}
	return nil
}
