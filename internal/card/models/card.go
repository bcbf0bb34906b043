package models

import (
	"fmt"
	"time"

	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
)

// Card is the aggregate root for a bank card.
//
// Invariants:
//   - Number is a 16-digit numeric string, unique among live records
//   - Owner equals the owner name of the holder's other cards (checked at creation)
//   - ExpiryMonth is 1..12; the card expires at the end of ExpiryYear/ExpiryMonth
//   - Status is ACTIVE or BLOCKED, nothing else
//   - Balance is minor units (cents) and never negative in a committed state
//
// Balance and Status only change through the store's atomic primitives, so a
// reader never observes a half-applied mutation.
type Card struct {
	ID          id.CardID   `json:"id"`
	Number      string      `json:"-"`
	Owner       string      `json:"owner"`
	ExpiryMonth int         `json:"expiry_month"`
	ExpiryYear  int         `json:"expiry_year"`
	Status      CardStatus  `json:"status"`
	Balance     int64       `json:"balance"`
	HolderID    id.HolderID `json:"holder_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

const numberLength = 16

// NewCard builds a card from caller-supplied fields, enforcing the intrinsic
// field invariants. Cross-record rules (number uniqueness, owner match) are
// the guard pipeline's job and run against the store.
func NewCard(cardID id.CardID, number, owner string, expiryMonth, expiryYear int, status CardStatus, balance int64, holderID id.HolderID, now time.Time) (*Card, error) {
	if len(number) != numberLength || !digitsOnly(number) {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("card number must be %d digits", numberLength))
	}
	if owner == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "card owner is required")
	}
	if expiryMonth < 1 || expiryMonth > 12 {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "expiry month must be 1..12")
	}
	if expiryYear < now.Year() || expiryYear > now.Year()+50 {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "expiry year out of range")
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidStatus, fmt.Sprintf("unknown card status %q", status))
	}
	if balance < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "balance must not be negative")
	}
	if holderID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "holder id is required")
	}
	return &Card{
		ID:          cardID,
		Number:      number,
		Owner:       owner,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
		Status:      status,
		Balance:     balance,
		HolderID:    holderID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsExpired reports whether the card's expiry month has fully passed at the
// given instant. A card expiring 12/2025 is still usable through December 31,
// 2025.
func (c *Card) IsExpired(at time.Time) bool {
	if c.ExpiryYear != at.Year() {
		return c.ExpiryYear < at.Year()
	}
	return time.Month(c.ExpiryMonth) < at.Month()
}

// ApplyBlock transitions the card to BLOCKED. Callers validate the transition
// first (guard.StatusIsNot + guard.NotExpired) inside the store's Execute.
func (c *Card) ApplyBlock(now time.Time) {
	c.Status = StatusBlocked
	c.UpdatedAt = now
}

// ApplyActivation transitions the card to ACTIVE. Callers validate the
// transition first inside the store's Execute.
func (c *Card) ApplyActivation(now time.Time) {
	c.Status = StatusActive
	c.UpdatedAt = now
}

// Clone returns a deep copy so the memory store never hands out aliased
// mutable state.
func (c *Card) Clone() *Card {
	dup := *c
	return &dup
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
