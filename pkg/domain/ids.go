// Package domain defines the typed identifiers shared across modules.
//
// Every aggregate gets its own ID type so that a CardID can never be passed
// where a HolderID is expected. The compiler enforces the distinction; the
// Parse helpers enforce validity at trust boundaries (HTTP handlers, stores).
package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "cardledger/pkg/domainerrors"
)

// CardID identifies a card record.
type CardID uuid.UUID

// HolderID identifies an account holder.
type HolderID uuid.UUID

// NewCardID returns a fresh random card ID.
func NewCardID() CardID {
	return CardID(uuid.New())
}

// NewHolderID returns a fresh random holder ID.
func NewHolderID() HolderID {
	return HolderID(uuid.New())
}

// ParseCardID parses s into a CardID. Empty, malformed, and nil UUIDs are
// rejected with CodeInvalidArgument.
func ParseCardID(s string) (CardID, error) {
	u, err := parseUUID(s, "card id")
	if err != nil {
		return CardID{}, err
	}
	return CardID(u), nil
}

// ParseHolderID parses s into a HolderID. Empty, malformed, and nil UUIDs are
// rejected with CodeInvalidArgument.
func ParseHolderID(s string) (HolderID, error) {
	u, err := parseUUID(s, "holder id")
	if err != nil {
		return HolderID{}, err
	}
	return HolderID(u), nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("%s is required", what))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, fmt.Sprintf("invalid %s", what))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("%s must not be the nil uuid", what))
	}
	return u, nil
}

func (id CardID) String() string { return uuid.UUID(id).String() }

func (id CardID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText serializes the ID in canonical UUID form so JSON payloads carry
// strings, not byte arrays.
func (id CardID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *CardID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = CardID(u)
	return nil
}

func (id HolderID) String() string { return uuid.UUID(id).String() }

func (id HolderID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText serializes the ID in canonical UUID form.
func (id HolderID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

func (id *HolderID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = HolderID(u)
	return nil
}
