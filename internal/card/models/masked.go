package models

// MaskedCard is the display-safe projection of a card. It is the only card
// shape that ever leaves the core; the raw number has no serialized form.
type MaskedCard struct {
	ID           string     `json:"id"`
	MaskedNumber string     `json:"masked_number"`
	Owner        string     `json:"owner"`
	ExpiryMonth  int        `json:"expiry_month"`
	ExpiryYear   int        `json:"expiry_year"`
	Status       CardStatus `json:"status"`
	Balance      int64      `json:"balance"`
}

const maskPrefix = "**** **** **** "

// MaskNumber replaces all but the last four digits with the fixed mask
// pattern. Numbers shorter than four characters collapse to a generic mask
// instead of failing; the format invariant makes that branch unreachable in
// practice.
func MaskNumber(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return maskPrefix + number[len(number)-4:]
}

// Masked returns the display projection of the card.
func (c *Card) Masked() MaskedCard {
	return MaskedCard{
		ID:           c.ID.String(),
		MaskedNumber: MaskNumber(c.Number),
		Owner:        c.Owner,
		ExpiryMonth:  c.ExpiryMonth,
		ExpiryYear:   c.ExpiryYear,
		Status:       c.Status,
		Balance:      c.Balance,
	}
}
