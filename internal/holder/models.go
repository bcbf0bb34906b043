// Package holder resolves account holders: the principals that own cards.
// The card core consumes it as the HolderDirectory collaborator; it never
// issues credentials (token issuance lives outside this service).
package holder

import (
	"time"

	id "cardledger/pkg/domain"
)

// Role is the coarse authorization level carried in the JWT role claim.
const (
	RoleAdmin  = "ADMIN"
	RoleHolder = "USER"
)

// Holder is an account owner. A holder may own zero or many cards; the card
// records reference it by ID only.
type Holder struct {
	ID        id.HolderID `json:"id"`
	Username  string      `json:"username"`
	Role      string      `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}
