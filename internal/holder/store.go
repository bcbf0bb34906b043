package holder

import (
	"context"

	id "cardledger/pkg/domain"
)

// Directory is the holder lookup capability the card core depends on.
// Implementations return pkg/sentinel errors for infrastructure facts.
type Directory interface {
	Save(ctx context.Context, h Holder) error
	FindByID(ctx context.Context, holderID id.HolderID) (Holder, error)
	ExistsByID(ctx context.Context, holderID id.HolderID) (bool, error)
}
