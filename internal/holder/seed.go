package holder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	id "cardledger/pkg/domain"
)

// Fixed seed identities for local development. Stable IDs let tokens and
// curl scripts survive restarts.
var (
	SeedAdminID  = id.HolderID(uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	SeedHolderID = id.HolderID(uuid.MustParse("00000000-0000-0000-0000-000000000002"))
)

// Seed upserts the demo admin and holder accounts.
func Seed(ctx context.Context, dir Directory, logger *slog.Logger) error {
	now := time.Now().UTC()
	seeds := []Holder{
		{ID: SeedAdminID, Username: "admin", Role: RoleAdmin, CreatedAt: now},
		{ID: SeedHolderID, Username: "demo", Role: RoleHolder, CreatedAt: now},
	}
	for _, h := range seeds {
		if err := dir.Save(ctx, h); err != nil {
			return fmt.Errorf("seed holder %s: %w", h.Username, err)
		}
	}
	if logger != nil {
		logger.InfoContext(ctx, "seeded demo holders", "admin_id", SeedAdminID, "holder_id", SeedHolderID)
	}
	return nil
}
