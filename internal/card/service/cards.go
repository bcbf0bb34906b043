package service

import (
	"context"
	"errors"
	"fmt"

	"cardledger/internal/audit"
	"cardledger/internal/card/guard"
	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/requestcontext"
	"cardledger/pkg/sentinel"
)

// CreateCardSpec carries caller-supplied fields for a new card. The service
// assigns the ID.
type CreateCardSpec struct {
	Number      string
	Owner       string
	ExpiryMonth int
	ExpiryYear  int
	Status      models.CardStatus
	Balance     int64
	HolderID    id.HolderID
}

// CreateCard validates the spec against the holder's existing cards and
// persists a fresh record. Guard order: holder exists, number available,
// owner match, intrinsic field invariants, not already expired.
func (s *Service) CreateCard(ctx context.Context, spec CreateCardSpec) (*models.Card, error) {
	ctx, span := s.span(ctx, "card.create")
	defer span.End()

	exists, err := s.holders.ExistsByID(ctx, spec.HolderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve holder")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "holder not found")
	}

	taken, err := s.store.NumberExists(ctx, spec.Number)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "check card number")
	}
	if err := guard.NumberAvailable(taken); err != nil {
		return nil, err
	}

	first, err := s.store.FindFirstByHolder(ctx, spec.HolderID)
	holderHasCards := true
	switch {
	case err == nil:
	case sentinelNotFound(err):
		holderHasCards = false
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve holder cards")
	}
	existingOwner := ""
	if holderHasCards {
		existingOwner = first.Owner
	}
	if err := guard.OwnerMatch(spec.Owner, existingOwner, holderHasCards); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	card, err := models.NewCard(id.NewCardID(), spec.Number, spec.Owner,
		spec.ExpiryMonth, spec.ExpiryYear, spec.Status, spec.Balance, spec.HolderID, now)
	if err != nil {
		return nil, err
	}
	if err := guard.NotExpired(card, now); err != nil {
		return nil, err
	}

	// The insert re-checks uniqueness under the store's constraint, so a
	// racing duplicate still fails with already_exists.
	if err := s.store.Create(ctx, card); err != nil {
		return nil, wrapCardErr(err)
	}

	if s.metrics != nil {
		s.metrics.CardsCreated.Inc()
	}
	s.invalidateListings(ctx, card.HolderID)
	audit.Log(ctx, s.logger, s.auditSink, audit.Event{
		Action:    audit.EventCardCreated,
		CardID:    card.ID,
		HolderID:  card.HolderID,
		RequestID: requestcontext.RequestID(ctx),
		Client:    requestcontext.ClientMeta(ctx),
	})
	return card, nil
}

// DeleteCard removes the record entirely. An open dependent workflow (the
// ticket domain's guard) vetoes the deletion.
func (s *Service) DeleteCard(ctx context.Context, cardID id.CardID) error {
	ctx, span := s.span(ctx, "card.delete")
	defer span.End()

	card, err := s.store.FindByID(ctx, cardID)
	if err != nil {
		return wrapCardErr(err)
	}
	if s.deletionGuard != nil {
		if err := s.deletionGuard.CanDelete(ctx, cardID); err != nil {
			return err
		}
	}
	if err := s.store.Delete(ctx, cardID); err != nil {
		return wrapCardErr(err)
	}

	if s.metrics != nil {
		s.metrics.CardsDeleted.Inc()
	}
	s.invalidateListings(ctx, card.HolderID)
	audit.Log(ctx, s.logger, s.auditSink, audit.Event{
		Action:    audit.EventCardDeleted,
		CardID:    cardID,
		HolderID:  card.HolderID,
		RequestID: requestcontext.RequestID(ctx),
		Client:    requestcontext.ClientMeta(ctx),
	})
	return nil
}

// MaskedView returns the display projection; the raw number never leaves the
// core in any other shape.
func (s *Service) MaskedView(card *models.Card) models.MaskedCard {
	return card.Masked()
}

// ListAll returns the masked projection of every card, for admin use.
func (s *Service) ListAll(ctx context.Context) ([]models.MaskedCard, error) {
	cards, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list cards")
	}
	return maskAll(cards), nil
}

// ListAllByHolder returns the masked projection of every card a holder owns,
// unpaged, for admin use. Unknown holders fail with not_found.
func (s *Service) ListAllByHolder(ctx context.Context, holderID id.HolderID) ([]models.MaskedCard, error) {
	exists, err := s.holders.ExistsByID(ctx, holderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve holder")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "holder not found")
	}

	cards, err := s.store.FindByHolder(ctx, holderID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list holder cards")
	}
	return maskAll(cards), nil
}

// ListByHolder returns one fixed-size page of the holder's cards, optionally
// filtered by status. Pages are 1-based; out-of-range pages are empty.
func (s *Service) ListByHolder(ctx context.Context, holderID id.HolderID, status *models.CardStatus, page int) ([]models.MaskedCard, error) {
	key := listingKey(status, page)
	if s.cache != nil {
		if cached, ok := s.cache.GetPage(ctx, holderID, key); ok {
			return cached, nil
		}
	}

	cards, err := s.store.FindPageByHolder(ctx, holderID, status, page, PageSize)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list holder cards")
	}
	masked := maskAll(cards)
	if s.cache != nil {
		s.cache.SetPage(ctx, holderID, key, masked)
	}
	return masked, nil
}

func maskAll(cards []*models.Card) []models.MaskedCard {
	out := make([]models.MaskedCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Masked())
	}
	return out
}

func listingKey(status *models.CardStatus, page int) string {
	filter := "all"
	if status != nil {
		filter = string(*status)
	}
	return fmt.Sprintf("%s:%d", filter, page)
}

func sentinelNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
