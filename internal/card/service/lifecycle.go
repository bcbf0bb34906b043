package service

import (
	"context"

	"cardledger/internal/audit"
	"cardledger/internal/card/guard"
	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	"cardledger/pkg/requestcontext"
)

// BlockCard transitions the card to BLOCKED. Blocking an already-blocked or
// expired card fails; the expiry check runs on every call.
func (s *Service) BlockCard(ctx context.Context, cardID id.CardID) error {
	return s.transition(ctx, "card.block", cardID, models.StatusBlocked)
}

// ActivateCard transitions the card to ACTIVE, under the same rules.
func (s *Service) ActivateCard(ctx context.Context, cardID id.CardID) error {
	return s.transition(ctx, "card.activate", cardID, models.StatusActive)
}

func (s *Service) transition(ctx context.Context, spanName string, cardID id.CardID, target models.CardStatus) error {
	ctx, span := s.span(ctx, spanName)
	defer span.End()

	now := requestcontext.Now(ctx)
	card, err := s.store.Execute(ctx, cardID,
		func(c *models.Card) error {
			if err := guard.StatusIsNot(c, target); err != nil {
				return err
			}
			return guard.NotExpired(c, now)
		},
		func(c *models.Card) {
			switch target {
			case models.StatusBlocked:
				c.ApplyBlock(now)
			case models.StatusActive:
				c.ApplyActivation(now)
			}
		},
	)
	if err != nil {
		return wrapCardErr(err)
	}

	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(target)).Inc()
	}
	s.invalidateListings(ctx, card.HolderID)

	action := audit.EventCardBlocked
	if target == models.StatusActive {
		action = audit.EventCardActivated
	}
	audit.Log(ctx, s.logger, s.auditSink, audit.Event{
		Action:    action,
		CardID:    cardID,
		HolderID:  card.HolderID,
		RequestID: requestcontext.RequestID(ctx),
		Client:    requestcontext.ClientMeta(ctx),
	})
	return nil
}
