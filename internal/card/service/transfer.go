package service

import (
	"context"

	"cardledger/internal/audit"
	"cardledger/internal/card/guard"
	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/requestcontext"
)

// Transfer moves amount between two of the holder's cards as one atomic unit.
//
// Guards run in this order: endpoints differ and the amount is positive
// (before any record is touched), then inside the store's transaction against
// row-locked state: both resolve within the holder's scope, both ACTIVE,
// neither expired, sufficient balance. Any failure aborts with zero side
// effects; concurrent transfers that would jointly overdraw a card serialize
// on the lock, so at most one passes the sufficiency check.
func (s *Service) Transfer(ctx context.Context, holderID id.HolderID, fromID, toID id.CardID, amount int64) error {
	ctx, span := s.span(ctx, "card.transfer")
	defer span.End()

	if err := guard.IDsDiffer(fromID, toID); err != nil {
		s.countRejected(err)
		return err
	}
	if err := guard.AmountPositive(amount); err != nil {
		s.countRejected(err)
		return err
	}
	intent := models.TransferIntent{FromID: fromID, ToID: toID, Amount: amount}

	now := requestcontext.Now(ctx)
	err := s.store.Transfer(ctx, holderID, intent, func(from, to *models.Card) error {
		if err := guard.Exists(from); err != nil {
			return err
		}
		if err := guard.Exists(to); err != nil {
			return err
		}
		if err := guard.StatusIs(from, models.StatusActive); err != nil {
			return err
		}
		if err := guard.StatusIs(to, models.StatusActive); err != nil {
			return err
		}
		if err := guard.NotExpired(from, now); err != nil {
			return err
		}
		if err := guard.NotExpired(to, now); err != nil {
			return err
		}
		return guard.SufficientBalance(from, intent.Amount)
	})
	if err != nil {
		err = wrapCardErr(err)
		s.countRejected(err)
		return err
	}

	if s.metrics != nil {
		s.metrics.TransfersCompleted.Inc()
		s.metrics.TransferredMinor.Add(float64(intent.Amount))
	}
	s.invalidateListings(ctx, holderID)
	audit.Log(ctx, s.logger, s.auditSink, audit.Event{
		Action:    audit.EventTransferApplied,
		CardID:    fromID,
		PeerID:    toID,
		HolderID:  holderID,
		Amount:    amount,
		RequestID: requestcontext.RequestID(ctx),
		Client:    requestcontext.ClientMeta(ctx),
	})
	return nil
}

func (s *Service) countRejected(err error) {
	if s.metrics != nil {
		s.metrics.TransfersRejected.WithLabelValues(string(dErrors.CodeOf(err))).Inc()
	}
}
