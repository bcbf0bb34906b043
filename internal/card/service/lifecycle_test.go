package service

import (
	"context"
	"time"

	"cardledger/internal/audit"
	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/requestcontext"
)

func (s *CardServiceSuite) TestBlockCard() {
	s.Run("blocks an active card and audits", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000123412341234", 0)

		s.NoError(s.service.BlockCard(s.ctx, card.ID))

		got, err := s.store.FindByID(s.ctx, card.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusBlocked, got.Status)

		events := s.publisher.Events()
		s.Equal(audit.EventCardBlocked, events[len(events)-1].Action)
	})

	s.Run("blocking a blocked card fails", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000111122223333", 0)
		s.Require().NoError(s.service.BlockCard(s.ctx, card.ID))

		err := s.service.BlockCard(s.ctx, card.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("blocking an expired card fails", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000222233334444", 0)

		// Advance the clock past the card's expiry month.
		future := requestcontext.WithTime(context.Background(), time.Date(2028, time.January, 1, 0, 0, 0, 0, time.UTC))
		err := s.service.BlockCard(future, card.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeExpired))

		got, findErr := s.store.FindByID(s.ctx, card.ID)
		s.Require().NoError(findErr)
		s.Equal(models.StatusActive, got.Status, "failed transition must not mutate")
	})

	s.Run("missing card", func() {
		err := s.service.BlockCard(s.ctx, id.NewCardID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CardServiceSuite) TestActivateCard() {
	s.Run("activates a blocked card", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000123412341234", 0)
		s.Require().NoError(s.service.BlockCard(s.ctx, card.ID))

		s.NoError(s.service.ActivateCard(s.ctx, card.ID))

		got, err := s.store.FindByID(s.ctx, card.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusActive, got.Status)

		events := s.publisher.Events()
		s.Equal(audit.EventCardActivated, events[len(events)-1].Action)
	})

	s.Run("activating an active card fails", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000111122223333", 0)

		err := s.service.ActivateCard(s.ctx, card.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("activating an expired blocked card fails", func() {
		holderID := s.knownHolder()
		card := s.createCard(holderID, "4000222233334444", 0)
		s.Require().NoError(s.service.BlockCard(s.ctx, card.ID))

		future := requestcontext.WithTime(context.Background(), time.Date(2028, time.January, 1, 0, 0, 0, 0, time.UTC))
		err := s.service.ActivateCard(future, card.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeExpired))
	})
}
