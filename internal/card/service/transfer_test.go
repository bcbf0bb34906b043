package service

import (
	"context"
	"sync"
	"time"

	"cardledger/internal/audit"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/requestcontext"
)

func (s *CardServiceSuite) balanceOf(cardID id.CardID) int64 {
	card, err := s.store.FindByID(s.ctx, cardID)
	s.Require().NoError(err)
	return card.Balance
}

func (s *CardServiceSuite) TestTransfer() {
	s.Run("moves funds between the holder's cards", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000001", 1_000)
		to := s.createCard(holderID, "4000000000000002", 500)

		s.NoError(s.service.Transfer(s.ctx, holderID, from.ID, to.ID, 300))

		s.Equal(int64(700), s.balanceOf(from.ID))
		s.Equal(int64(800), s.balanceOf(to.ID))

		events := s.publisher.Events()
		last := events[len(events)-1]
		s.Equal(audit.EventTransferApplied, last.Action)
		s.Equal(from.ID, last.CardID)
		s.Equal(to.ID, last.PeerID)
		s.Equal(int64(300), last.Amount)
	})

	s.Run("insufficient funds leaves both balances untouched", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000011", 100)
		to := s.createCard(holderID, "4000000000000012", 0)

		err := s.service.Transfer(s.ctx, holderID, from.ID, to.ID, 101)
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFunds))

		s.Equal(int64(100), s.balanceOf(from.ID))
		s.Equal(int64(0), s.balanceOf(to.ID))
	})

	s.Run("blocked source is rejected", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000021", 1_000)
		to := s.createCard(holderID, "4000000000000022", 0)
		s.Require().NoError(s.service.BlockCard(s.ctx, from.ID))

		err := s.service.Transfer(s.ctx, holderID, from.ID, to.ID, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
	})

	s.Run("blocked destination is rejected", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000031", 1_000)
		to := s.createCard(holderID, "4000000000000032", 0)
		s.Require().NoError(s.service.BlockCard(s.ctx, to.ID))

		err := s.service.Transfer(s.ctx, holderID, from.ID, to.ID, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidStatus))
		s.Equal(int64(1_000), s.balanceOf(from.ID))
	})

	s.Run("expired endpoint is rejected", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000041", 1_000)
		to := s.createCard(holderID, "4000000000000042", 0)

		future := requestcontext.WithTime(context.Background(), time.Date(2028, time.January, 1, 0, 0, 0, 0, time.UTC))
		err := s.service.Transfer(future, holderID, from.ID, to.ID, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeExpired))
		s.Equal(int64(1_000), s.balanceOf(from.ID))
	})

	s.Run("same card on both ends", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000051", 1_000)

		err := s.service.Transfer(s.ctx, holderID, from.ID, from.ID, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	s.Run("non-positive amount", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000061", 1_000)
		to := s.createCard(holderID, "4000000000000062", 0)

		for _, amount := range []int64{0, -100} {
			err := s.service.Transfer(s.ctx, holderID, from.ID, to.ID, amount)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidArgument))
		}
	})

	s.Run("another holder's card reads as not found", func() {
		ownerID := s.knownHolder()
		thiefID := s.knownHolder()
		from := s.createCard(ownerID, "4000000000000071", 1_000)
		mine := s.createCard(thiefID, "4000000000000072", 0)

		err := s.service.Transfer(s.ctx, thiefID, from.ID, mine.ID, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(int64(1_000), s.balanceOf(from.ID))
	})

	s.Run("missing endpoint reads as not found", func() {
		holderID := s.knownHolder()
		from := s.createCard(holderID, "4000000000000081", 1_000)

		err := s.service.Transfer(s.ctx, holderID, from.ID, id.NewCardID(), 100)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// Funds are conserved across any interleaving of transfers between the
// holder's cards.
func (s *CardServiceSuite) TestTransferConservation() {
	holderID := s.knownHolder()
	a := s.createCard(holderID, "4000000000000001", 10_000)
	b := s.createCard(holderID, "4000000000000002", 10_000)
	c := s.createCard(holderID, "4000000000000003", 10_000)

	var wg sync.WaitGroup
	legs := []struct {
		from, to id.CardID
	}{
		{a.ID, b.ID}, {b.ID, c.ID}, {c.ID, a.ID}, {a.ID, c.ID}, {b.ID, a.ID},
	}
	for i := 0; i < 20; i++ {
		leg := legs[i%len(legs)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Overdraw attempts are acceptable; they must simply not commit.
			_ = s.service.Transfer(s.ctx, holderID, leg.from, leg.to, 1_500)
		}()
	}
	wg.Wait()

	total := s.balanceOf(a.ID) + s.balanceOf(b.ID) + s.balanceOf(c.ID)
	s.Equal(int64(30_000), total)
	for _, cardID := range []id.CardID{a.ID, b.ID, c.ID} {
		s.GreaterOrEqual(s.balanceOf(cardID), int64(0))
	}
}
