// Package store provides the CardStore implementations. The memory store
// backs unit tests and local runs; the postgres store is the production
// backend. Both expose the same atomic primitives (Execute, Transfer) so the
// service layer composes guards identically against either.
package store

import (
	"context"
	"sort"
	"sync"

	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	"cardledger/pkg/requestcontext"
	"cardledger/pkg/sentinel"
)

// InMemoryStore keeps cards in a map guarded by one mutex. Mutations run
// under the write lock, so Execute and Transfer are serializable by
// construction: two concurrent transfers sharing a card cannot both read a
// stale balance.
type InMemoryStore struct {
	mu       sync.RWMutex
	cards    map[id.CardID]*models.Card
	byNumber map[string]id.CardID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		cards:    make(map[id.CardID]*models.Card),
		byNumber: make(map[string]id.CardID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byNumber[card.Number]; taken {
		return sentinel.ErrConflict
	}
	s.cards[card.ID] = card.Clone()
	s.byNumber[card.Number] = card.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, cardID id.CardID) (*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if card, ok := s.cards[cardID]; ok {
		return card.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) NumberExists(_ context.Context, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.byNumber[number]
	return taken, nil
}

func (s *InMemoryStore) FindFirstByHolder(_ context.Context, holderID id.HolderID) (*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := s.holderCardsLocked(holderID)
	if len(cards) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return cards[0].Clone(), nil
}

func (s *InMemoryStore) FindByHolder(_ context.Context, holderID id.HolderID) ([]*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := s.holderCardsLocked(holderID)
	out := make([]*models.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (s *InMemoryStore) FindPageByHolder(_ context.Context, holderID id.HolderID, status *models.CardStatus, page, size int) ([]*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := s.holderCardsLocked(holderID)
	filtered := cards[:0:0]
	for _, c := range cards {
		if status == nil || c.Status == *status {
			filtered = append(filtered, c)
		}
	}

	from := (page - 1) * size
	if from < 0 || from >= len(filtered) {
		return []*models.Card{}, nil
	}
	to := from + size
	if to > len(filtered) {
		to = len(filtered)
	}

	out := make([]*models.Card, 0, to-from)
	for _, c := range filtered[from:to] {
		out = append(out, c.Clone())
	}
	return out, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Card, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c.Clone())
	}
	sortCards(out)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, cardID id.CardID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byNumber, card.Number)
	delete(s.cards, cardID)
	return nil
}

// Execute atomically runs validate then apply against the card, holding the
// store lock for the whole sequence. A validation error leaves the record
// untouched.
func (s *InMemoryStore) Execute(_ context.Context, cardID id.CardID, validate func(*models.Card) error, apply func(*models.Card)) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[cardID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(card); err != nil {
		return nil, err
	}
	apply(card)
	return card.Clone(), nil
}

// Transfer resolves both endpoints within the holder's scope, runs validate
// under the lock, then applies both legs as one unit. Endpoints outside the
// holder's scope surface to validate as nil, exactly like absent records.
func (s *InMemoryStore) Transfer(ctx context.Context, holderID id.HolderID, intent models.TransferIntent, validate func(from, to *models.Card) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.scopedLocked(holderID, intent.FromID)
	to := s.scopedLocked(holderID, intent.ToID)
	if err := validate(from, to); err != nil {
		return err
	}
	now := requestcontext.Now(ctx)
	from.Balance -= intent.Amount
	from.UpdatedAt = now
	to.Balance += intent.Amount
	to.UpdatedAt = now
	return nil
}

func (s *InMemoryStore) scopedLocked(holderID id.HolderID, cardID id.CardID) *models.Card {
	card, ok := s.cards[cardID]
	if !ok || card.HolderID != holderID {
		return nil
	}
	return card
}

func (s *InMemoryStore) holderCardsLocked(holderID id.HolderID) []*models.Card {
	var cards []*models.Card
	for _, c := range s.cards {
		if c.HolderID == holderID {
			cards = append(cards, c)
		}
	}
	sortCards(cards)
	return cards
}

// sortCards orders by creation time, then ID, so paging is stable.
func sortCards(cards []*models.Card) {
	sort.Slice(cards, func(i, j int) bool {
		if !cards[i].CreatedAt.Equal(cards[j].CreatedAt) {
			return cards[i].CreatedAt.Before(cards[j].CreatedAt)
		}
		return cards[i].ID.String() < cards[j].ID.String()
	})
}
