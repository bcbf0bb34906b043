// Package service implements the card façade: creation, lifecycle, listing,
// and the transfer engine. All balance- and status-changing operations funnel
// through the guard pipeline inside the store's atomic primitives, so no
// operation can bypass an expiry or status check.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cardledger/internal/audit"
	"cardledger/internal/card/models"
	"cardledger/internal/platform/metrics"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/sentinel"
)

// PageSize is the fixed page size for holder card listings. Page indexes are
// 1-based; out-of-range pages yield an empty result, not an error.
const PageSize = 2

// Store is the persistence capability the card core consumes.
// Implementations return pkg/sentinel errors for infrastructure facts and
// guarantee that Execute and Transfer are atomic per the records they touch.
type Store interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, cardID id.CardID) (*models.Card, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	FindFirstByHolder(ctx context.Context, holderID id.HolderID) (*models.Card, error)
	FindByHolder(ctx context.Context, holderID id.HolderID) ([]*models.Card, error)
	FindPageByHolder(ctx context.Context, holderID id.HolderID, status *models.CardStatus, page, size int) ([]*models.Card, error)
	ListAll(ctx context.Context) ([]*models.Card, error)
	Delete(ctx context.Context, cardID id.CardID) error
	Execute(ctx context.Context, cardID id.CardID, validate func(*models.Card) error, apply func(*models.Card)) (*models.Card, error)
	Transfer(ctx context.Context, holderID id.HolderID, intent models.TransferIntent, validate func(from, to *models.Card) error) error
}

// HolderDirectory resolves account holders.
type HolderDirectory interface {
	ExistsByID(ctx context.Context, holderID id.HolderID) (bool, error)
}

// DeletionGuard lets an external workflow domain veto card deletion. The
// ticket system registers one so cards with open tickets cannot be removed.
type DeletionGuard interface {
	CanDelete(ctx context.Context, cardID id.CardID) error
}

// ListingCache caches masked listing pages. Mutations invalidate per holder.
type ListingCache interface {
	GetPage(ctx context.Context, holderID id.HolderID, key string) ([]models.MaskedCard, bool)
	SetPage(ctx context.Context, holderID id.HolderID, key string, cards []models.MaskedCard)
	Invalidate(ctx context.Context, holderID id.HolderID)
}

// Service orchestrates card operations. Construct with New; the zero value is
// not usable.
type Service struct {
	store         Store
	holders       HolderDirectory
	deletionGuard DeletionGuard
	cache         ListingCache
	logger        *slog.Logger
	metrics       *metrics.Metrics
	auditSink     audit.Publisher
	tracer        trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(s *Service) { s.auditSink = publisher }
}

func WithDeletionGuard(g DeletionGuard) Option {
	return func(s *Service) { s.deletionGuard = g }
}

func WithListingCache(c ListingCache) Option {
	return func(s *Service) { s.cache = c }
}

func New(store Store, holders HolderDirectory, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("card store is required")
	}
	if holders == nil {
		return nil, errors.New("holder directory is required")
	}
	s := &Service{
		store:   store,
		holders: holders,
		tracer:  otel.Tracer("cardledger/card"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// wrapCardErr translates store sentinels into coded errors and passes coded
// errors through untouched.
func wrapCardErr(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "card not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeAlreadyExists, "card number already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "card operation failed")
	}
}

func (s *Service) span(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}

func (s *Service) invalidateListings(ctx context.Context, holderID id.HolderID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, holderID)
	}
}
