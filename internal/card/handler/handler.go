// Package handler exposes the card service over HTTP. Holder routes operate
// on the authenticated holder's own cards; admin routes manage any card and
// are gated by the role middleware upstream.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"cardledger/internal/card/models"
	"cardledger/internal/card/service"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/httputil"
	"cardledger/pkg/requestcontext"
)

// Service defines the card operations the transport layer consumes.
type Service interface {
	CreateCard(ctx context.Context, spec service.CreateCardSpec) (*models.Card, error)
	DeleteCard(ctx context.Context, cardID id.CardID) error
	BlockCard(ctx context.Context, cardID id.CardID) error
	ActivateCard(ctx context.Context, cardID id.CardID) error
	ListAll(ctx context.Context) ([]models.MaskedCard, error)
	ListAllByHolder(ctx context.Context, holderID id.HolderID) ([]models.MaskedCard, error)
	ListByHolder(ctx context.Context, holderID id.HolderID, status *models.CardStatus, page int) ([]models.MaskedCard, error)
	Transfer(ctx context.Context, holderID id.HolderID, fromID, toID id.CardID, amount int64) error
}

// Handler wires card endpoints to the card service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a card handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterHolderRoutes mounts the self-service endpoints. The auth middleware
// must already have resolved the holder.
func (h *Handler) RegisterHolderRoutes(r chi.Router) {
	r.Get("/cards", h.HandleListOwn)
	r.Post("/transfers", h.HandleTransfer)
}

// RegisterAdminRoutes mounts the management endpoints.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/cards", h.HandleListAll)
	r.Get("/holders/{holderID}/cards", h.HandleListByHolder)
	r.Post("/cards", h.HandleCreate)
	r.Delete("/cards/{cardID}", h.HandleDelete)
	r.Post("/cards/{cardID}/block", h.HandleBlock)
	r.Post("/cards/{cardID}/activate", h.HandleActivate)
}

// HandleListOwn handles GET /cards for the authenticated holder.
func (h *Handler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	holderID, ok := authenticatedHolder(w, ctx)
	if !ok {
		return
	}

	status, page, err := parseListQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cards, err := h.service.ListByHolder(ctx, holderID, status, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "list cards failed",
			"request_id", requestcontext.RequestID(ctx),
			"holder_id", holderID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Cards: cards, Page: page, PageSize: service.PageSize})
}

// HandleTransfer handles POST /transfers between two of the holder's cards.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	holderID, ok := authenticatedHolder(w, ctx)
	if !ok {
		return
	}

	req, ok := httputil.Decode[transferRequest](w, r)
	if !ok {
		return
	}
	fromID, toID, err := req.parseIDs()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Transfer(ctx, holderID, fromID, toID, req.Amount); err != nil {
		h.logger.WarnContext(ctx, "transfer rejected",
			"request_id", requestcontext.RequestID(ctx),
			"holder_id", holderID,
			"code", dErrors.CodeOf(err),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "transfer applied",
		"request_id", requestcontext.RequestID(ctx),
		"holder_id", holderID,
		"amount", req.Amount,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, transferResponse{Status: "completed"})
}

// HandleListAll handles GET /admin/cards.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cards, err := h.service.ListAll(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Cards: cards})
}

// HandleListByHolder handles GET /admin/holders/{holderID}/cards.
func (h *Handler) HandleListByHolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	holderID, err := id.ParseHolderID(chi.URLParam(r, "holderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cards, err := h.service.ListAllByHolder(ctx, holderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Cards: cards})
}

// HandleCreate handles POST /admin/cards.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.Decode[createCardRequest](w, r)
	if !ok {
		return
	}
	spec, err := req.toSpec()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	card, err := h.service.CreateCard(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "card creation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"holder_id", spec.HolderID,
			"code", dErrors.CodeOf(err),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "card created",
		"request_id", requestcontext.RequestID(ctx),
		"card_id", card.ID,
		"holder_id", card.HolderID,
	)
	httputil.WriteJSON(w, http.StatusCreated, card.Masked())
}

// HandleDelete handles DELETE /admin/cards/{cardID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, "card deleted", h.service.DeleteCard, http.StatusNoContent)
}

// HandleBlock handles POST /admin/cards/{cardID}/block.
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, "card blocked", h.service.BlockCard, http.StatusOK)
}

// HandleActivate handles POST /admin/cards/{cardID}/activate.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, "card activated", h.service.ActivateCard, http.StatusOK)
}

func (h *Handler) cardAction(w http.ResponseWriter, r *http.Request, logMsg string, action func(context.Context, id.CardID) error, successStatus int) {
	ctx := r.Context()
	cardID, err := id.ParseCardID(chi.URLParam(r, "cardID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := action(ctx, cardID); err != nil {
		h.logger.WarnContext(ctx, logMsg+" rejected",
			"request_id", requestcontext.RequestID(ctx),
			"card_id", cardID,
			"code", dErrors.CodeOf(err),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, logMsg,
		"request_id", requestcontext.RequestID(ctx),
		"card_id", cardID,
	)
	if successStatus == http.StatusNoContent {
		w.WriteHeader(successStatus)
		return
	}
	httputil.WriteJSON(w, successStatus, statusResponse{Status: "ok"})
}

func authenticatedHolder(w http.ResponseWriter, ctx context.Context) (id.HolderID, bool) {
	holderID := requestcontext.HolderID(ctx)
	if holderID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.HolderID{}, false
	}
	return holderID, true
}
