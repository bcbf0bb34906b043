package handler

import (
	"net/http"
	"strconv"

	"cardledger/internal/card/models"
	"cardledger/internal/card/service"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
)

type createCardRequest struct {
	Number      string `json:"number"`
	Owner       string `json:"owner"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	Status      string `json:"status"`
	Balance     int64  `json:"balance"`
	HolderID    string `json:"holder_id"`
}

func (r createCardRequest) toSpec() (service.CreateCardSpec, error) {
	holderID, err := id.ParseHolderID(r.HolderID)
	if err != nil {
		return service.CreateCardSpec{}, err
	}
	status, ok := models.ParseStatus(r.Status)
	if !ok {
		return service.CreateCardSpec{}, dErrors.New(dErrors.CodeInvalidStatus, "unknown card status")
	}
	return service.CreateCardSpec{
		Number:      r.Number,
		Owner:       r.Owner,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		Status:      status,
		Balance:     r.Balance,
		HolderID:    holderID,
	}, nil
}

type transferRequest struct {
	FromCardID string `json:"from_card_id"`
	ToCardID   string `json:"to_card_id"`
	Amount     int64  `json:"amount"`
}

func (r transferRequest) parseIDs() (id.CardID, id.CardID, error) {
	fromID, err := id.ParseCardID(r.FromCardID)
	if err != nil {
		return id.CardID{}, id.CardID{}, err
	}
	toID, err := id.ParseCardID(r.ToCardID)
	if err != nil {
		return id.CardID{}, id.CardID{}, err
	}
	return fromID, toID, nil
}

// parseListQuery reads the optional status filter and 1-based page index.
func parseListQuery(r *http.Request) (*models.CardStatus, int, error) {
	var status *models.CardStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, ok := models.ParseStatus(raw)
		if !ok {
			return nil, 0, dErrors.New(dErrors.CodeInvalidArgument, "unknown status filter")
		}
		status = &parsed
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return nil, 0, dErrors.New(dErrors.CodeInvalidArgument, "page must be a positive integer")
		}
		page = parsed
	}
	return status, page, nil
}
