package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"cardledger/internal/card/models"
	"cardledger/internal/card/service"
	"cardledger/internal/card/store"
	"cardledger/internal/holder"
	id "cardledger/pkg/domain"
	"cardledger/pkg/testutil"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// CardHandlerSuite exercises the HTTP layer against real in-memory backends.
// Auth middleware is bypassed; the suite injects the resolved holder directly,
// the way the middleware would.
type CardHandlerSuite struct {
	suite.Suite
	store    *store.InMemoryStore
	holders  *holder.InMemoryDirectory
	service  *service.Service
	router   http.Handler
	holderID id.HolderID
	adminID  id.HolderID
}

func TestCardHandlerSuite(t *testing.T) {
	suite.Run(t, new(CardHandlerSuite))
}

func (s *CardHandlerSuite) SetupTest() {
	ctx := context.Background()
	s.store = store.NewInMemoryStore()
	s.holders = holder.NewInMemoryDirectory()
	s.holderID = id.NewHolderID()
	s.adminID = id.NewHolderID()
	s.Require().NoError(s.holders.Save(ctx, holder.Holder{ID: s.holderID, Username: "demo", Role: holder.RoleHolder}))
	s.Require().NoError(s.holders.Save(ctx, holder.Holder{ID: s.adminID, Username: "admin", Role: holder.RoleAdmin}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.service, err = service.New(s.store, s.holders, service.WithLogger(logger))
	s.Require().NoError(err)

	h := New(s.service, logger)
	r := chi.NewRouter()
	h.RegisterHolderRoutes(r)
	r.Route("/admin", func(r chi.Router) {
		h.RegisterAdminRoutes(r)
	})
	s.router = r
}

func (s *CardHandlerSuite) createCard(number string, balance int64) models.MaskedCard {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards", map[string]any{
		"number":       number,
		"owner":        "IVAN PETROV",
		"expiry_month": 12,
		"expiry_year":  2027,
		"status":       "ACTIVE",
		"balance":      balance,
		"holder_id":    s.holderID.String(),
	})
	rr := testutil.DoRequest(s.router, testutil.AsAdmin(testutil.AtTime(req, testNow), s.adminID))
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	return testutil.DecodeResponse[models.MaskedCard](s.T(), rr)
}

func (s *CardHandlerSuite) TestCreateCard() {
	s.Run("returns the masked projection", func() {
		card := s.createCard("4000123412341234", 5_000)
		s.Equal("**** **** **** 1234", card.MaskedNumber)
		s.Equal(int64(5_000), card.Balance)
	})

	s.Run("duplicate number conflicts", func() {
		s.createCard("4000111122223333", 0)
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards", map[string]any{
			"number":       "4000111122223333",
			"owner":        "IVAN PETROV",
			"expiry_month": 12,
			"expiry_year":  2027,
			"status":       "ACTIVE",
			"holder_id":    s.holderID.String(),
		})
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(testutil.AtTime(req, testNow), s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusConflict, "already_exists")
	})

	s.Run("unknown status", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards", map[string]any{
			"number":       "4000999988887777",
			"owner":        "IVAN PETROV",
			"expiry_month": 12,
			"expiry_year":  2027,
			"status":       "FROZEN",
			"holder_id":    s.holderID.String(),
		})
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusConflict, "invalid_status")
	})

	s.Run("malformed body", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards", nil)
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})
}

func (s *CardHandlerSuite) TestLifecycleRoutes() {
	card := s.createCard("4000123412341234", 0)

	s.Run("block then activate", func() {
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/"+card.ID+"/block", nil), s.adminID))
		s.Equal(http.StatusOK, rr.Code, rr.Body.String())

		rr = testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/"+card.ID+"/activate", nil), s.adminID))
		s.Equal(http.StatusOK, rr.Code, rr.Body.String())
	})

	s.Run("double block conflicts", func() {
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/"+card.ID+"/block", nil), s.adminID))
		s.Equal(http.StatusOK, rr.Code)

		rr = testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/"+card.ID+"/block", nil), s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusConflict, "invalid_status")
	})

	s.Run("malformed card id", func() {
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/not-a-uuid/block", nil), s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})

	s.Run("unknown card", func() {
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(
			testutil.NewJSONRequest(s.T(), http.MethodPost, "/admin/cards/"+id.NewCardID().String()+"/block", nil), s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *CardHandlerSuite) TestDeleteRoute() {
	card := s.createCard("4000123412341234", 0)

	rr := testutil.DoRequest(s.router, testutil.AsAdmin(
		testutil.NewJSONRequest(s.T(), http.MethodDelete, "/admin/cards/"+card.ID, nil), s.adminID))
	s.Equal(http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(s.router, testutil.AsAdmin(
		testutil.NewJSONRequest(s.T(), http.MethodDelete, "/admin/cards/"+card.ID, nil), s.adminID))
	testutil.AssertErrorResponse(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *CardHandlerSuite) TestListOwnCards() {
	for _, number := range []string{"4000000000000001", "4000000000000002", "4000000000000003"} {
		s.createCard(number, 0)
	}

	s.Run("first page", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/cards?page=1", nil)
		rr := testutil.DoRequest(s.router, testutil.AsHolder(req, s.holderID))
		s.Equal(http.StatusOK, rr.Code)

		resp := testutil.DecodeResponse[struct {
			Cards    []models.MaskedCard `json:"cards"`
			Page     int                 `json:"page"`
			PageSize int                 `json:"page_size"`
		}](s.T(), rr)
		s.Len(resp.Cards, 2)
		s.Equal(1, resp.Page)
		s.Equal(service.PageSize, resp.PageSize)
	})

	s.Run("out-of-range page is empty", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/cards?page=7", nil)
		rr := testutil.DoRequest(s.router, testutil.AsHolder(req, s.holderID))
		s.Equal(http.StatusOK, rr.Code)

		resp := testutil.DecodeResponse[struct {
			Cards []models.MaskedCard `json:"cards"`
		}](s.T(), rr)
		s.Empty(resp.Cards)
	})

	s.Run("invalid page", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/cards?page=0", nil)
		rr := testutil.DoRequest(s.router, testutil.AsHolder(req, s.holderID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})

	s.Run("invalid status filter", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/cards?status=FROZEN", nil)
		rr := testutil.DoRequest(s.router, testutil.AsHolder(req, s.holderID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})

	s.Run("unauthenticated request is rejected", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/cards", nil)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertErrorResponse(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *CardHandlerSuite) TestTransferRoute() {
	from := s.createCard("4000000000000001", 1_000)
	to := s.createCard("4000000000000002", 0)

	transfer := func(fromID, toID string, amount int64) *http.Request {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/transfers", map[string]any{
			"from_card_id": fromID,
			"to_card_id":   toID,
			"amount":       amount,
		})
		return testutil.AsHolder(testutil.AtTime(req, testNow), s.holderID)
	}

	s.Run("success", func() {
		rr := testutil.DoRequest(s.router, transfer(from.ID, to.ID, 300))
		s.Equal(http.StatusOK, rr.Code, rr.Body.String())
	})

	s.Run("insufficient funds", func() {
		rr := testutil.DoRequest(s.router, transfer(from.ID, to.ID, 100_000))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusUnprocessableEntity, "insufficient_funds")
	})

	s.Run("same endpoints", func() {
		rr := testutil.DoRequest(s.router, transfer(from.ID, from.ID, 100))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})

	s.Run("foreign card", func() {
		stranger := id.NewHolderID()
		s.Require().NoError(s.holders.Save(context.Background(), holder.Holder{ID: stranger, Username: "other", Role: holder.RoleHolder}))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/transfers", map[string]any{
			"from_card_id": from.ID,
			"to_card_id":   to.ID,
			"amount":       100,
		})
		rr := testutil.DoRequest(s.router, testutil.AsHolder(testutil.AtTime(req, testNow), stranger))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *CardHandlerSuite) TestListAllRoute() {
	s.createCard("4000000000000001", 0)
	s.createCard("4000000000000002", 0)

	req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/cards", nil)
	rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
	s.Equal(http.StatusOK, rr.Code)

	resp := testutil.DecodeResponse[struct {
		Cards []models.MaskedCard `json:"cards"`
	}](s.T(), rr)
	s.Len(resp.Cards, 2)
}

func (s *CardHandlerSuite) TestListByHolderRoute() {
	s.createCard("4000000000000001", 0)
	s.createCard("4000000000000002", 0)
	s.createCard("4000000000000003", 0)

	s.Run("all cards of the holder", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/holders/"+s.holderID.String()+"/cards", nil)
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
		s.Equal(http.StatusOK, rr.Code, rr.Body.String())

		resp := testutil.DecodeResponse[struct {
			Cards []models.MaskedCard `json:"cards"`
		}](s.T(), rr)
		s.Len(resp.Cards, 3)
	})

	s.Run("unknown holder", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/holders/"+id.NewHolderID().String()+"/cards", nil)
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("malformed holder id", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/admin/holders/not-a-uuid/cards", nil)
		rr := testutil.DoRequest(s.router, testutil.AsAdmin(req, s.adminID))
		testutil.AssertErrorResponse(s.T(), rr, http.StatusBadRequest, "invalid_argument")
	})
}
