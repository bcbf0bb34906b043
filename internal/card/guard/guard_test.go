package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardledger/internal/card/models"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func card(t *testing.T, status models.CardStatus, balance int64) *models.Card {
	t.Helper()
	c, err := models.NewCard(id.NewCardID(), "4000123412341234", "IVAN PETROV",
		12, 2027, status, balance, id.NewHolderID(), now)
	require.NoError(t, err)
	return c
}

func TestIDsDiffer(t *testing.T) {
	a, b := id.NewCardID(), id.NewCardID()
	assert.NoError(t, IDsDiffer(a, b))
	assert.True(t, dErrors.HasCode(IDsDiffer(a, a), dErrors.CodeInvalidArgument))
}

func TestAmountPositive(t *testing.T) {
	assert.NoError(t, AmountPositive(1))
	assert.True(t, dErrors.HasCode(AmountPositive(0), dErrors.CodeInvalidArgument))
	assert.True(t, dErrors.HasCode(AmountPositive(-5), dErrors.CodeInvalidArgument))
}

func TestExists(t *testing.T) {
	assert.NoError(t, Exists(card(t, models.StatusActive, 0)))
	assert.True(t, dErrors.HasCode(Exists(nil), dErrors.CodeNotFound))
}

func TestNumberAvailable(t *testing.T) {
	assert.NoError(t, NumberAvailable(false))
	assert.True(t, dErrors.HasCode(NumberAvailable(true), dErrors.CodeAlreadyExists))
}

func TestOwnerMatch(t *testing.T) {
	t.Run("first card sets the owner freely", func(t *testing.T) {
		assert.NoError(t, OwnerMatch("IVAN PETROV", "", false))
	})

	t.Run("subsequent cards must match", func(t *testing.T) {
		assert.NoError(t, OwnerMatch("IVAN PETROV", "IVAN PETROV", true))
		err := OwnerMatch("PETR IVANOV", "IVAN PETROV", true)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeOwnerMismatch))
	})
}

func TestSufficientBalance(t *testing.T) {
	c := card(t, models.StatusActive, 100)
	assert.NoError(t, SufficientBalance(c, 100))
	assert.True(t, dErrors.HasCode(SufficientBalance(c, 101), dErrors.CodeInsufficientFunds))
}

func TestStatusGuards(t *testing.T) {
	active := card(t, models.StatusActive, 0)
	blocked := card(t, models.StatusBlocked, 0)

	assert.NoError(t, StatusIs(active, models.StatusActive))
	assert.True(t, dErrors.HasCode(StatusIs(blocked, models.StatusActive), dErrors.CodeInvalidStatus))

	assert.NoError(t, StatusIsNot(active, models.StatusBlocked))
	assert.True(t, dErrors.HasCode(StatusIsNot(blocked, models.StatusBlocked), dErrors.CodeInvalidStatus))
}

func TestNotExpired(t *testing.T) {
	c := card(t, models.StatusActive, 0)
	c.ExpiryMonth, c.ExpiryYear = 6, 2025

	assert.NoError(t, NotExpired(c, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)))
	err := NotExpired(c, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeExpired))
}
