package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"cardledger/internal/card/models"
	"cardledger/internal/platform/crypto"
	id "cardledger/pkg/domain"
	dErrors "cardledger/pkg/domainerrors"
	"cardledger/pkg/sentinel"
)

// PostgresStore persists cards in the cards table. Card numbers are stored
// encrypted (number_enc) with a deterministic HMAC column (number_idx) for
// uniqueness and lookup; the raw number never reaches the database.
//
// Balance and status mutations run in transactions with row locks taken in
// deterministic order, and the schema's CHECK (balance >= 0) backstops the
// non-negativity invariant.
type PostgresStore struct {
	db     *sql.DB
	cipher crypto.Cipher
}

func NewPostgres(db *sql.DB, cipher crypto.Cipher) *PostgresStore {
	return &PostgresStore{db: db, cipher: cipher}
}

const cardColumns = `id, number_enc, owner, expiry_month, expiry_year, status, balance, holder_id, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, card *models.Card) error {
	enc, err := s.cipher.Encrypt(card.Number)
	if err != nil {
		return fmt.Errorf("encrypt card number: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cards (id, number_enc, number_idx, owner, expiry_month, expiry_year, status, balance, holder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(card.ID), enc, s.cipher.Index(card.Number), card.Owner,
		card.ExpiryMonth, card.ExpiryYear, string(card.Status), card.Balance,
		uuid.UUID(card.HolderID), card.CreatedAt, card.UpdatedAt)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, cardID id.CardID) (*models.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1`, uuid.UUID(cardID))
	return s.scanCard(row)
}

func (s *PostgresStore) NumberExists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM cards WHERE number_idx = $1)`,
		s.cipher.Index(number)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check card number: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) FindFirstByHolder(ctx context.Context, holderID id.HolderID) (*models.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE holder_id = $1 ORDER BY created_at, id LIMIT 1`,
		uuid.UUID(holderID))
	return s.scanCard(row)
}

func (s *PostgresStore) FindByHolder(ctx context.Context, holderID id.HolderID) ([]*models.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE holder_id = $1 ORDER BY created_at, id`,
		uuid.UUID(holderID))
	if err != nil {
		return nil, fmt.Errorf("list holder cards: %w", err)
	}
	return s.collectCards(rows)
}

func (s *PostgresStore) FindPageByHolder(ctx context.Context, holderID id.HolderID, status *models.CardStatus, page, size int) ([]*models.Card, error) {
	if page < 1 {
		return []*models.Card{}, nil
	}
	offset := (page - 1) * size

	var (
		rows *sql.Rows
		err  error
	)
	if status == nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+cardColumns+` FROM cards
			WHERE holder_id = $1
			ORDER BY created_at, id
			LIMIT $2 OFFSET $3
		`, uuid.UUID(holderID), size, offset)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+cardColumns+` FROM cards
			WHERE holder_id = $1 AND status = $2
			ORDER BY created_at, id
			LIMIT $3 OFFSET $4
		`, uuid.UUID(holderID), string(*status), size, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("page holder cards: %w", err)
	}
	return s.collectCards(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*models.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return s.collectCards(rows)
}

func (s *PostgresStore) Delete(ctx context.Context, cardID id.CardID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, uuid.UUID(cardID))
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Execute locks the row, runs validate against the current state, applies the
// mutation, and writes status and balance back in the same transaction. Any
// validation error rolls back with zero side effects.
func (s *PostgresStore) Execute(ctx context.Context, cardID id.CardID, validate func(*models.Card) error, apply func(*models.Card)) (card *models.Card, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	card, err = s.lockCard(ctx, tx, cardID)
	if err != nil {
		return nil, err
	}
	if err = validate(card); err != nil {
		return nil, err
	}
	apply(card)

	if _, err = tx.ExecContext(ctx, `
		UPDATE cards SET status = $2, balance = $3, updated_at = $4 WHERE id = $1
	`, uuid.UUID(card.ID), string(card.Status), card.Balance, card.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return card, nil
}

// Transfer moves funds between two of the holder's cards in one transaction.
// Rows are locked in ascending id order so two opposite transfers cannot
// deadlock. Endpoints missing from the holder's scope reach validate as nil;
// validate must reject them before the legs are applied.
func (s *PostgresStore) Transfer(ctx context.Context, holderID id.HolderID, intent models.TransferIntent, validate func(from, to *models.Card) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	first, second := intent.FromID, intent.ToID
	if second.String() < first.String() {
		first, second = second, first
	}
	locked := make(map[id.CardID]*models.Card, 2)
	for _, cardID := range []id.CardID{first, second} {
		c, lockErr := s.lockScopedCard(ctx, tx, holderID, cardID)
		if lockErr != nil {
			return lockErr
		}
		locked[cardID] = c
	}

	from, to := locked[intent.FromID], locked[intent.ToID]
	if err = validate(from, to); err != nil {
		return err
	}

	// The balance condition re-checks sufficiency at write time; with the row
	// already locked it can only fail if validate let an overdraw through.
	res, err := tx.ExecContext(ctx, `
		UPDATE cards SET balance = balance - $2, updated_at = now()
		WHERE id = $1 AND balance >= $2
	`, uuid.UUID(from.ID), intent.Amount)
	if err != nil {
		return fmt.Errorf("debit card: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return dErrors.New(dErrors.CodeInsufficientFunds, "insufficient funds")
	}
	if _, err = tx.ExecContext(ctx, `
		UPDATE cards SET balance = balance + $2, updated_at = now() WHERE id = $1
	`, uuid.UUID(to.ID), intent.Amount); err != nil {
		return fmt.Errorf("credit card: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) lockCard(ctx context.Context, tx *sql.Tx, cardID id.CardID) (*models.Card, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1 FOR UPDATE`, uuid.UUID(cardID))
	return s.scanCard(row)
}

// lockScopedCard returns nil (not an error) when the card is absent or owned
// by another holder, mirroring the memory store's scoping behavior.
func (s *PostgresStore) lockScopedCard(ctx context.Context, tx *sql.Tx, holderID id.HolderID, cardID id.CardID) (*models.Card, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = $1 AND holder_id = $2 FOR UPDATE`,
		uuid.UUID(cardID), uuid.UUID(holderID))
	card, err := s.scanCard(row)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	return card, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanCard(row rowScanner) (*models.Card, error) {
	var (
		card      models.Card
		rawID     uuid.UUID
		rawHolder uuid.UUID
		enc       string
		status    string
	)
	err := row.Scan(&rawID, &enc, &card.Owner, &card.ExpiryMonth, &card.ExpiryYear,
		&status, &card.Balance, &rawHolder, &card.CreatedAt, &card.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan card: %w", err)
	}
	number, err := s.cipher.Decrypt(enc)
	if err != nil {
		return nil, fmt.Errorf("decrypt card number: %w", err)
	}
	card.ID = id.CardID(rawID)
	card.HolderID = id.HolderID(rawHolder)
	card.Number = number
	card.Status = models.CardStatus(status)
	return &card, nil
}

func (s *PostgresStore) collectCards(rows *sql.Rows) ([]*models.Card, error) {
	defer rows.Close()
	out := []*models.Card{}
	for rows.Next() {
		card, err := s.scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
