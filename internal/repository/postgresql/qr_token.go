package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
)

type qrTokenRepository struct {
	db *database.DB
}

func NewQRTokenRepository(db *database.DB) qrtoken.TokenRepository {
	return &qrTokenRepository{db: db}
}

const qrTokenColumns = `id, month_year, token, is_active, expires_at, created_by, created_at`

func scanQRToken(row pgx.Row) (qrtoken.Token, error) {
	var t qrtoken.Token
	err := row.Scan(
		&t.ID, &t.MonthYear, &t.Token, &t.IsActive, &t.ExpiresAt, &t.CreatedBy, &t.CreatedAt,
	)
	return t, err
}

// GetActiveByMonth implements qrtoken.TokenRepository.
func (r *qrTokenRepository) GetActiveByMonth(ctx context.Context, monthYear string) (*qrtoken.Token, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + qrTokenColumns + `
		FROM attendance_qr_tokens
		WHERE month_year = $1 AND is_active
		LIMIT 1
	`

	t, err := scanQRToken(q.QueryRow(ctx, query, monthYear))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active token: %w", err)
	}

	return &t, nil
}

// GetByValue implements qrtoken.TokenRepository.
func (r *qrTokenRepository) GetByValue(ctx context.Context, value string) (*qrtoken.Token, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + qrTokenColumns + `
		FROM attendance_qr_tokens
		WHERE token = $1
	`

	t, err := scanQRToken(q.QueryRow(ctx, query, value))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token by value: %w", err)
	}

	return &t, nil
}

// Rotate implements qrtoken.TokenRepository. Deactivation and insertion run
// in one transaction; the partial unique index on (month_year) WHERE
// is_active rejects any interleaving that would leave two active tokens.
func (r *qrTokenRepository) Rotate(ctx context.Context, token qrtoken.Token) (qrtoken.Token, error) {
	var created qrtoken.Token

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		_, err := q.Exec(txCtx,
			`UPDATE attendance_qr_tokens SET is_active = FALSE WHERE month_year = $1 AND is_active`,
			token.MonthYear,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate tokens: %w", err)
		}

		query := `
			INSERT INTO attendance_qr_tokens (month_year, token, is_active, expires_at, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		created = token
		err = q.QueryRow(txCtx, query,
			token.MonthYear, token.Token, token.IsActive, token.ExpiresAt, token.CreatedBy,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create token: %w", err)
		}

		return nil
	})
	if err != nil {
		return qrtoken.Token{}, err
	}

	return created, nil
}
