package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const recurringPaymentColumns = `id, created_at, updated_at, shop_id, transaction_id, description, amount, frequency,
	next_date, category`

type RecurringPaymentRepository struct {
	conn uow.DBTX
}

func NewRecurringPaymentRepository(conn uow.DBTX) *RecurringPaymentRepository {
	return &RecurringPaymentRepository{conn: conn}
}

func (r *RecurringPaymentRepository) Create(
	ctx context.Context,
	args repoargs.RecurringPaymentCreate,
) (*domain.RecurringPayment, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO recurring_payments (shop_id, transaction_id, description, amount, frequency, next_date, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+recurringPaymentColumns,
		args.ShopID, args.TransactionID, args.Description, string(args.Amount),
		string(args.Frequency), args.NextDate, string(args.Category),
	)
	p, err := scanRecurringPayment(row)
	if err != nil {
		return nil, convertErr(err, "creating recurring payment for shopID %d", args.ShopID)
	}
	return p, nil
}

func (r *RecurringPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.RecurringPayment, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+recurringPaymentColumns+` FROM recurring_payments WHERE id = $1`, id)
	p, err := scanRecurringPayment(row)
	if err != nil {
		return nil, convertErr(err, "getting recurring payment by id %d", id)
	}
	return p, nil
}

func (r *RecurringPaymentRepository) ListByShop(ctx context.Context, shopID int64) ([]domain.RecurringPayment, error) {
	return r.list(ctx, `SELECT `+recurringPaymentColumns+` FROM recurring_payments
		WHERE shop_id = $1 ORDER BY next_date, id`, shopID)
}

// ListDue возвращает шаблоны, у которых next_date наступил к дате today.
func (r *RecurringPaymentRepository) ListDue(ctx context.Context, today time.Time) ([]domain.RecurringPayment, error) {
	return r.list(ctx, `SELECT `+recurringPaymentColumns+` FROM recurring_payments
		WHERE next_date <= $1 ORDER BY next_date, id`, today)
}

// AdvanceNextDate сдвигает next_date только если он все еще равен expected. Возвращает false, если шаблон уже
// был сдвинут кем-то другим.
func (r *RecurringPaymentRepository) AdvanceNextDate(
	ctx context.Context,
	id int64,
	expected time.Time,
	next time.Time,
) (bool, error) {
	tag, err := r.conn.Exec(ctx, `
		UPDATE recurring_payments SET next_date = $3, updated_at = NOW()
		WHERE id = $1 AND next_date = $2`,
		id, expected, next,
	)
	if err != nil {
		return false, convertErr(err, "advancing recurring payment %d", id)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RecurringPaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM recurring_payments WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting recurring payment %d", id)
	}
	return notFoundIfNoRows(tag, "deleting recurring payment %d", id)
}

func (r *RecurringPaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.RecurringPayment, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "listing recurring payments")
	}
	defer rows.Close()

	var result []domain.RecurringPayment
	for rows.Next() {
		p, scanErr := scanRecurringPayment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning recurring payment")
		}
		result = append(result, *p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing recurring payments")
	}
	return result, nil
}

func scanRecurringPayment(row pgx.Row) (*domain.RecurringPayment, error) {
	var p domain.RecurringPayment
	var amount, frequency, category string
	if err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.ShopID, &p.TransactionID, &p.Description,
		&amount, &frequency, &p.NextDate, &category,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.Amount = domain.EncryptedAmount(amount)
	p.Frequency = domain.Frequency(frequency)
	p.Category = domain.TransactionCategory(category)
	return &p, nil
}
