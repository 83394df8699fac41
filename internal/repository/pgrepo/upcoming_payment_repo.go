package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const upcomingPaymentColumns = `id, created_at, updated_at, shop_id, recurring_payment_id, description, amount,
	due_date, payment_type, is_priority, category`

type UpcomingPaymentRepository struct {
	conn uow.DBTX
}

func NewUpcomingPaymentRepository(conn uow.DBTX) *UpcomingPaymentRepository {
	return &UpcomingPaymentRepository{conn: conn}
}

func (r *UpcomingPaymentRepository) Create(
	ctx context.Context,
	args repoargs.UpcomingPaymentCreate,
) (*domain.UpcomingPayment, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO upcoming_payments
			(shop_id, recurring_payment_id, description, amount, due_date, payment_type, is_priority, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+upcomingPaymentColumns,
		args.ShopID, args.RecurringPaymentID, args.Description, string(args.Amount), args.DueDate,
		string(args.PaymentType), args.IsPriority, nullableCategory(args.Category),
	)
	p, err := scanUpcomingPayment(row)
	if err != nil {
		return nil, convertErr(err, "creating upcoming payment for shopID %d", args.ShopID)
	}
	return p, nil
}

func (r *UpcomingPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.UpcomingPayment, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+upcomingPaymentColumns+` FROM upcoming_payments WHERE id = $1`, id)
	p, err := scanUpcomingPayment(row)
	if err != nil {
		return nil, convertErr(err, "getting upcoming payment by id %d", id)
	}
	return p, nil
}

// GetByIDForUpdate блокирует строку, чтобы параллельная оплата того же платежа ждала завершения транзакции.
func (r *UpcomingPaymentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.UpcomingPayment, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+upcomingPaymentColumns+` FROM upcoming_payments WHERE id = $1 FOR UPDATE`, id)
	p, err := scanUpcomingPayment(row)
	if err != nil {
		return nil, convertErr(err, "locking upcoming payment by id %d", id)
	}
	return p, nil
}

// ListByShop возвращает платежи магазина: сначала приоритетные, затем по сроку.
func (r *UpcomingPaymentRepository) ListByShop(ctx context.Context, shopID int64) ([]domain.UpcomingPayment, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+upcomingPaymentColumns+` FROM upcoming_payments
		WHERE shop_id = $1 ORDER BY is_priority DESC, due_date, id`, shopID)
	if err != nil {
		return nil, convertErr(err, "listing upcoming payments for shopID %d", shopID)
	}
	defer rows.Close()

	var result []domain.UpcomingPayment
	for rows.Next() {
		p, scanErr := scanUpcomingPayment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning upcoming payment")
		}
		result = append(result, *p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing upcoming payments for shopID %d", shopID)
	}
	return result, nil
}

func (r *UpcomingPaymentRepository) Update(
	ctx context.Context,
	id int64,
	args repoargs.UpcomingPaymentUpdate,
) (*domain.UpcomingPayment, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE upcoming_payments
		SET description = $2, amount = $3, due_date = $4, payment_type = $5, is_priority = $6, category = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+upcomingPaymentColumns,
		id, args.Description, string(args.Amount), args.DueDate, string(args.PaymentType), args.IsPriority,
		nullableCategory(args.Category),
	)
	p, err := scanUpcomingPayment(row)
	if err != nil {
		return nil, convertErr(err, "updating upcoming payment %d", id)
	}
	return p, nil
}

func (r *UpcomingPaymentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM upcoming_payments WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting upcoming payment %d", id)
	}
	return notFoundIfNoRows(tag, "deleting upcoming payment %d", id)
}

func nullableCategory(c domain.TransactionCategory) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	return &s
}

func scanUpcomingPayment(row pgx.Row) (*domain.UpcomingPayment, error) {
	var p domain.UpcomingPayment
	var amount, paymentType string
	var category *string
	if err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.ShopID, &p.RecurringPaymentID, &p.Description,
		&amount, &p.DueDate, &paymentType, &p.IsPriority, &category,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.Amount = domain.EncryptedAmount(amount)
	p.PaymentType = domain.PaymentType(paymentType)
	if category != nil {
		p.Category = domain.TransactionCategory(*category)
	}
	return &p, nil
}
