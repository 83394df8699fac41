package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

type PaymentRepository struct {
	conn uow.DBTX
}

func NewPaymentRepository(conn uow.DBTX) *PaymentRepository {
	return &PaymentRepository{conn: conn}
}

// ListByShop возвращает все оплаты по заказам магазина.
func (r *PaymentRepository) ListByShop(ctx context.Context, shopID int64) ([]domain.Payment, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT p.id, p.created_at, p.order_id, p.method, p.amount
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.shop_id = $1
		ORDER BY p.id`, shopID)
	if err != nil {
		return nil, convertErr(err, "listing payments for shopID %d", shopID)
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		p, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning payment")
		}
		result = append(result, *p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing payments for shopID %d", shopID)
	}
	return result, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var method, amount string
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.OrderID, &method, &amount); err != nil {
		return nil, err //nolint:wrapcheck
	}
	p.Method = domain.PaymentMethod(method)
	p.Amount = domain.EncryptedAmount(amount)
	return &p, nil
}
