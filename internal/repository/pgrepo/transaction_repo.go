package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const transactionColumns = `id, created_at, updated_at, shop_id, description, amount, date, type, category, is_recurring`

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (r *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.TransactionCreate,
) (*domain.Transaction, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO transactions (shop_id, description, amount, date, type, category, is_recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		args.ShopID, args.Description, string(args.Amount), args.Date,
		string(args.Type), string(args.Category), args.IsRecurring,
	)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating transaction for shopID %d", args.ShopID)
	}
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "getting transaction by id %d", id)
	}
	return t, nil
}

// List возвращает записи журнала магазина, отсортированные по дате по возрастанию.
func (r *TransactionRepository) List(
	ctx context.Context,
	filter repoargs.TransactionFilter,
) ([]domain.Transaction, error) {
	conditions := []string{"shop_id = $1"}
	args := []any{filter.ShopID}

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date, id`

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "listing transactions for shopID %d", filter.ShopID)
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning transaction")
		}
		result = append(result, *t)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing transactions for shopID %d", filter.ShopID)
	}
	return result, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting transaction %d", id)
	}
	return notFoundIfNoRows(tag, "deleting transaction %d", id)
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount, tType, category string
	if err := row.Scan(
		&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.ShopID, &t.Description,
		&amount, &t.Date, &tType, &category, &t.IsRecurring,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	t.Amount = domain.EncryptedAmount(amount)
	t.Type = domain.TransactionType(tType)
	t.Category = domain.TransactionCategory(category)
	return &t, nil
}
