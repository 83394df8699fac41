package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const walletTransactionInsert = `INSERT INTO wallet_transactions (customer_id, shop_id, order_id, type, amount)
	VALUES ($1, $2, $3, $4, $5)`

type WalletTransactionRepository struct {
	conn uow.DBTX
}

func NewWalletTransactionRepository(conn uow.DBTX) *WalletTransactionRepository {
	return &WalletTransactionRepository{conn: conn}
}

// BatchCreate вставляет записи одним батчем. fn вызывается для каждого элемента в порядке входного среза.
func (r *WalletTransactionRepository) BatchCreate(
	ctx context.Context,
	transactions []repoargs.WalletTransactionCreate,
	fn repoargs.BatchExecQueryRow,
) {
	if len(transactions) == 0 {
		return
	}

	batch := new(pgx.Batch)
	for _, t := range transactions {
		batch.Queue(walletTransactionInsert, t.CustomerID, t.ShopID, t.OrderID, string(t.Type), string(t.Amount))
	}

	results := r.conn.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i, t := range transactions {
		_, err := results.Exec()
		fn(i, convertErr(err, "creating wallet transaction customerID %d shopID %d", t.CustomerID, t.ShopID))
	}
}

// ListByWallet возвращает всю историю кошелька в порядке добавления.
func (r *WalletTransactionRepository) ListByWallet(
	ctx context.Context,
	customerID, shopID int64,
) ([]domain.WalletTransaction, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, created_at, customer_id, shop_id, order_id, type, amount
		FROM wallet_transactions
		WHERE customer_id = $1 AND shop_id = $2
		ORDER BY id`, customerID, shopID)
	if err != nil {
		return nil, convertErr(err, "listing wallet transactions customerID %d shopID %d", customerID, shopID)
	}
	defer rows.Close()

	var result []domain.WalletTransaction
	for rows.Next() {
		var t domain.WalletTransaction
		var tType, amount string
		if scanErr := rows.Scan(
			&t.ID, &t.CreatedAt, &t.CustomerID, &t.ShopID, &t.OrderID, &tType, &amount,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning wallet transaction")
		}
		t.Type = domain.WalletTransactionType(tType)
		t.Amount = domain.EncryptedAmount(amount)
		result = append(result, t)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing wallet transactions customerID %d shopID %d", customerID, shopID)
	}
	return result, nil
}
