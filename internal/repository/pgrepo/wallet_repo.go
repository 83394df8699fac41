package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const walletColumns = `w.id, w.created_at, w.updated_at, w.customer_id, w.shop_id, w.balance, w.loyalty_points`

type WalletRepository struct {
	conn uow.DBTX
}

func NewWalletRepository(conn uow.DBTX) *WalletRepository {
	return &WalletRepository{conn: conn}
}

func (r *WalletRepository) Get(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM customer_wallets w
		WHERE w.customer_id = $1 AND w.shop_id = $2`, customerID, shopID)
	w, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "getting wallet customerID %d shopID %d", customerID, shopID)
	}
	return w, nil
}

// GetForUpdate блокирует строку кошелька до конца транзакции.
func (r *WalletRepository) GetForUpdate(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+walletColumns+` FROM customer_wallets w
		WHERE w.customer_id = $1 AND w.shop_id = $2 FOR UPDATE`, customerID, shopID)
	w, err := scanWallet(row)
	if err != nil {
		return nil, convertErr(err, "locking wallet customerID %d shopID %d", customerID, shopID)
	}
	return w, nil
}

// GetOrCreateForUpdate создает пустой кошелек при первом обращении и блокирует его строку. Параллельное создание
// не приводит к ошибке дубликата.
func (r *WalletRepository) GetOrCreateForUpdate(
	ctx context.Context,
	customerID, shopID int64,
) (*domain.CustomerWallet, error) {
	if _, err := r.conn.Exec(ctx, `
		INSERT INTO customer_wallets (customer_id, shop_id) VALUES ($1, $2)
		ON CONFLICT (customer_id, shop_id) DO NOTHING`, customerID, shopID); err != nil {
		return nil, convertErr(err, "creating wallet customerID %d shopID %d", customerID, shopID)
	}
	return r.GetForUpdate(ctx, customerID, shopID)
}

func (r *WalletRepository) UpdateBalance(ctx context.Context, args repoargs.WalletBalanceUpdate) error {
	tag, err := r.conn.Exec(ctx, `
		UPDATE customer_wallets SET balance = $2, loyalty_points = $3, updated_at = NOW()
		WHERE id = $1`, args.ID, string(args.Balance), string(args.LoyaltyPoints))
	if err != nil {
		return convertErr(err, "updating wallet %d balance", args.ID)
	}
	return notFoundIfNoRows(tag, "updating wallet %d balance", args.ID)
}

// ListByShopWithCustomer возвращает все кошельки магазина вместе с именами владельцев.
func (r *WalletRepository) ListByShopWithCustomer(
	ctx context.Context,
	shopID int64,
) ([]domain.WalletWithCustomer, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+walletColumns+`, COALESCE(c.name, '')
		FROM customer_wallets w
		LEFT JOIN customers c ON c.id = w.customer_id
		WHERE w.shop_id = $1
		ORDER BY w.customer_id`, shopID)
	if err != nil {
		return nil, convertErr(err, "listing wallets for shopID %d", shopID)
	}
	defer rows.Close()

	var result []domain.WalletWithCustomer
	for rows.Next() {
		var item domain.WalletWithCustomer
		var balance, points string
		if scanErr := rows.Scan(
			&item.ID, &item.CreatedAt, &item.UpdatedAt, &item.CustomerID, &item.ShopID,
			&balance, &points, &item.CustomerName,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning wallet")
		}
		item.Balance = domain.EncryptedAmount(balance)
		item.LoyaltyPoints = domain.EncryptedAmount(points)
		result = append(result, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing wallets for shopID %d", shopID)
	}
	return result, nil
}

func (r *WalletRepository) ShopIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error) {
	return collectIDs(ctx, r.conn,
		`SELECT shop_id FROM customer_wallets WHERE customer_id = $1 ORDER BY shop_id`, customerID)
}

func scanWallet(row pgx.Row) (*domain.CustomerWallet, error) {
	var w domain.CustomerWallet
	var balance, points string
	if err := row.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt, &w.CustomerID, &w.ShopID, &balance, &points); err != nil {
		return nil, err //nolint:wrapcheck
	}
	w.Balance = domain.EncryptedAmount(balance)
	w.LoyaltyPoints = domain.EncryptedAmount(points)
	return &w, nil
}

// collectIDs выполняет запрос, возвращающий одну колонку BIGINT.
func collectIDs(ctx context.Context, conn uow.DBTX, query string, args ...any) ([]int64, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "collecting ids")
	}
	ids, collectErr := pgx.CollectRows(rows, pgx.RowTo[int64])
	if collectErr != nil {
		return nil, convertErr(collectErr, "collecting ids")
	}
	return ids, nil
}
