package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const shopBalanceColumns = `id, created_at, updated_at, shop_id, cash_balance, card_balance, bank_balance,
	opening_cash, opening_card, opening_bank`

type ShopBalanceRepository struct {
	conn uow.DBTX
}

func NewShopBalanceRepository(conn uow.DBTX) *ShopBalanceRepository {
	return &ShopBalanceRepository{conn: conn}
}

func (r *ShopBalanceRepository) GetByShopID(ctx context.Context, shopID int64) (*domain.ShopBalance, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+shopBalanceColumns+` FROM shop_balances WHERE shop_id = $1`, shopID)
	balance, err := scanShopBalance(row)
	if err != nil {
		return nil, convertErr(err, "getting shop balance by shopID %d", shopID)
	}
	return balance, nil
}

// GetByShopIDForUpdate блокирует строку баланса до конца транзакции.
func (r *ShopBalanceRepository) GetByShopIDForUpdate(ctx context.Context, shopID int64) (*domain.ShopBalance, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+shopBalanceColumns+` FROM shop_balances WHERE shop_id = $1 FOR UPDATE`, shopID)
	balance, err := scanShopBalance(row)
	if err != nil {
		return nil, convertErr(err, "locking shop balance by shopID %d", shopID)
	}
	return balance, nil
}

func (r *ShopBalanceRepository) Create(
	ctx context.Context,
	args repoargs.ShopBalanceCreate,
) (*domain.ShopBalance, error) {
	row := r.conn.QueryRow(ctx, `
		INSERT INTO shop_balances (shop_id, cash_balance, card_balance, bank_balance,
		                           opening_cash, opening_card, opening_bank)
		VALUES ($1, $2, $3, $4, $2, $3, $4)
		RETURNING `+shopBalanceColumns,
		args.ShopID, string(args.CashBalance), string(args.CardBalance), string(args.BankBalance),
	)
	balance, err := scanShopBalance(row)
	if err != nil {
		return nil, convertErr(err, "creating shop balance for shopID %d", args.ShopID)
	}
	return balance, nil
}

func (r *ShopBalanceRepository) Update(
	ctx context.Context,
	args repoargs.ShopBalanceUpdate,
) (*domain.ShopBalance, error) {
	row := r.conn.QueryRow(ctx, `
		UPDATE shop_balances
		SET cash_balance = $2, card_balance = $3, bank_balance = $4, updated_at = NOW()
		WHERE shop_id = $1
		RETURNING `+shopBalanceColumns,
		args.ShopID, string(args.CashBalance), string(args.CardBalance), string(args.BankBalance),
	)
	balance, err := scanShopBalance(row)
	if err != nil {
		return nil, convertErr(err, "updating shop balance for shopID %d", args.ShopID)
	}
	return balance, nil
}

func scanShopBalance(row pgx.Row) (*domain.ShopBalance, error) {
	var b domain.ShopBalance
	var cash, card, bank, openingCash, openingCard, openingBank string
	err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt, &b.ShopID, &cash, &card, &bank,
		&openingCash, &openingCard, &openingBank)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	b.CashBalance = domain.EncryptedAmount(cash)
	b.CardBalance = domain.EncryptedAmount(card)
	b.BankBalance = domain.EncryptedAmount(bank)
	b.OpeningCash = domain.EncryptedAmount(openingCash)
	b.OpeningCard = domain.EncryptedAmount(openingCard)
	b.OpeningBank = domain.EncryptedAmount(openingBank)
	return &b, nil
}
