package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
)

type ShopBalanceRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*domain.ShopBalance, error)
	GetByShopIDForUpdate(ctx context.Context, shopID int64) (*domain.ShopBalance, error)
	Create(ctx context.Context, args repoargs.ShopBalanceCreate) (*domain.ShopBalance, error)
	Update(ctx context.Context, args repoargs.ShopBalanceUpdate) (*domain.ShopBalance, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context, filter repoargs.TransactionFilter) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type RecurringPaymentRepository interface {
	Create(ctx context.Context, args repoargs.RecurringPaymentCreate) (*domain.RecurringPayment, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringPayment, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.RecurringPayment, error)
	ListDue(ctx context.Context, today time.Time) ([]domain.RecurringPayment, error)
	AdvanceNextDate(ctx context.Context, id int64, expected time.Time, next time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type UpcomingPaymentRepository interface {
	Create(ctx context.Context, args repoargs.UpcomingPaymentCreate) (*domain.UpcomingPayment, error)
	GetByID(ctx context.Context, id int64) (*domain.UpcomingPayment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.UpcomingPayment, error)
	ListByShop(ctx context.Context, shopID int64) ([]domain.UpcomingPayment, error)
	Update(ctx context.Context, id int64, args repoargs.UpcomingPaymentUpdate) (*domain.UpcomingPayment, error)
	Delete(ctx context.Context, id int64) error
}

type WalletRepository interface {
	Get(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error)
	GetForUpdate(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error)
	GetOrCreateForUpdate(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error)
	UpdateBalance(ctx context.Context, args repoargs.WalletBalanceUpdate) error
	ListByShopWithCustomer(ctx context.Context, shopID int64) ([]domain.WalletWithCustomer, error)
	ShopIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error)
}

type WalletTransactionRepository interface {
	BatchCreate(
		ctx context.Context,
		transactions []repoargs.WalletTransactionCreate,
		fn repoargs.BatchExecQueryRow,
	)
	ListByWallet(ctx context.Context, customerID, shopID int64) ([]domain.WalletTransaction, error)
}

type OrderRepository interface {
	ListCompletedByCustomerShop(ctx context.Context, customerID, shopID int64) ([]domain.Order, error)
	ShopIDsByCustomer(ctx context.Context, customerID int64) ([]int64, error)
}

type PaymentRepository interface {
	ListByShop(ctx context.Context, shopID int64) ([]domain.Payment, error)
}

type ProcessedEventRepository interface {
	MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error)
}
