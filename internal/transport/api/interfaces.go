package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/internal/service"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
type BalanceServicer interface {
	GetShopBalance(ctx context.Context, shopID int64) (*service.ShopBalanceReport, error)
	OpenShopBalance(ctx context.Context, shopID int64, cash, card, bank decimal.Decimal) (*service.ShopBalanceView, error)
}

type WalletServicer interface {
	GetOrderHistory(ctx context.Context, customerID, shopID int64) (*service.OrderHistory, error)
	GetHistoryForAllShops(ctx context.Context, requesterID, customerID int64) ([]service.ShopOrderHistory, error)
	GetCustomerDuesAsAssets(ctx context.Context, shopID int64) (*service.CustomerDues, error)
	GetWarranties(ctx context.Context, customerID, shopID int64) ([]service.WarrantyView, error)
	PayDue(
		ctx context.Context,
		customerID, shopID int64,
		amount decimal.Decimal,
		date time.Time,
	) (*service.WalletView, error)
}

type LedgerServicer interface {
	CreateTransaction(ctx context.Context, in service.CreateTransactionInput) (*service.TransactionView, error)
	GetTransaction(ctx context.Context, id int64) (*service.TransactionView, error)
	ListTransactions(ctx context.Context, filter repoargs.TransactionFilter) ([]service.TransactionView, error)
	DeleteTransaction(ctx context.Context, id int64) error
	GetCategorySummary(ctx context.Context, shopID int64, from, to *time.Time) (*service.CategorySummary, error)
	GetMonthlyTotals(ctx context.Context, shopID int64) ([]service.MonthlyTotal, error)
}

type SchedulerServicer interface {
	ListRecurringPayments(ctx context.Context, shopID int64) ([]service.RecurringPaymentView, error)
	GetRecurringPayment(ctx context.Context, id int64) (*service.RecurringPaymentView, error)
	DeleteRecurringPayment(ctx context.Context, id int64) error
	CreateUpcomingPayment(
		ctx context.Context,
		in service.CreateUpcomingPaymentInput,
	) (*service.UpcomingPaymentView, error)
	GetUpcomingPayment(ctx context.Context, id int64) (*service.UpcomingPaymentView, error)
	ListUpcomingPayments(ctx context.Context, shopID int64) ([]service.UpcomingPaymentView, error)
	UpdateUpcomingPayment(
		ctx context.Context,
		id int64,
		in service.UpdateUpcomingPaymentInput,
	) (*service.UpcomingPaymentView, error)
	DeleteUpcomingPayment(ctx context.Context, id int64) error
	MarkAsPaid(ctx context.Context, id int64, paidAt time.Time) (*service.MarkAsPaidResult, error)
}

type CashFlowServicer interface {
	GetComprehensiveCashFlow(ctx context.Context, shopID int64) (*service.CashFlowReport, error)
}

type SettlementServicer interface {
	ApplyCompletedOrder(
		ctx context.Context,
		eventID uuid.UUID,
		order service.CompletedOrder,
	) (*service.SettlementResult, error)
}

// SweepTrigger ручной запуск обработки повторяющихся платежей. Повторные вызовы во время работы
// присоединяются к текущему проходу.
type SweepTrigger interface {
	Trigger(ctx context.Context) (int, error)
}
