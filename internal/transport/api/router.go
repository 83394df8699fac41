package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/transport/api/middlewares"
	"github.com/fsdevblog/pos-ledger/internal/transport/api/tokens"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	// ReportServiceTimeout отчет по движению денег собирается из четырех источников.
	ReportServiceTimeout = 10 * time.Second
)

const (
	RouteGroup = "/api"

	AllShopsHistoryRoute  = "/customers/:customerID/history"
	ProcessRecurringRoute = "/recurring-payments/process"

	ShopRoute = "/shops/:" + middlewares.ShopIDParam

	BalanceRoute  = "/balance"
	CashFlowRoute = "/cash-flow"
	DuesRoute     = "/dues"

	TransactionsRoute        = "/transactions"
	TransactionRoute         = "/transactions/:id"
	TransactionsSummaryRoute = "/transactions/summary"
	TransactionsMonthlyRoute = "/transactions/monthly"

	UpcomingPaymentsRoute   = "/upcoming-payments"
	UpcomingPaymentRoute    = "/upcoming-payments/:id"
	UpcomingPaymentPayRoute = "/upcoming-payments/:id/pay"

	RecurringPaymentsRoute = "/recurring-payments"
	RecurringPaymentRoute  = "/recurring-payments/:id"

	CustomerHistoryRoute    = "/customers/:customerID/history"
	CustomerWarrantiesRoute = "/customers/:customerID/warranties"
	CustomerDuePaymentRoute = "/customers/:customerID/due-payments"

	CompletedOrdersRoute = "/orders/completed"
)

type RouterArgs struct {
	Logger       *logrus.Logger
	Balances     BalanceServicer
	Wallets      WalletServicer
	Ledger       LedgerServicer
	Scheduler    SchedulerServicer
	CashFlow     CashFlowServicer
	Settlement   SettlementServicer
	Sweeper      SweepTrigger
	Access       middlewares.ShopAccessChecker
	JWTSecretKey []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	balanceHandler := NewBalanceHandler(args.Balances)
	cashFlowHandler := NewCashFlowHandler(args.CashFlow, args.Wallets)
	transactionsHandler := NewTransactionsHandler(args.Ledger)
	paymentsHandler := NewPaymentsHandler(args.Scheduler, args.Sweeper)
	customersHandler := NewCustomersHandler(args.Wallets)
	ordersHandler := NewOrdersHandler(args.Settlement)

	api := r.Group(RouteGroup)
	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(AllShopsHistoryRoute, customersHandler.AllShopsHistory)
	// проход по всем магазинам доступен только оператору
	api.POST(ProcessRecurringRoute, middlewares.RoleRequired(tokens.RoleAdmin), paymentsHandler.ProcessRecurring)

	shop := api.Group(ShopRoute)
	shop.Use(middlewares.ShopAccess(args.Access))
	// ниже все роуты требуют членства в магазине.
	shop.GET(BalanceRoute, balanceHandler.Show)
	shop.POST(BalanceRoute, balanceHandler.Open)

	shop.GET(CashFlowRoute, cashFlowHandler.Show)
	shop.GET(DuesRoute, cashFlowHandler.Dues)

	shop.GET(TransactionsRoute, transactionsHandler.Index)
	shop.POST(TransactionsRoute, transactionsHandler.Create)
	shop.GET(TransactionsSummaryRoute, transactionsHandler.Summary)
	shop.GET(TransactionsMonthlyRoute, transactionsHandler.Monthly)
	shop.GET(TransactionRoute, transactionsHandler.Show)
	shop.DELETE(TransactionRoute, transactionsHandler.Delete)

	shop.GET(UpcomingPaymentsRoute, paymentsHandler.IndexUpcoming)
	shop.POST(UpcomingPaymentsRoute, paymentsHandler.CreateUpcoming)
	shop.GET(UpcomingPaymentRoute, paymentsHandler.ShowUpcoming)
	shop.PATCH(UpcomingPaymentRoute, paymentsHandler.UpdateUpcoming)
	shop.DELETE(UpcomingPaymentRoute, paymentsHandler.DeleteUpcoming)
	shop.POST(UpcomingPaymentPayRoute, paymentsHandler.MarkAsPaid)

	shop.GET(RecurringPaymentsRoute, paymentsHandler.IndexRecurring)
	shop.DELETE(RecurringPaymentRoute, paymentsHandler.DeleteRecurring)

	shop.GET(CustomerHistoryRoute, customersHandler.History)
	shop.GET(CustomerWarrantiesRoute, customersHandler.Warranties)
	shop.POST(CustomerDuePaymentRoute, customersHandler.PayDue)

	shop.POST(CompletedOrdersRoute, ordersHandler.Complete)
	return r, nil
}
