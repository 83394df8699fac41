package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
)

type HealthStatus string

const (
	HealthHealthy HealthStatus = "HEALTHY"
	HealthAtRisk  HealthStatus = "AT_RISK"
)

const (
	growthReasonFewMonths    = "fewer than two months of data"
	growthReasonZeroPrevious = "previous month figure is zero"

	percentScale  = 2
	progressScale = 4
)

var hundred = decimal.NewFromInt(100)

// GrowthRate изменение показателя между двумя последними месяцами с данными. Если посчитать нельзя,
// Available false и Reason объясняет причину.
type GrowthRate struct {
	Available bool
	Percent   decimal.NullDecimal
	Reason    string
}

type TypeTotal struct {
	Total decimal.Decimal
	Count int
}

type CashFlowReport struct {
	ShopID         int64
	GeneratedAt    time.Time
	CurrentBalance decimal.Decimal
	Balance        ShopBalanceView

	MonthIncome  decimal.Decimal
	MonthExpense decimal.Decimal

	Transactions []TransactionView
	ByType       map[domain.TransactionType]TypeTotal
	ByMonth      []MonthlyTotal

	CustomerDues CustomerDues

	UpcomingPayments      []UpcomingPaymentView
	TotalUpcomingPayments decimal.Decimal

	ProjectedBalance decimal.Decimal
	AdjustedBalance  decimal.Decimal
	HealthStatus     HealthStatus

	IncomeGrowth  GrowthRate
	ExpenseGrowth GrowthRate
	// MonthProgress доля прошедших дней текущего месяца, от 0 до 1.
	MonthProgress decimal.Decimal
}

// CashFlowReporter собирает сводку по деньгам магазина из данных остальных компонентов. Ничего не пишет.
type CashFlowReporter struct {
	balances  *ShopBalanceReconciler
	ledger    *TransactionLedger
	wallets   *WalletLedger
	scheduler *PaymentScheduler
	now       func() time.Time
	l         *logrus.Entry
}

func NewCashFlowReporter(
	balances *ShopBalanceReconciler,
	ledger *TransactionLedger,
	wallets *WalletLedger,
	scheduler *PaymentScheduler,
	l *logrus.Logger,
) *CashFlowReporter {
	return &CashFlowReporter{
		balances:  balances,
		ledger:    ledger,
		wallets:   wallets,
		scheduler: scheduler,
		now:       time.Now,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "cashflow_report",
		}),
	}
}

func (r *CashFlowReporter) GetComprehensiveCashFlow(ctx context.Context, shopID int64) (*CashFlowReport, error) {
	var (
		balance      *ShopBalanceReport
		transactions []TransactionView
		dues         *CustomerDues
		upcoming     []UpcomingPaymentView
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		balance, err = r.balances.GetShopBalance(gCtx, shopID)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = r.ledger.ListTransactions(gCtx, repoargs.TransactionFilter{ShopID: shopID})
		return err
	})
	g.Go(func() error {
		var err error
		dues, err = r.wallets.GetCustomerDuesAsAssets(gCtx, shopID)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = r.scheduler.ListUpcomingPayments(gCtx, shopID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("comprehensive cash flow: %w", err)
	}

	now := r.now()
	report := &CashFlowReport{
		ShopID:                shopID,
		GeneratedAt:           now,
		Balance:               balance.Balance,
		CurrentBalance:        balance.Balance.CashBalance,
		MonthIncome:           decimal.Zero,
		MonthExpense:          decimal.Zero,
		Transactions:          transactions,
		ByType:                make(map[domain.TransactionType]TypeTotal),
		ByMonth:               monthlyTotals(transactions),
		CustomerDues:          *dues,
		UpcomingPayments:      upcoming,
		TotalUpcomingPayments: decimal.Zero,
		MonthProgress:         monthProgress(now),
	}

	currentMonth := monthKey(now)
	for _, t := range transactions {
		byType := report.ByType[t.Type]
		byType.Total = byType.Total.Add(t.Amount)
		byType.Count++
		report.ByType[t.Type] = byType

		if monthKey(t.Date) != currentMonth {
			continue
		}
		switch {
		case t.Type.IsIncome():
			report.MonthIncome = report.MonthIncome.Add(t.Amount)
		case t.Type.IsExpense():
			report.MonthExpense = report.MonthExpense.Add(t.Amount)
		}
	}

	for _, p := range upcoming {
		report.TotalUpcomingPayments = report.TotalUpcomingPayments.Add(p.Amount)
	}

	report.ProjectedBalance = report.CurrentBalance.Sub(report.TotalUpcomingPayments)
	report.AdjustedBalance = report.CurrentBalance.Add(dues.TotalDues).Sub(report.TotalUpcomingPayments)
	report.HealthStatus = HealthAtRisk
	if report.AdjustedBalance.IsPositive() {
		report.HealthStatus = HealthHealthy
	}

	report.IncomeGrowth, report.ExpenseGrowth = growthRates(report.ByMonth)

	r.l.WithFields(logrus.Fields{
		"shop_id":      shopID,
		"transactions": len(transactions),
		"health":       report.HealthStatus,
	}).Debug("cash flow report built")

	return report, nil
}

// growthRates сравнивает два последних месяца с данными. Ключи месяцев уже отсортированы.
func growthRates(months []MonthlyTotal) (GrowthRate, GrowthRate) {
	if len(months) < 2 {
		unavailable := GrowthRate{Reason: growthReasonFewMonths}
		return unavailable, unavailable
	}
	previous, latest := months[len(months)-2], months[len(months)-1]
	return growthRate(previous.Income, latest.Income), growthRate(previous.Expense, latest.Expense)
}

func growthRate(previous, latest decimal.Decimal) GrowthRate {
	if previous.IsZero() {
		return GrowthRate{Reason: growthReasonZeroPrevious}
	}
	percent := latest.Sub(previous).Div(previous).Mul(hundred).Round(percentScale)
	return GrowthRate{
		Available: true,
		Percent:   decimal.NewNullDecimal(percent),
	}
}

// monthProgress доля текущего месяца, прошедшая к моменту now, с учетом времени суток.
func monthProgress(now time.Time) decimal.Decimal {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)
	elapsed := decimal.NewFromInt(int64(now.Sub(start)))
	total := decimal.NewFromInt(int64(end.Sub(start)))
	return elapsed.Div(total).Round(progressScale)
}
