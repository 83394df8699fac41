package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// TransactionLedger журнал движения денег магазина.
type TransactionLedger struct {
	uow           uow.UOW
	codec         AmountCodec
	txRepo        TransactionRepository
	recurringRepo RecurringPaymentRepository
	l             *logrus.Entry
}

func NewTransactionLedger(u uow.UOW, codec AmountCodec, l *logrus.Logger) (*TransactionLedger, error) {
	txRepo, err := uow.GetRepositoryAs[TransactionRepository](u, uow.RepositoryName(repoargs.TransactionRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	recurringRepo, err := uow.GetRepositoryAs[RecurringPaymentRepository](
		u, uow.RepositoryName(repoargs.RecurringPaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &TransactionLedger{
		uow:           u,
		codec:         codec,
		txRepo:        txRepo,
		recurringRepo: recurringRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "transaction_ledger",
		}),
	}, nil
}

type CreateTransactionInput struct {
	ShopID      int64
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Type        domain.TransactionType
	Category    domain.TransactionCategory
	IsRecurring bool
	// Frequency и NextDate заполняются вместе с IsRecurring. Тогда к транзакции создается шаблон
	// повторяющегося платежа.
	Frequency *domain.Frequency
	NextDate  *time.Time
}

func (in *CreateTransactionInput) normalize() error {
	in.Description = strings.TrimSpace(in.Description)
	if in.ShopID <= 0 {
		return domain.NewValidationError("shop id is required")
	}
	if in.Description == "" {
		return domain.NewValidationError("description is required")
	}
	if !in.Amount.IsPositive() {
		return domain.NewValidationError("amount must be positive")
	}
	if !in.Type.Valid() {
		return domain.NewValidationError("unknown transaction type %q", in.Type)
	}
	if in.Category == "" {
		in.Category = domain.CategoryOther
	}
	if !in.Category.Valid() {
		return domain.NewValidationError("unknown transaction category %q", in.Category)
	}
	if in.Frequency != nil && !in.Frequency.Valid() {
		return domain.NewValidationError("unknown frequency %q", *in.Frequency)
	}
	return nil
}

func (in *CreateTransactionInput) createsRecurring() bool {
	return in.IsRecurring && in.Frequency != nil && in.NextDate != nil
}

// CreateTransaction добавляет запись в журнал. Повторяющаяся транзакция с частотой и датой следующего
// платежа порождает связанный шаблон в той же транзакции БД.
func (t *TransactionLedger) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*TransactionView, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	stored, encErr := t.codec.Encrypt(ctx, in.Amount)
	if encErr != nil {
		return nil, fmt.Errorf("create transaction: %w", encErr)
	}

	var view TransactionView
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		txRepo, err := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		created, err := txRepo.Create(c, repoargs.TransactionCreate{
			ShopID:      in.ShopID,
			Description: in.Description,
			Amount:      stored,
			Date:        in.Date,
			Type:        in.Type,
			Category:    in.Category,
			IsRecurring: in.IsRecurring,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		view = newTransactionView(created, in.Amount)

		if !in.createsRecurring() {
			return nil
		}

		recurringRepo, err := uow.GetAs[RecurringPaymentRepository](
			tx, uow.RepositoryName(repoargs.RecurringPaymentRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		recurring, err := recurringRepo.Create(c, repoargs.RecurringPaymentCreate{
			ShopID:        in.ShopID,
			TransactionID: &created.ID,
			Description:   in.Description,
			Amount:        stored,
			Frequency:     *in.Frequency,
			NextDate:      truncateDay(*in.NextDate),
			Category:      in.Category,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		view.RecurringPaymentID = &recurring.ID
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("create transaction: %w", txErr)
	}
	return &view, nil
}

func (t *TransactionLedger) GetTransaction(ctx context.Context, id int64) (*TransactionView, error) {
	transaction, err := t.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("transaction", id)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	view := newTransactionView(transaction, t.codec.Decrypt(ctx, transaction.Amount))
	return &view, nil
}

// ListTransactions записи журнала магазина по фильтру в хронологическом порядке.
func (t *TransactionLedger) ListTransactions(
	ctx context.Context,
	filter repoargs.TransactionFilter,
) ([]TransactionView, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, domain.NewValidationError("unknown transaction type %q", *filter.Type)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.NewValidationError("period end is before its start")
	}

	rows, err := t.txRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	stored := make([]domain.EncryptedAmount, len(rows))
	for i := range rows {
		stored[i] = rows[i].Amount
	}
	amounts := t.codec.DecryptAll(ctx, stored)

	views := make([]TransactionView, len(rows))
	for i := range rows {
		views[i] = newTransactionView(&rows[i], amounts[i])
	}
	return views, nil
}

// DeleteTransaction административное удаление записи журнала.
func (t *TransactionLedger) DeleteTransaction(ctx context.Context, id int64) error {
	transaction, err := t.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NewNotFoundError("transaction", id)
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	if delErr := t.txRepo.Delete(ctx, id); delErr != nil {
		if errors.Is(delErr, domain.ErrRecordNotFound) {
			return domain.NewNotFoundError("transaction", id)
		}
		return fmt.Errorf("delete transaction: %w", delErr)
	}
	t.l.WithFields(logrus.Fields{
		"transaction_id": id,
		"shop_id":        transaction.ShopID,
		"type":           transaction.Type,
	}).Warn("ledger transaction deleted")
	return nil
}

type CategoryTotal struct {
	Category domain.TransactionCategory
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Count    int
}

type CategorySummary struct {
	ShopID       int64
	Categories   []CategoryTotal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// GetCategorySummary суммы доходов и расходов по категориям за период. Категории упорядочены по имени.
func (t *TransactionLedger) GetCategorySummary(
	ctx context.Context,
	shopID int64,
	from, to *time.Time,
) (*CategorySummary, error) {
	views, err := t.ListTransactions(ctx, repoargs.TransactionFilter{ShopID: shopID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[domain.TransactionCategory]*CategoryTotal)
	summary := &CategorySummary{ShopID: shopID, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, v := range views {
		total, ok := byCategory[v.Category]
		if !ok {
			total = &CategoryTotal{Category: v.Category, Income: decimal.Zero, Expense: decimal.Zero}
			byCategory[v.Category] = total
		}
		total.Count++
		switch {
		case v.Type.IsIncome():
			total.Income = total.Income.Add(v.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(v.Amount)
		case v.Type.IsExpense():
			total.Expense = total.Expense.Add(v.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(v.Amount)
		}
	}

	summary.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, total := range byCategory {
		summary.Categories = append(summary.Categories, *total)
	}
	slices.SortFunc(summary.Categories, func(a, b CategoryTotal) int {
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return summary, nil
}

type MonthlyTotal struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// GetMonthlyTotals доходы, расходы и их разница по месяцам в хронологическом порядке.
func (t *TransactionLedger) GetMonthlyTotals(ctx context.Context, shopID int64) ([]MonthlyTotal, error) {
	views, err := t.ListTransactions(ctx, repoargs.TransactionFilter{ShopID: shopID})
	if err != nil {
		return nil, err
	}
	return monthlyTotals(views), nil
}

func monthlyTotals(views []TransactionView) []MonthlyTotal {
	byMonth := make(map[string]*MonthlyTotal)
	for _, v := range views {
		key := monthKey(v.Date)
		total, ok := byMonth[key]
		if !ok {
			total = &MonthlyTotal{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = total
		}
		switch {
		case v.Type.IsIncome():
			total.Income = total.Income.Add(v.Amount)
		case v.Type.IsExpense():
			total.Expense = total.Expense.Add(v.Amount)
		}
	}

	result := make([]MonthlyTotal, 0, len(byMonth))
	for _, total := range byMonth {
		total.Net = total.Income.Sub(total.Expense)
		result = append(result, *total)
	}
	slices.SortFunc(result, func(a, b MonthlyTotal) int {
		return strings.Compare(a.Month, b.Month)
	})
	return result
}
