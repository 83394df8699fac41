package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// DefaultReconcileTolerance допустимое расхождение кешированного баланса с ожидаемым (начальный баланс плюс оплаты).
var DefaultReconcileTolerance = decimal.NewFromInt(1)

// reconciledMethods методы оплаты, у которых есть кешированный баланс магазина.
var reconciledMethods = []domain.PaymentMethod{
	domain.PaymentMethodCash,
	domain.PaymentMethodCard,
	domain.PaymentMethodBank,
}

// ShopBalanceReconciler отдает кешированный баланс магазина и сверяет его с журналом оплат. Расхождения
// логируются и возвращаются, кеш при этом не исправляется.
type ShopBalanceReconciler struct {
	uow         uow.UOW
	codec       AmountCodec
	balanceRepo ShopBalanceRepository
	paymentRepo PaymentRepository
	tolerance   decimal.Decimal
	l           *logrus.Entry
}

func NewShopBalanceReconciler(
	u uow.UOW,
	codec AmountCodec,
	tolerance decimal.Decimal,
	l *logrus.Logger,
) (*ShopBalanceReconciler, error) {
	balanceRepo, err := uow.GetRepositoryAs[ShopBalanceRepository](u, uow.RepositoryName(repoargs.ShopBalanceRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	paymentRepo, err := uow.GetRepositoryAs[PaymentRepository](u, uow.RepositoryName(repoargs.PaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if tolerance.IsNegative() {
		return nil, fmt.Errorf("reconcile tolerance must not be negative, got %s", tolerance)
	}
	return &ShopBalanceReconciler{
		uow:         u,
		codec:       codec,
		balanceRepo: balanceRepo,
		paymentRepo: paymentRepo,
		tolerance:   tolerance,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "shop_balance",
		}),
	}, nil
}

type ShopBalanceView struct {
	ShopID      int64
	CashBalance decimal.Decimal
	CardBalance decimal.Decimal
	BankBalance decimal.Decimal
	OpeningCash decimal.Decimal
	OpeningCard decimal.Decimal
	OpeningBank decimal.Decimal
	UpdatedAt   time.Time
	// Exists false для магазина, у которого баланс еще не заведен.
	Exists bool
}

// SubBalance значение под-баланса для метода оплаты. У WALLET под-баланса нет.
func (v ShopBalanceView) SubBalance(method domain.PaymentMethod) decimal.Decimal {
	switch method {
	case domain.PaymentMethodCash:
		return v.CashBalance
	case domain.PaymentMethodCard:
		return v.CardBalance
	case domain.PaymentMethodBank:
		return v.BankBalance
	default:
		return decimal.Zero
	}
}

func (v ShopBalanceView) Opening(method domain.PaymentMethod) decimal.Decimal {
	switch method {
	case domain.PaymentMethodCash:
		return v.OpeningCash
	case domain.PaymentMethodCard:
		return v.OpeningCard
	case domain.PaymentMethodBank:
		return v.OpeningBank
	default:
		return decimal.Zero
	}
}

// Discrepancy Difference считается между Cached и Opening+Calculated.
type Discrepancy struct {
	SubBalance domain.PaymentMethod
	Cached     decimal.Decimal
	Opening    decimal.Decimal
	Calculated decimal.Decimal
	Difference decimal.Decimal
}

type ShopBalanceReport struct {
	Balance          ShopBalanceView
	Payments         []PaymentView
	CalculatedTotals map[domain.PaymentMethod]decimal.Decimal
	Discrepancies    []Discrepancy
}

func zeroTotals() map[domain.PaymentMethod]decimal.Decimal {
	totals := make(map[domain.PaymentMethod]decimal.Decimal, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		totals[m] = decimal.Zero
	}
	return totals
}

// GetShopBalance возвращает кешированный баланс, все оплаты магазина и их суммы по методам. Если баланс еще
// не заведен, возвращается нулевая структура.
func (r *ShopBalanceReconciler) GetShopBalance(ctx context.Context, shopID int64) (*ShopBalanceReport, error) {
	report := &ShopBalanceReport{
		Balance:          ShopBalanceView{ShopID: shopID},
		Payments:         []PaymentView{},
		CalculatedTotals: zeroTotals(),
		Discrepancies:    []Discrepancy{},
	}

	balance, err := r.balanceRepo.GetByShopID(ctx, shopID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return report, nil
		}
		return nil, fmt.Errorf("shop balance: %w", err)
	}

	payments, err := r.paymentRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("shop balance: %w", err)
	}

	var batch amountBatch
	report.Balance.Exists = true
	report.Balance.UpdatedAt = balance.UpdatedAt
	batch.add(balance.CashBalance, &report.Balance.CashBalance)
	batch.add(balance.CardBalance, &report.Balance.CardBalance)
	batch.add(balance.BankBalance, &report.Balance.BankBalance)
	batch.add(balance.OpeningCash, &report.Balance.OpeningCash)
	batch.add(balance.OpeningCard, &report.Balance.OpeningCard)
	batch.add(balance.OpeningBank, &report.Balance.OpeningBank)

	report.Payments = make([]PaymentView, len(payments))
	for i, p := range payments {
		report.Payments[i] = PaymentView{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			OrderID:   p.OrderID,
			Method:    p.Method,
		}
		batch.add(p.Amount, &report.Payments[i].Amount)
	}
	batch.resolve(ctx, r.codec)

	for _, p := range report.Payments {
		report.CalculatedTotals[p.Method] = report.CalculatedTotals[p.Method].Add(p.Amount)
	}
	report.Discrepancies = r.reconcile(shopID, report.Balance, report.CalculatedTotals)

	return report, nil
}

func (r *ShopBalanceReconciler) reconcile(
	shopID int64,
	balance ShopBalanceView,
	totals map[domain.PaymentMethod]decimal.Decimal,
) []Discrepancy {
	result := []Discrepancy{}
	for _, method := range reconciledMethods {
		cached := balance.SubBalance(method)
		opening := balance.Opening(method)
		calculated := totals[method]
		difference := cached.Sub(opening.Add(calculated)).Abs()
		if !difference.GreaterThan(r.tolerance) {
			continue
		}
		r.l.WithFields(logrus.Fields{
			"shop_id":     shopID,
			"sub_balance": method,
			"cached":      cached.String(),
			"opening":     opening.String(),
			"calculated":  calculated.String(),
			"difference":  difference.String(),
		}).Warn("shop balance discrepancy")
		result = append(result, Discrepancy{
			SubBalance: method,
			Cached:     cached,
			Opening:    opening,
			Calculated: calculated,
			Difference: difference,
		})
	}
	return result
}

// OpenShopBalance заводит баланс нового магазина с начальными значениями.
func (r *ShopBalanceReconciler) OpenShopBalance(
	ctx context.Context,
	shopID int64,
	cash, card, bank decimal.Decimal,
) (*ShopBalanceView, error) {
	if cash.IsNegative() || card.IsNegative() || bank.IsNegative() {
		return nil, domain.NewValidationError("opening balances must not be negative")
	}

	var view *ShopBalanceView
	txErr := r.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[ShopBalanceRepository](tx, uow.RepositoryName(repoargs.ShopBalanceRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		args := repoargs.ShopBalanceCreate{ShopID: shopID}
		for _, field := range []struct {
			value decimal.Decimal
			dst   *domain.EncryptedAmount
		}{
			{value: cash, dst: &args.CashBalance},
			{value: card, dst: &args.CardBalance},
			{value: bank, dst: &args.BankBalance},
		} {
			stored, encErr := r.codec.Encrypt(c, field.value)
			if encErr != nil {
				return fmt.Errorf("encrypt opening balance: %w", encErr)
			}
			*field.dst = stored
		}

		created, createErr := repo.Create(c, args)
		if createErr != nil {
			if errors.Is(createErr, domain.ErrDuplicateKey) {
				return domain.NewValidationError("balance of shop %d is already opened", shopID)
			}
			return createErr //nolint:wrapcheck
		}
		view = &ShopBalanceView{
			ShopID:      shopID,
			CashBalance: cash,
			CardBalance: card,
			BankBalance: bank,
			OpeningCash: cash,
			OpeningCard: card,
			OpeningBank: bank,
			UpdatedAt:   created.UpdatedAt,
			Exists:      true,
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("open shop balance: %w", txErr)
	}
	return view, nil
}

// applyPaymentTx сдвигает под-баланс метода оплаты на delta внутри транзакции tx. WALLET не затрагивает
// баланс магазина. Если баланс не заведен, он создается с нулями.
func (r *ShopBalanceReconciler) applyPaymentTx(
	ctx context.Context,
	tx uow.TX,
	shopID int64,
	method domain.PaymentMethod,
	delta decimal.Decimal,
) error {
	if method == domain.PaymentMethodWallet {
		return nil
	}
	repo, err := uow.GetAs[ShopBalanceRepository](tx, uow.RepositoryName(repoargs.ShopBalanceRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}

	balance, err := repo.GetByShopIDForUpdate(ctx, shopID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		balance, err = repo.Create(ctx, repoargs.ShopBalanceCreate{
			ShopID:      shopID,
			CashBalance: "0",
			CardBalance: "0",
			BankBalance: "0",
		})
	}
	if err != nil {
		return err //nolint:wrapcheck
	}

	update := repoargs.ShopBalanceUpdate{
		ShopID:      shopID,
		CashBalance: balance.CashBalance,
		CardBalance: balance.CardBalance,
		BankBalance: balance.BankBalance,
	}
	var target *domain.EncryptedAmount
	switch method {
	case domain.PaymentMethodCash:
		target = &update.CashBalance
	case domain.PaymentMethodCard:
		target = &update.CardBalance
	case domain.PaymentMethodBank:
		target = &update.BankBalance
	default:
		return domain.NewValidationError("unknown payment method %q", method)
	}

	current, err := r.codec.DecryptStrict(ctx, *target)
	if err != nil {
		return fmt.Errorf("decrypt shop balance: %w", err)
	}
	stored, err := r.codec.Encrypt(ctx, current.Add(delta))
	if err != nil {
		return fmt.Errorf("encrypt shop balance: %w", err)
	}
	*target = stored

	if _, updErr := repo.Update(ctx, update); updErr != nil {
		return updErr //nolint:wrapcheck
	}
	return nil
}
