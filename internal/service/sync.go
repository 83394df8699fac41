package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// OrderPaymentEvent одна оплата завершенного заказа.
type OrderPaymentEvent struct {
	OrderID     int64
	OrderNumber string
	ShopID      int64
	CustomerID  *int64
	Method      domain.PaymentMethod
	Amount      decimal.Decimal
	Date        time.Time
}

type DuePaymentEvent struct {
	CustomerID int64
	ShopID     int64
	Amount     decimal.Decimal
	Date       time.Time
}

// CashFlowSync переносит события заказов и оплат долгов в журнал магазина. Методы не возвращают ошибку:
// сбой логируется и не должен мешать завершению заказа.
type CashFlowSync struct {
	uow        uow.UOW
	codec      AmountCodec
	reconciler *ShopBalanceReconciler
	now        func() time.Time
	l          *logrus.Entry
}

func NewCashFlowSync(u uow.UOW, codec AmountCodec, reconciler *ShopBalanceReconciler, l *logrus.Logger) *CashFlowSync {
	return &CashFlowSync{
		uow:        u,
		codec:      codec,
		reconciler: reconciler,
		now:        time.Now,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "cashflow_sync",
		}),
	}
}

// SyncOrderPayment записывает оплату заказа в журнал и сдвигает соответствующий под-баланс магазина в одной
// транзакции.
func (s *CashFlowSync) SyncOrderPayment(ctx context.Context, event OrderPaymentEvent) {
	entry := s.l.WithFields(logrus.Fields{
		"operation":    "sync_order_payment",
		"order_id":     event.OrderID,
		"order_number": event.OrderNumber,
		"shop_id":      event.ShopID,
		"method":       event.Method,
	})
	if event.CustomerID != nil {
		entry = entry.WithField("customer_id", *event.CustomerID)
	}
	if !event.Amount.IsPositive() {
		entry.Warn("order payment with non-positive amount skipped")
		return
	}

	date := event.Date
	if date.IsZero() {
		date = s.now()
	}

	err := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		if err := s.appendLedgerTx(c, tx, repoargs.TransactionCreate{
			ShopID:      event.ShopID,
			Description: fmt.Sprintf("Order %s payment (%s)", event.OrderNumber, event.Method),
			Date:        date,
			Type:        domain.TransactionTypeOrderPayment,
			Category:    domain.CategorySales,
		}, event.Amount); err != nil {
			return err
		}
		return s.reconciler.applyPaymentTx(c, tx, event.ShopID, event.Method, event.Amount)
	})
	if err != nil {
		entry.WithError(err).Error("sync order payment failed")
	}
}

// SyncDuePayment записывает оплату долга покупателем в журнал магазина.
func (s *CashFlowSync) SyncDuePayment(ctx context.Context, event DuePaymentEvent) {
	entry := s.l.WithFields(logrus.Fields{
		"operation":   "sync_due_payment",
		"customer_id": event.CustomerID,
		"shop_id":     event.ShopID,
	})
	if !event.Amount.IsPositive() {
		entry.Warn("due payment with non-positive amount skipped")
		return
	}

	date := event.Date
	if date.IsZero() {
		date = s.now()
	}

	err := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		return s.appendLedgerTx(c, tx, repoargs.TransactionCreate{
			ShopID:      event.ShopID,
			Description: fmt.Sprintf("Due payment from customer %d", event.CustomerID),
			Date:        date,
			Type:        domain.TransactionTypeDuePayment,
			Category:    domain.CategoryDueCollect,
		}, event.Amount)
	})
	if err != nil {
		entry.WithError(err).Error("sync due payment failed")
	}
}

func (s *CashFlowSync) appendLedgerTx(
	ctx context.Context,
	tx uow.TX,
	args repoargs.TransactionCreate,
	amount decimal.Decimal,
) error {
	repo, err := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
	if err != nil {
		return err //nolint:wrapcheck
	}
	stored, err := s.codec.Encrypt(ctx, amount)
	if err != nil {
		return fmt.Errorf("encrypt ledger amount: %w", err)
	}
	args.Amount = stored
	if _, createErr := repo.Create(ctx, args); createErr != nil {
		return createErr //nolint:wrapcheck
	}
	return nil
}
