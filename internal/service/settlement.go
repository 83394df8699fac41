package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

type CompletedPayment struct {
	Method domain.PaymentMethod
	Amount decimal.Decimal
}

// CompletedOrder событие завершения заказа от сервиса заказов.
type CompletedOrder struct {
	OrderID       int64
	OrderNumber   string
	ShopID        int64
	CustomerID    *int64
	CompletedAt   time.Time
	Payments      []CompletedPayment
	WalletUsed    decimal.Decimal
	DuePaid       decimal.Decimal
	ExtraAdded    decimal.Decimal
	LoyaltyGained decimal.Decimal
}

// DuePaid событие оплаты долга вне заказа.
type DuePaid struct {
	CustomerID int64
	ShopID     int64
	Amount     decimal.Decimal
	PaidAt     time.Time
}

type SettlementResult struct {
	// Duplicate событие уже было обработано, ничего не изменено.
	Duplicate bool
	Wallet    *WalletView
}

// Settlement применяет входящие события ровно один раз: отметка о событии и изменения кошелька фиксируются
// в одной транзакции, побочные каналы вызываются после нее.
type Settlement struct {
	uow     uow.UOW
	wallets *WalletLedger
	sync    *CashFlowSync
	l       *logrus.Entry
}

func NewSettlement(u uow.UOW, wallets *WalletLedger, sync *CashFlowSync, l *logrus.Logger) *Settlement {
	return &Settlement{
		uow:     u,
		wallets: wallets,
		sync:    sync,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "settlement",
		}),
	}
}

func (s *Settlement) ApplyCompletedOrder(
	ctx context.Context,
	eventID uuid.UUID,
	order CompletedOrder,
) (*SettlementResult, error) {
	if order.OrderID <= 0 || order.ShopID <= 0 {
		return nil, domain.NewValidationError("order and shop ids are required")
	}
	for _, p := range order.Payments {
		if p.Amount.IsNegative() {
			return nil, domain.NewValidationError("payment amount must not be negative")
		}
	}
	var effects *OrderWalletEffects
	if order.CustomerID != nil {
		effects = &OrderWalletEffects{
			OrderID:       order.OrderID,
			CustomerID:    *order.CustomerID,
			ShopID:        order.ShopID,
			WalletUsed:    order.WalletUsed,
			DuePaid:       order.DuePaid,
			ExtraAdded:    order.ExtraAdded,
			LoyaltyGained: order.LoyaltyGained,
		}
		if err := effects.validate(); err != nil {
			return nil, err
		}
	}

	result := &SettlementResult{}
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		fresh, err := s.markProcessedTx(c, tx, eventID)
		if err != nil || !fresh {
			result.Duplicate = !fresh
			return err
		}
		if effects == nil {
			return nil
		}
		result.Wallet, err = s.wallets.RecordOrderWalletEffectsTx(c, tx, *effects)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("apply completed order %d: %w", order.OrderID, txErr)
	}

	entry := s.l.WithFields(logrus.Fields{"event_id": eventID, "order_id": order.OrderID})
	if result.Duplicate {
		entry.Info("completed order event already processed")
		return result, nil
	}

	// Оплата долга внутри заказа уже входит в оплаты заказа, поэтому в журнал попадают только они.
	for _, p := range order.Payments {
		s.sync.SyncOrderPayment(ctx, OrderPaymentEvent{
			OrderID:     order.OrderID,
			OrderNumber: order.OrderNumber,
			ShopID:      order.ShopID,
			CustomerID:  order.CustomerID,
			Method:      p.Method,
			Amount:      p.Amount,
			Date:        order.CompletedAt,
		})
	}
	entry.Debug("completed order applied")
	return result, nil
}

// ApplyDuePaid то же, что WalletLedger.PayDue, с защитой от повторной доставки события.
func (s *Settlement) ApplyDuePaid(ctx context.Context, eventID uuid.UUID, event DuePaid) (*SettlementResult, error) {
	if !event.Amount.IsPositive() {
		return nil, domain.NewValidationError("due payment amount must be positive")
	}

	result := &SettlementResult{}
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		fresh, err := s.markProcessedTx(c, tx, eventID)
		if err != nil || !fresh {
			result.Duplicate = !fresh
			return err
		}
		result.Wallet, err = s.wallets.appendAndRecompute(c, tx, event.CustomerID, event.ShopID, nil,
			[]walletEntry{{Type: domain.WalletTxDuePayment, Amount: event.Amount}}, false)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("apply due payment: %w", txErr)
	}
	if result.Duplicate {
		s.l.WithField("event_id", eventID).Info("due payment event already processed")
		return result, nil
	}

	s.sync.SyncDuePayment(ctx, DuePaymentEvent{
		CustomerID: event.CustomerID,
		ShopID:     event.ShopID,
		Amount:     event.Amount,
		Date:       event.PaidAt,
	})
	return result, nil
}

func (s *Settlement) markProcessedTx(ctx context.Context, tx uow.TX, eventID uuid.UUID) (bool, error) {
	repo, err := uow.GetAs[ProcessedEventRepository](tx, uow.RepositoryName(repoargs.ProcessedEventRepoName))
	if err != nil {
		return false, err //nolint:wrapcheck
	}
	return repo.MarkProcessed(ctx, eventID) //nolint:wrapcheck
}
