package events

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/service"
)

const (
	TypeOrderCompleted = "order.completed"
	TypeDuePaid        = "due.paid"
)

// Envelope общий формат сообщения очереди. EventID ключ защиты от повторной доставки.
type Envelope struct {
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
}

type PaymentMessage struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

type OrderCompletedMessage struct {
	OrderID       int64            `json:"order_id"`
	OrderNumber   string           `json:"order_number"`
	ShopID        int64            `json:"shop_id"`
	CustomerID    *int64           `json:"customer_id"`
	CompletedAt   *time.Time       `json:"completed_at"`
	Payments      []PaymentMessage `json:"payments"`
	WalletUsed    decimal.Decimal  `json:"wallet_used"`
	DuePaid       decimal.Decimal  `json:"due_paid"`
	ExtraAdded    decimal.Decimal  `json:"extra_added"`
	LoyaltyGained decimal.Decimal  `json:"loyalty_gained"`
}

type DuePaidMessage struct {
	CustomerID int64           `json:"customer_id"`
	ShopID     int64           `json:"shop_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     *time.Time      `json:"paid_at"`
}

// toCompletedOrder пустая дата завершения заменяется моментом получения.
func (m OrderCompletedMessage) toCompletedOrder(received time.Time) (service.CompletedOrder, error) {
	order := service.CompletedOrder{
		OrderID:       m.OrderID,
		OrderNumber:   m.OrderNumber,
		ShopID:        m.ShopID,
		CustomerID:    m.CustomerID,
		CompletedAt:   received,
		Payments:      make([]service.CompletedPayment, 0, len(m.Payments)),
		WalletUsed:    m.WalletUsed,
		DuePaid:       m.DuePaid,
		ExtraAdded:    m.ExtraAdded,
		LoyaltyGained: m.LoyaltyGained,
	}
	if m.CompletedAt != nil {
		order.CompletedAt = *m.CompletedAt
	}
	for _, p := range m.Payments {
		method := domain.PaymentMethod(p.Method)
		if !method.Valid() {
			return service.CompletedOrder{}, domain.NewValidationError("unknown payment method %s", p.Method)
		}
		order.Payments = append(order.Payments, service.CompletedPayment{Method: method, Amount: p.Amount})
	}
	return order, nil
}

func (m DuePaidMessage) toDuePaid(received time.Time) (service.DuePaid, error) {
	if m.CustomerID <= 0 || m.ShopID <= 0 {
		return service.DuePaid{}, domain.NewValidationError("customer and shop ids are required")
	}
	event := service.DuePaid{
		CustomerID: m.CustomerID,
		ShopID:     m.ShopID,
		Amount:     m.Amount,
		PaidAt:     received,
	}
	if m.PaidAt != nil {
		event.PaidAt = *m.PaidAt
	}
	return event, nil
}
