package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// Представления сущностей с расшифрованными суммами. Возвращаются наружу сервисного слоя.

type TransactionView struct {
	ID                 int64
	CreatedAt          time.Time
	ShopID             int64
	Description        string
	Amount             decimal.Decimal
	Date               time.Time
	Type               domain.TransactionType
	Category           domain.TransactionCategory
	IsRecurring        bool
	RecurringPaymentID *int64
}

type RecurringPaymentView struct {
	ID            int64
	ShopID        int64
	TransactionID *int64
	Description   string
	Amount        decimal.Decimal
	Frequency     domain.Frequency
	NextDate      time.Time
	Category      domain.TransactionCategory
}

type UpcomingPaymentView struct {
	ID                 int64
	ShopID             int64
	RecurringPaymentID *int64
	Description        string
	Amount             decimal.Decimal
	DueDate            time.Time
	PaymentType        domain.PaymentType
	IsPriority         bool
	Category           domain.TransactionCategory
}

type WalletView struct {
	ID            int64
	CustomerID    int64
	ShopID        int64
	Balance       decimal.Decimal
	LoyaltyPoints decimal.Decimal
	UpdatedAt     time.Time
}

type WalletTransactionView struct {
	ID        int64
	CreatedAt time.Time
	OrderID   *int64
	Type      domain.WalletTransactionType
	Amount    decimal.Decimal
}

type PaymentView struct {
	ID        int64
	CreatedAt time.Time
	OrderID   int64
	Method    domain.PaymentMethod
	Amount    decimal.Decimal
}

type OrderItemView struct {
	ID             int64
	ProductID      int64
	ProductName    string
	Quantity       int32
	OriginalPrice  decimal.Decimal
	SellingPrice   decimal.Decimal
	WarrantyMonths int32
}

// WalletModifications влияние заказа на кошелек, собранное из транзакций кошелька с его order id.
type WalletModifications struct {
	WalletUsed    decimal.Decimal
	DuePaid       decimal.Decimal
	ExtraAdded    decimal.Decimal
	LoyaltyGained decimal.Decimal
}

// Net изменение денежного баланса кошелька от заказа.
func (m WalletModifications) Net() decimal.Decimal {
	return m.DuePaid.Add(m.ExtraAdded).Sub(m.WalletUsed)
}

type OrderView struct {
	ID                  int64
	CreatedAt           time.Time
	OrderNumber         string
	Status              domain.OrderStatusType
	Subtotal            decimal.Decimal
	Discount            decimal.Decimal
	Total               decimal.Decimal
	Paid                decimal.Decimal
	PaymentDue          decimal.Decimal
	Items               []OrderItemView
	Payments            []PaymentView
	WalletModifications WalletModifications
}

func newTransactionView(t *domain.Transaction, amount decimal.Decimal) TransactionView {
	return TransactionView{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		ShopID:      t.ShopID,
		Description: t.Description,
		Amount:      amount,
		Date:        t.Date,
		Type:        t.Type,
		Category:    t.Category,
		IsRecurring: t.IsRecurring,
	}
}

func newRecurringPaymentView(p *domain.RecurringPayment, amount decimal.Decimal) RecurringPaymentView {
	return RecurringPaymentView{
		ID:            p.ID,
		ShopID:        p.ShopID,
		TransactionID: p.TransactionID,
		Description:   p.Description,
		Amount:        amount,
		Frequency:     p.Frequency,
		NextDate:      p.NextDate,
		Category:      p.Category,
	}
}

func newUpcomingPaymentView(p *domain.UpcomingPayment, amount decimal.Decimal) UpcomingPaymentView {
	return UpcomingPaymentView{
		ID:                 p.ID,
		ShopID:             p.ShopID,
		RecurringPaymentID: p.RecurringPaymentID,
		Description:        p.Description,
		Amount:             amount,
		DueDate:            p.DueDate,
		PaymentType:        p.PaymentType,
		IsPriority:         p.IsPriority,
		Category:           p.Category,
	}
}
