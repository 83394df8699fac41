package domain

import (
	"time"
)

type ShopBalance struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShopID      int64
	CashBalance EncryptedAmount
	CardBalance EncryptedAmount
	BankBalance EncryptedAmount
	// Opening* значения на момент открытия баланса, дальше не меняются.
	OpeningCash EncryptedAmount
	OpeningCard EncryptedAmount
	OpeningBank EncryptedAmount
}

// Transaction запись журнала движения денег магазина. После создания не изменяется.
type Transaction struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShopID      int64
	Description string
	Amount      EncryptedAmount
	Date        time.Time
	Type        TransactionType
	Category    TransactionCategory
	IsRecurring bool
}

type RecurringPayment struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ShopID        int64
	TransactionID *int64
	Description   string
	Amount        EncryptedAmount
	Frequency     Frequency
	NextDate      time.Time
	Category      TransactionCategory
}

type UpcomingPayment struct {
	ID                 int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ShopID             int64
	RecurringPaymentID *int64
	Description        string
	Amount             EncryptedAmount
	DueDate            time.Time
	PaymentType        PaymentType
	IsPriority         bool
	// Category явная категория. Пустое значение - категория берется из таблицы по PaymentType.
	Category TransactionCategory
}

type CustomerWallet struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CustomerID    int64
	ShopID        int64
	Balance       EncryptedAmount
	LoyaltyPoints EncryptedAmount
}

type WalletTransaction struct {
	ID         int64
	CreatedAt  time.Time
	CustomerID int64
	ShopID     int64
	OrderID    *int64
	Type       WalletTransactionType
	Amount     EncryptedAmount
}

type Order struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShopID      int64
	CustomerID  int64
	OrderNumber string
	Status      OrderStatusType
	Subtotal    EncryptedAmount
	Discount    EncryptedAmount
	Total       EncryptedAmount
	Paid        EncryptedAmount
	PaymentDue  EncryptedAmount
	Items       []OrderItem
	Payments    []Payment
}

type OrderItem struct {
	ID             int64
	OrderID        int64
	ProductID      int64
	ProductName    string
	Quantity       int32
	OriginalPrice  EncryptedAmount
	SellingPrice   EncryptedAmount
	WarrantyMonths int32
}

type Payment struct {
	ID        int64
	CreatedAt time.Time
	OrderID   int64
	Method    PaymentMethod
	Amount    EncryptedAmount
}

// WalletWithCustomer кошелек вместе с именем владельца. Используется при сканировании долгов магазина.
type WalletWithCustomer struct {
	CustomerWallet
	CustomerName string
}
