package repoargs

import (
	"time"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// ShopBalanceCreate начальные значения под-балансов сохраняются и как текущие, и как opening.
type ShopBalanceCreate struct {
	ShopID      int64
	CashBalance domain.EncryptedAmount
	CardBalance domain.EncryptedAmount
	BankBalance domain.EncryptedAmount
}

type ShopBalanceUpdate struct {
	ShopID      int64
	CashBalance domain.EncryptedAmount
	CardBalance domain.EncryptedAmount
	BankBalance domain.EncryptedAmount
}

type TransactionCreate struct {
	ShopID      int64
	Description string
	Amount      domain.EncryptedAmount
	Date        time.Time
	Type        domain.TransactionType
	Category    domain.TransactionCategory
	IsRecurring bool
}

// TransactionFilter условия выборки журнала. Nil поля не участвуют в фильтрации. To включительно.
type TransactionFilter struct {
	ShopID int64
	From   *time.Time
	To     *time.Time
	Type   *domain.TransactionType
}

type RecurringPaymentCreate struct {
	ShopID        int64
	TransactionID *int64
	Description   string
	Amount        domain.EncryptedAmount
	Frequency     domain.Frequency
	NextDate      time.Time
	Category      domain.TransactionCategory
}

type UpcomingPaymentCreate struct {
	ShopID             int64
	RecurringPaymentID *int64
	Description        string
	Amount             domain.EncryptedAmount
	DueDate            time.Time
	PaymentType        domain.PaymentType
	IsPriority         bool
	Category           domain.TransactionCategory
}

// UpcomingPaymentUpdate полная замена изменяемых полей. Частичное обновление собирается в сервисе.
type UpcomingPaymentUpdate struct {
	Description string
	Amount      domain.EncryptedAmount
	DueDate     time.Time
	PaymentType domain.PaymentType
	IsPriority  bool
	Category    domain.TransactionCategory
}
