package domain

// EncryptedAmount хранимое представление денежной суммы или количества баллов. В зависимости от режима
// развертывания это base64 шифротекст сервиса конвертного шифрования, строка локального fallback шифра или
// открытое десятичное значение.
type EncryptedAmount string

type TransactionType string

const (
	TransactionTypeOrderPayment TransactionType = "ORDER_PAYMENT"
	TransactionTypeDuePayment   TransactionType = "DUE_PAYMENT"
	TransactionTypeExtraPayment TransactionType = "EXTRA_PAYMENT"
	TransactionTypeRefund       TransactionType = "REFUND"
	TransactionTypeExpense      TransactionType = "EXPENSE"
)

// IsIncome возвращает true для типов, которые учитываются как доход магазина.
func (t TransactionType) IsIncome() bool {
	switch t {
	case TransactionTypeOrderPayment, TransactionTypeDuePayment, TransactionTypeExtraPayment:
		return true
	default:
		return false
	}
}

// IsExpense возвращает true для типов, которые учитываются как расход магазина.
func (t TransactionType) IsExpense() bool {
	return t == TransactionTypeRefund || t == TransactionTypeExpense
}

func (t TransactionType) Valid() bool {
	return t.IsIncome() || t.IsExpense()
}

type TransactionCategory string

const (
	CategorySales       TransactionCategory = "SALES"
	CategoryDueCollect  TransactionCategory = "DUE_COLLECTION"
	CategoryShopRent    TransactionCategory = "SHOP_RENT"
	CategoryUtilities   TransactionCategory = "UTILITIES"
	CategorySalaries    TransactionCategory = "SALARIES"
	CategoryInventory   TransactionCategory = "INVENTORY"
	CategoryMaintenance TransactionCategory = "MAINTENANCE"
	CategoryOther       TransactionCategory = "OTHER"
)

var knownCategories = map[TransactionCategory]struct{}{
	CategorySales:       {},
	CategoryDueCollect:  {},
	CategoryShopRent:    {},
	CategoryUtilities:   {},
	CategorySalaries:    {},
	CategoryInventory:   {},
	CategoryMaintenance: {},
	CategoryOther:       {},
}

func (c TransactionCategory) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

type WalletTransactionType string

const (
	WalletTxOrderPayment  WalletTransactionType = "ORDER_PAYMENT"
	WalletTxDuePayment    WalletTransactionType = "DUE_PAYMENT"
	WalletTxExtraPayment  WalletTransactionType = "EXTRA_PAYMENT"
	WalletTxLoyaltyPoints WalletTransactionType = "LOYALTY_POINTS"
)

// BalanceSign знак, с которым сумма транзакции входит в баланс кошелька. ORDER_PAYMENT списывает средства
// кошелька (при нехватке баланс уходит в минус - долг), DUE_PAYMENT и EXTRA_PAYMENT пополняют его.
// LOYALTY_POINTS на денежный баланс не влияет.
func (t WalletTransactionType) BalanceSign() int {
	switch t {
	case WalletTxOrderPayment:
		return -1
	case WalletTxDuePayment, WalletTxExtraPayment:
		return 1
	default:
		return 0
	}
}

type Frequency string

const (
	FrequencyDaily     Frequency = "DAILY"
	FrequencyWeekly    Frequency = "WEEKLY"
	FrequencyBiweekly  Frequency = "BIWEEKLY"
	FrequencyMonthly   Frequency = "MONTHLY"
	FrequencyQuarterly Frequency = "QUARTERLY"
	FrequencyAnnually  Frequency = "ANNUALLY"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	default:
		return false
	}
}

type PaymentType string

const (
	PaymentTypeOneTime   PaymentType = "ONE_TIME"
	PaymentTypeRecurring PaymentType = "RECURRING"
)

// PaymentTypes полный список типов предстоящих платежей. Используется для проверки полноты таблицы категорий.
var PaymentTypes = []PaymentType{PaymentTypeOneTime, PaymentTypeRecurring}

func (t PaymentType) Valid() bool {
	return t == PaymentTypeOneTime || t == PaymentTypeRecurring
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// PaymentMethods методы оплаты в порядке вывода в отчетах.
var PaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodBank, PaymentMethodWallet}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

type OrderStatusType string

const (
	OrderStatusPending   OrderStatusType = "PENDING"
	OrderStatusCompleted OrderStatusType = "COMPLETED"
	OrderStatusCancelled OrderStatusType = "CANCELLED"
)
