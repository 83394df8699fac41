package repoargs

import (
	"github.com/fsdevblog/pos-ledger/internal/domain"
)

type WalletTransactionCreate struct {
	CustomerID int64
	ShopID     int64
	OrderID    *int64
	Type       domain.WalletTransactionType
	Amount     domain.EncryptedAmount
}

type WalletBalanceUpdate struct {
	ID            int64
	Balance       domain.EncryptedAmount
	LoyaltyPoints domain.EncryptedAmount
}
