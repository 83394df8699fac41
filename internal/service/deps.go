package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

//go:generate mockgen -source=deps.go -destination=mocks/mocks.go -package=mocks

// AmountCodec общий слой шифрования сумм. Не зависит от логики заказов. Decrypt и DecryptAll для чтения,
// строгие варианты для записи, которая опирается на прочитанное значение.
type AmountCodec interface {
	Decrypt(ctx context.Context, stored domain.EncryptedAmount) decimal.Decimal
	DecryptAll(ctx context.Context, stored []domain.EncryptedAmount) []decimal.Decimal
	DecryptStrict(ctx context.Context, stored domain.EncryptedAmount) (decimal.Decimal, error)
	DecryptAllStrict(ctx context.Context, stored []domain.EncryptedAmount) ([]decimal.Decimal, error)
	Encrypt(ctx context.Context, amount decimal.Decimal) (domain.EncryptedAmount, error)
}

// AccessProvider проверка членства пользователя в магазинах. Реализуется сервисом авторизации.
type AccessProvider interface {
	HasAccess(ctx context.Context, userID, shopID int64) (bool, error)
	ListShops(ctx context.Context, userID int64) ([]int64, error)
}
