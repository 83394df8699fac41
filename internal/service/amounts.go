package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// amountBatch собирает хранимые суммы вместе с адресами, куда положить расшифрованное значение, чтобы
// расшифровать их одним параллельным вызовом.
type amountBatch struct {
	values  []domain.EncryptedAmount
	targets []*decimal.Decimal
}

func (b *amountBatch) add(stored domain.EncryptedAmount, dst *decimal.Decimal) {
	b.values = append(b.values, stored)
	b.targets = append(b.targets, dst)
}

func (b *amountBatch) resolve(ctx context.Context, codec AmountCodec) {
	if len(b.values) == 0 {
		return
	}
	for i, v := range codec.DecryptAll(ctx, b.values) {
		*b.targets[i] = v
	}
}
