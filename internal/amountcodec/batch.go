package amountcodec

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// decryptBatch раскладывает значения по горутинам (не более limit одновременно) и собирает результаты по
// индексам. Decrypt никогда не возвращает ошибку, поэтому сбой одного элемента не прерывает пачку.
func decryptBatch(
	ctx context.Context,
	c *Codec,
	stored []domain.EncryptedAmount,
	limit int,
) []decimal.Decimal {
	results := make([]decimal.Decimal, len(stored))
	if len(stored) == 0 {
		return results
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, value := range stored {
		g.Go(func() error {
			results[i] = c.Decrypt(ctx, value)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// decryptBatchStrict отменяет оставшиеся расшифровки после первой ошибки.
func decryptBatchStrict(
	ctx context.Context,
	c *Codec,
	stored []domain.EncryptedAmount,
	limit int,
) ([]decimal.Decimal, error) {
	results := make([]decimal.Decimal, len(stored))
	if len(stored) == 0 {
		return results, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, value := range stored {
		g.Go(func() error {
			amount, err := c.DecryptStrict(gCtx, value)
			if err != nil {
				return err
			}
			results[i] = amount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return results, nil
}
