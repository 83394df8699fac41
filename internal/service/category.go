package service

import (
	"fmt"
	"strings"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// DefaultCategoryTable значение PAYMENT_CATEGORY_MAP по умолчанию.
const DefaultCategoryTable = "ONE_TIME:SHOP_RENT,RECURRING:UTILITIES"

// CategoryTable сопоставляет тип предстоящего платежа категории транзакции, создаваемой при его оплате.
type CategoryTable map[domain.PaymentType]domain.TransactionCategory

// ParseCategoryTable разбирает строку вида "ONE_TIME:SHOP_RENT,RECURRING:UTILITIES". Таблица должна покрывать
// все типы платежей.
func ParseCategoryTable(raw string) (CategoryTable, error) {
	table := make(CategoryTable)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("category table: malformed pair %q", pair)
		}
		paymentType := domain.PaymentType(strings.TrimSpace(key))
		category := domain.TransactionCategory(strings.TrimSpace(value))
		if !category.Valid() {
			return nil, fmt.Errorf("category table: unknown category %q", category)
		}
		if _, dup := table[paymentType]; dup {
			return nil, fmt.Errorf("category table: duplicate payment type %q", paymentType)
		}
		table[paymentType] = category
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate проверяет, что таблица содержит только известные типы и покрывает каждый из них.
func (t CategoryTable) Validate() error {
	known := make(map[domain.PaymentType]struct{}, len(domain.PaymentTypes))
	for _, pt := range domain.PaymentTypes {
		known[pt] = struct{}{}
		if _, ok := t[pt]; !ok {
			return fmt.Errorf("category table: no category for payment type %q", pt)
		}
	}
	for pt := range t {
		if _, ok := known[pt]; !ok {
			return fmt.Errorf("category table: unknown payment type %q", pt)
		}
	}
	return nil
}

// Resolve категория для оплаты платежа: явная категория платежа, иначе из таблицы.
func (t CategoryTable) Resolve(p *domain.UpcomingPayment) domain.TransactionCategory {
	if p.Category != "" {
		return p.Category
	}
	if c, ok := t[p.PaymentType]; ok {
		return c
	}
	return domain.CategoryOther
}
