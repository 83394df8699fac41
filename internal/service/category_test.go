package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

func TestParseCategoryTable(t *testing.T) {
	table, err := ParseCategoryTable(DefaultCategoryTable)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryShopRent, table[domain.PaymentTypeOneTime])
	assert.Equal(t, domain.CategoryUtilities, table[domain.PaymentTypeRecurring])

	table, err = ParseCategoryTable(" RECURRING : SALARIES , ONE_TIME:MAINTENANCE ")
	require.NoError(t, err)
	assert.Equal(t, domain.CategorySalaries, table[domain.PaymentTypeRecurring])
}

func TestParseCategoryTable_Errors(t *testing.T) {
	tests := map[string]string{
		"not exhaustive":       "ONE_TIME:SHOP_RENT",
		"unknown category":     "ONE_TIME:SHOP_RENT,RECURRING:PARTY",
		"unknown payment type": "ONE_TIME:SHOP_RENT,RECURRING:UTILITIES,WEEKLY:OTHER",
		"duplicate":            "ONE_TIME:SHOP_RENT,ONE_TIME:OTHER,RECURRING:UTILITIES",
		"malformed":            "ONE_TIME=SHOP_RENT",
		"empty":                "",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCategoryTable(raw)
			assert.Error(t, err)
		})
	}
}

func TestCategoryTable_Resolve(t *testing.T) {
	table, err := ParseCategoryTable(DefaultCategoryTable)
	require.NoError(t, err)

	recurring := &domain.UpcomingPayment{PaymentType: domain.PaymentTypeRecurring}
	assert.Equal(t, domain.CategoryUtilities, table.Resolve(recurring))

	explicit := &domain.UpcomingPayment{PaymentType: domain.PaymentTypeRecurring, Category: domain.CategorySalaries}
	assert.Equal(t, domain.CategorySalaries, table.Resolve(explicit))

	unknown := &domain.UpcomingPayment{PaymentType: domain.PaymentType("OTHER")}
	assert.Equal(t, domain.CategoryOther, table.Resolve(unknown))
}
