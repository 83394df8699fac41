package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

func TestComputeWarranties(t *testing.T) {
	orders := []domain.Order{
		{
			ID: 1, OrderNumber: "A", Status: domain.OrderStatusCompleted, CreatedAt: date(2023, 8, 31),
			Items: []domain.OrderItem{
				{ID: 10, ProductName: "Charger", WarrantyMonths: 6},
				{ID: 11, ProductName: "Cable"},
				{ID: 12, ProductName: "Phone", WarrantyMonths: 12},
			},
		},
		{
			ID: 2, Status: domain.OrderStatusCancelled, CreatedAt: date(2024, 1, 1),
			Items: []domain.OrderItem{{ID: 20, WarrantyMonths: 24}},
		},
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	got := ComputeWarranties(orders, now)
	require.Len(t, got, 2)

	assert.Equal(t, int64(10), got[0].ItemID)
	assert.Equal(t, date(2024, 2, 29), got[0].WarrantyEndDate)
	assert.False(t, got[0].Active)

	assert.Equal(t, int64(12), got[1].ItemID)
	assert.Equal(t, date(2024, 8, 31), got[1].WarrantyEndDate)
	assert.True(t, got[1].Active)

	assert.NotNil(t, ComputeWarranties(nil, now))
}
