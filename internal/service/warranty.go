package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

type WarrantyView struct {
	OrderID         int64
	OrderNumber     string
	ItemID          int64
	ProductID       int64
	ProductName     string
	WarrantyMonths  int32
	PurchaseDate    time.Time
	WarrantyEndDate time.Time
	Active          bool
}

// ComputeWarranties строит гарантии по позициям завершенных заказов. Окончание гарантии считается от даты заказа
// календарными месяцами, гарантия активна, пока now раньше даты окончания.
func ComputeWarranties(orders []domain.Order, now time.Time) []WarrantyView {
	result := make([]WarrantyView, 0)
	for _, order := range orders {
		if order.Status != domain.OrderStatusCompleted {
			continue
		}
		for _, item := range order.Items {
			if item.WarrantyMonths <= 0 {
				continue
			}
			end := addMonthsClamped(order.CreatedAt, int(item.WarrantyMonths))
			result = append(result, WarrantyView{
				OrderID:         order.ID,
				OrderNumber:     order.OrderNumber,
				ItemID:          item.ID,
				ProductID:       item.ProductID,
				ProductName:     item.ProductName,
				WarrantyMonths:  item.WarrantyMonths,
				PurchaseDate:    order.CreatedAt,
				WarrantyEndDate: end,
				Active:          now.Before(end),
			})
		}
	}
	return result
}

// GetWarranties гарантии покупателя в магазине на момент вызова.
func (w *WalletLedger) GetWarranties(ctx context.Context, customerID, shopID int64) ([]WarrantyView, error) {
	orders, err := w.orderRepo.ListCompletedByCustomerShop(ctx, customerID, shopID)
	if err != nil {
		return nil, fmt.Errorf("warranties: %w", err)
	}
	return ComputeWarranties(orders, w.now()), nil
}
