package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

// Суммы отдаются строками decimal, чтобы клиент не терял точность.

type TransactionResponse struct {
	ID                 int64           `json:"id"`
	ShopID             int64           `json:"shop_id"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	Date               string          `json:"date"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	IsRecurring        bool            `json:"is_recurring"`
	RecurringPaymentID *int64          `json:"recurring_payment_id,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

func newTransactionResponse(v *service.TransactionView) TransactionResponse {
	return TransactionResponse{
		ID:                 v.ID,
		ShopID:             v.ShopID,
		Description:        v.Description,
		Amount:             v.Amount,
		Date:               v.Date.Format(time.RFC3339),
		Type:               string(v.Type),
		Category:           string(v.Category),
		IsRecurring:        v.IsRecurring,
		RecurringPaymentID: v.RecurringPaymentID,
		CreatedAt:          v.CreatedAt.Format(time.RFC3339),
	}
}

func newTransactionResponses(views []service.TransactionView) []TransactionResponse {
	response := make([]TransactionResponse, len(views))
	for i := range views {
		response[i] = newTransactionResponse(&views[i])
	}
	return response
}

type UpcomingPaymentResponse struct {
	ID                 int64           `json:"id"`
	ShopID             int64           `json:"shop_id"`
	RecurringPaymentID *int64          `json:"recurring_payment_id,omitempty"`
	Description        string          `json:"description"`
	Amount             decimal.Decimal `json:"amount"`
	DueDate            string          `json:"due_date"`
	PaymentType        string          `json:"payment_type"`
	IsPriority         bool            `json:"is_priority"`
	Category           string          `json:"category,omitempty"`
}

func newUpcomingPaymentResponse(v *service.UpcomingPaymentView) UpcomingPaymentResponse {
	return UpcomingPaymentResponse{
		ID:                 v.ID,
		ShopID:             v.ShopID,
		RecurringPaymentID: v.RecurringPaymentID,
		Description:        v.Description,
		Amount:             v.Amount,
		DueDate:            v.DueDate.Format(dateLayout),
		PaymentType:        string(v.PaymentType),
		IsPriority:         v.IsPriority,
		Category:           string(v.Category),
	}
}

func newUpcomingPaymentResponses(views []service.UpcomingPaymentView) []UpcomingPaymentResponse {
	response := make([]UpcomingPaymentResponse, len(views))
	for i := range views {
		response[i] = newUpcomingPaymentResponse(&views[i])
	}
	return response
}

type RecurringPaymentResponse struct {
	ID            int64           `json:"id"`
	ShopID        int64           `json:"shop_id"`
	TransactionID *int64          `json:"transaction_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     string          `json:"frequency"`
	NextDate      string          `json:"next_date"`
	Category      string          `json:"category"`
}

func newRecurringPaymentResponses(views []service.RecurringPaymentView) []RecurringPaymentResponse {
	response := make([]RecurringPaymentResponse, len(views))
	for i, v := range views {
		response[i] = RecurringPaymentResponse{
			ID:            v.ID,
			ShopID:        v.ShopID,
			TransactionID: v.TransactionID,
			Description:   v.Description,
			Amount:        v.Amount,
			Frequency:     string(v.Frequency),
			NextDate:      v.NextDate.Format(dateLayout),
			Category:      string(v.Category),
		}
	}
	return response
}

type WalletResponse struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer_id"`
	ShopID        int64           `json:"shop_id"`
	Balance       decimal.Decimal `json:"balance"`
	LoyaltyPoints decimal.Decimal `json:"loyalty_points"`
	UpdatedAt     string          `json:"updated_at"`
}

// newWalletResponse nil означает, что кошелька еще нет.
func newWalletResponse(v *service.WalletView) *WalletResponse {
	if v == nil {
		return nil
	}
	return &WalletResponse{
		ID:            v.ID,
		CustomerID:    v.CustomerID,
		ShopID:        v.ShopID,
		Balance:       v.Balance,
		LoyaltyPoints: v.LoyaltyPoints,
		UpdatedAt:     v.UpdatedAt.Format(time.RFC3339),
	}
}

type PaymentResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

func newPaymentResponses(views []service.PaymentView) []PaymentResponse {
	response := make([]PaymentResponse, len(views))
	for i, v := range views {
		response[i] = PaymentResponse{
			ID:        v.ID,
			OrderID:   v.OrderID,
			Method:    string(v.Method),
			Amount:    v.Amount,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		}
	}
	return response
}
