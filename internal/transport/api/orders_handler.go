package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/service"
)

// IdempotencyKeyHeader идентификатор события завершения заказа. Повтор запроса с тем же ключом ничего
// не меняет.
const IdempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errors.New("idempotency key header must be a UUID")

type OrdersHandler struct {
	svs SettlementServicer
}

func NewOrdersHandler(svs SettlementServicer) *OrdersHandler {
	return &OrdersHandler{
		svs: svs,
	}
}

type CompletedPaymentParams struct {
	Method string          `json:"method" binding:"required,payment_method"`
	Amount decimal.Decimal `json:"amount"`
}

type CompleteOrderParams struct {
	OrderID       int64                    `json:"order_id"       binding:"required,gt=0"`
	OrderNumber   string                   `json:"order_number"   binding:"required,max_bytes=64"`
	CustomerID    *int64                   `json:"customer_id"    binding:"omitempty,gt=0"`
	CompletedAt   *time.Time               `json:"completed_at"`
	Payments      []CompletedPaymentParams `json:"payments"       binding:"dive"`
	WalletUsed    decimal.Decimal          `json:"wallet_used"`
	DuePaid       decimal.Decimal          `json:"due_paid"`
	ExtraAdded    decimal.Decimal          `json:"extra_added"`
	LoyaltyGained decimal.Decimal          `json:"loyalty_gained"`
}

type SettlementResponse struct {
	Duplicate bool            `json:"duplicate"`
	Wallet    *WalletResponse `json:"wallet"`
}

// Complete применяет к кошельку и журналу магазина завершенный заказ. Вход для кассы, которая не публикует
// события в очередь.
func (h *OrdersHandler) Complete(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	eventID, parseErr := uuid.Parse(c.GetHeader(IdempotencyKeyHeader))
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, errInvalidIdempotencyKey).SetType(gin.ErrorTypePublic)
		return
	}

	var params CompleteOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	order := service.CompletedOrder{
		OrderID:       params.OrderID,
		OrderNumber:   params.OrderNumber,
		ShopID:        shopID,
		CustomerID:    params.CustomerID,
		CompletedAt:   time.Now(),
		Payments:      make([]service.CompletedPayment, len(params.Payments)),
		WalletUsed:    params.WalletUsed,
		DuePaid:       params.DuePaid,
		ExtraAdded:    params.ExtraAdded,
		LoyaltyGained: params.LoyaltyGained,
	}
	if params.CompletedAt != nil {
		order.CompletedAt = *params.CompletedAt
	}
	for i, p := range params.Payments {
		order.Payments[i] = service.CompletedPayment{
			Method: domain.PaymentMethod(p.Method),
			Amount: p.Amount,
		}
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.svs.ApplyCompletedOrder(reqCtx, eventID, order)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, &SettlementResponse{
		Duplicate: result.Duplicate,
		Wallet:    newWalletResponse(result.Wallet),
	})
}
