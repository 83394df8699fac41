package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

type CustomersHandler struct {
	svs WalletServicer
}

func NewCustomersHandler(svs WalletServicer) *CustomersHandler {
	return &CustomersHandler{
		svs: svs,
	}
}

type WalletTransactionResponse struct {
	ID        int64           `json:"id"`
	OrderID   *int64          `json:"order_id,omitempty"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

type OrderItemResponse struct {
	ID             int64           `json:"id"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int32           `json:"quantity"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	WarrantyMonths int32           `json:"warranty_months"`
}

type WalletModificationsResponse struct {
	WalletUsed    decimal.Decimal `json:"wallet_used"`
	DuePaid       decimal.Decimal `json:"due_paid"`
	ExtraAdded    decimal.Decimal `json:"extra_added"`
	LoyaltyGained decimal.Decimal `json:"loyalty_gained"`
	Net           decimal.Decimal `json:"net"`
}

type OrderResponse struct {
	ID                  int64                       `json:"id"`
	OrderNumber         string                      `json:"order_number"`
	Status              string                      `json:"status"`
	Subtotal            decimal.Decimal             `json:"subtotal"`
	Discount            decimal.Decimal             `json:"discount"`
	Total               decimal.Decimal             `json:"total"`
	Paid                decimal.Decimal             `json:"paid"`
	PaymentDue          decimal.Decimal             `json:"payment_due"`
	CreatedAt           string                      `json:"created_at"`
	Items               []OrderItemResponse         `json:"items"`
	Payments            []PaymentResponse           `json:"payments"`
	WalletModifications WalletModificationsResponse `json:"wallet_modifications"`
}

type OrderHistoryResponse struct {
	ShopID       int64                       `json:"shop_id"`
	Wallet       *WalletResponse             `json:"wallet"`
	Transactions []WalletTransactionResponse `json:"transactions"`
	Orders       []OrderResponse             `json:"orders"`
}

func newOrderHistoryResponse(history *service.OrderHistory) OrderHistoryResponse {
	response := OrderHistoryResponse{
		ShopID:       history.ShopID,
		Wallet:       newWalletResponse(history.Wallet),
		Transactions: make([]WalletTransactionResponse, len(history.Transactions)),
		Orders:       make([]OrderResponse, len(history.Orders)),
	}
	for i, t := range history.Transactions {
		response.Transactions[i] = WalletTransactionResponse{
			ID:        t.ID,
			OrderID:   t.OrderID,
			Type:      string(t.Type),
			Amount:    t.Amount,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		}
	}
	for i := range history.Orders {
		response.Orders[i] = newOrderResponse(&history.Orders[i])
	}
	return response
}

func newOrderResponse(o *service.OrderView) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			OriginalPrice:  item.OriginalPrice,
			SellingPrice:   item.SellingPrice,
			WarrantyMonths: item.WarrantyMonths,
		}
	}
	mods := o.WalletModifications
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Subtotal:    o.Subtotal,
		Discount:    o.Discount,
		Total:       o.Total,
		Paid:        o.Paid,
		PaymentDue:  o.PaymentDue,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		Items:       items,
		Payments:    newPaymentResponses(o.Payments),
		WalletModifications: WalletModificationsResponse{
			WalletUsed:    mods.WalletUsed,
			DuePaid:       mods.DuePaid,
			ExtraAdded:    mods.ExtraAdded,
			LoyaltyGained: mods.LoyaltyGained,
			Net:           mods.Net(),
		},
	}
}

func (h *CustomersHandler) History(c *gin.Context) {
	shopID := getShopIDFromContext(c)
	customerID, ok := parseIDParam(c, "customerID")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	history, err := h.svs.GetOrderHistory(reqCtx, customerID, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderHistoryResponse(history))
}

type ShopOrderHistoryResponse struct {
	ShopID  int64                `json:"shop_id"`
	Failed  bool                 `json:"failed"`
	Error   string               `json:"error,omitempty"`
	History OrderHistoryResponse `json:"history"`
}

// AllShopsHistory история покупателя во всех видимых запрашивающему магазинах. Сбой одного магазина не
// ломает ответ: такой магазин помечается failed с пустой историей.
func (h *CustomersHandler) AllShopsHistory(c *gin.Context) {
	requesterID := getUserIDFromContext(c)
	customerID, ok := parseIDParam(c, "customerID")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, ReportServiceTimeout)
	defer cancel()

	histories, err := h.svs.GetHistoryForAllShops(reqCtx, requesterID, customerID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ShopOrderHistoryResponse, len(histories))
	for i, shop := range histories {
		response[i] = ShopOrderHistoryResponse{
			ShopID:  shop.ShopID,
			Failed:  shop.Failed,
			Error:   shop.Error,
			History: newOrderHistoryResponse(shop.History),
		}
	}
	c.JSON(http.StatusOK, response)
}

type WarrantyResponse struct {
	OrderID         int64  `json:"order_id"`
	OrderNumber     string `json:"order_number"`
	ItemID          int64  `json:"item_id"`
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	WarrantyMonths  int32  `json:"warranty_months"`
	PurchaseDate    string `json:"purchase_date"`
	WarrantyEndDate string `json:"warranty_end_date"`
	Active          bool   `json:"active"`
}

func (h *CustomersHandler) Warranties(c *gin.Context) {
	shopID := getShopIDFromContext(c)
	customerID, ok := parseIDParam(c, "customerID")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	warranties, err := h.svs.GetWarranties(reqCtx, customerID, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]WarrantyResponse, len(warranties))
	for i, w := range warranties {
		response[i] = WarrantyResponse{
			OrderID:         w.OrderID,
			OrderNumber:     w.OrderNumber,
			ItemID:          w.ItemID,
			ProductID:       w.ProductID,
			ProductName:     w.ProductName,
			WarrantyMonths:  w.WarrantyMonths,
			PurchaseDate:    w.PurchaseDate.Format(dateLayout),
			WarrantyEndDate: w.WarrantyEndDate.Format(dateLayout),
			Active:          w.Active,
		}
	}
	c.JSON(http.StatusOK, response)
}

type PayDueParams struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// PayDue оплата долга покупателем вне заказа.
func (h *CustomersHandler) PayDue(c *gin.Context) {
	shopID := getShopIDFromContext(c)
	customerID, ok := parseIDParam(c, "customerID")
	if !ok {
		return
	}

	var params PayDueParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	var date time.Time
	if parsed := parseOptionalDate(params.Date); parsed != nil {
		date = *parsed
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	wallet, err := h.svs.PayDue(reqCtx, customerID, shopID, params.Amount, date)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newWalletResponse(wallet))
}
