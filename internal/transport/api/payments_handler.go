package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/service"
)

// sweepTimeout проход по всем шаблонам может быть долгим.
const sweepTimeout = time.Minute

type PaymentsHandler struct {
	svs     SchedulerServicer
	sweeper SweepTrigger
}

func NewPaymentsHandler(svs SchedulerServicer, sweeper SweepTrigger) *PaymentsHandler {
	return &PaymentsHandler{
		svs:     svs,
		sweeper: sweeper,
	}
}

type CreateUpcomingParams struct {
	RecurringPaymentID *int64          `json:"recurring_payment_id" binding:"omitempty,gt=0"`
	Description        string          `json:"description"          binding:"required,max_bytes=512"`
	Amount             decimal.Decimal `json:"amount"`
	DueDate            string          `json:"due_date"             binding:"required,datetime=2006-01-02"`
	PaymentType        string          `json:"payment_type"         binding:"required,payment_type"`
	IsPriority         bool            `json:"is_priority"`
	Category           string          `json:"category"             binding:"txn_category"`
}

func (h *PaymentsHandler) CreateUpcoming(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	var params CreateUpcomingParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	in := service.CreateUpcomingPaymentInput{
		ShopID:             shopID,
		RecurringPaymentID: params.RecurringPaymentID,
		Description:        params.Description,
		Amount:             params.Amount,
		PaymentType:        domain.PaymentType(params.PaymentType),
		IsPriority:         params.IsPriority,
		Category:           domain.TransactionCategory(params.Category),
	}
	if due := parseOptionalDate(params.DueDate); due != nil {
		in.DueDate = *due
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.CreateUpcomingPayment(reqCtx, in)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUpcomingPaymentResponse(view))
}

func (h *PaymentsHandler) IndexUpcoming(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	views, err := h.svs.ListUpcomingPayments(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUpcomingPaymentResponses(views))
}

func (h *PaymentsHandler) ShowUpcoming(c *gin.Context) {
	view, ok := h.loadOwnedUpcoming(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUpcomingPaymentResponse(view))
}

// UpdateUpcomingParams частичное обновление: переданы только меняемые поля.
type UpdateUpcomingParams struct {
	Description *string          `json:"description"  binding:"omitempty,max_bytes=512"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"due_date"     binding:"omitempty,datetime=2006-01-02"`
	PaymentType *string          `json:"payment_type" binding:"omitempty,payment_type"`
	IsPriority  *bool            `json:"is_priority"`
	Category    *string          `json:"category"     binding:"omitempty,txn_category"`
}

func (h *PaymentsHandler) UpdateUpcoming(c *gin.Context) {
	var params UpdateUpcomingParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	current, ok := h.loadOwnedUpcoming(c)
	if !ok {
		return
	}

	in := service.UpdateUpcomingPaymentInput{
		Description: params.Description,
		Amount:      params.Amount,
		IsPriority:  params.IsPriority,
	}
	if params.DueDate != nil {
		in.DueDate = parseOptionalDate(*params.DueDate)
	}
	if params.PaymentType != nil {
		paymentType := domain.PaymentType(*params.PaymentType)
		in.PaymentType = &paymentType
	}
	if params.Category != nil {
		category := domain.TransactionCategory(*params.Category)
		in.Category = &category
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.UpdateUpcomingPayment(reqCtx, current.ID, in)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUpcomingPaymentResponse(view))
}

func (h *PaymentsHandler) DeleteUpcoming(c *gin.Context) {
	current, ok := h.loadOwnedUpcoming(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.DeleteUpcomingPayment(reqCtx, current.ID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type MarkAsPaidParams struct {
	PaidAt string `json:"paid_at" binding:"omitempty,datetime=2006-01-02"`
}

type MarkAsPaidResponse struct {
	Transaction TransactionResponse      `json:"transaction"`
	Next        *UpcomingPaymentResponse `json:"next,omitempty"`
}

// MarkAsPaid проводит расход по предстоящему платежу. Тело запроса необязательно.
func (h *PaymentsHandler) MarkAsPaid(c *gin.Context) {
	var params MarkAsPaidParams
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
			_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
			return
		}
	}

	current, ok := h.loadOwnedUpcoming(c)
	if !ok {
		return
	}

	paidAt := time.Now()
	if date := parseOptionalDate(params.PaidAt); date != nil {
		paidAt = *date
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := h.svs.MarkAsPaid(reqCtx, current.ID, paidAt)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := MarkAsPaidResponse{Transaction: newTransactionResponse(&result.Transaction)}
	if result.Next != nil {
		next := newUpcomingPaymentResponse(result.Next)
		response.Next = &next
	}
	c.JSON(http.StatusOK, &response)
}

func (h *PaymentsHandler) IndexRecurring(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	views, err := h.svs.ListRecurringPayments(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecurringPaymentResponses(views))
}

// DeleteRecurring удаляет шаблон. Уже созданные предстоящие платежи остаются.
func (h *PaymentsHandler) DeleteRecurring(c *gin.Context) {
	shopID := getShopIDFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.GetRecurringPayment(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	if view.ShopID != shopID {
		abortNotInShop(c, "recurring payment", id)
		return
	}

	if deleteErr := h.svs.DeleteRecurringPayment(reqCtx, id); deleteErr != nil {
		abortWithServiceError(c, deleteErr)
		return
	}
	c.Status(http.StatusNoContent)
}

type ProcessRecurringResponse struct {
	Created int `json:"created"`
}

// ProcessRecurring ручной запуск прохода по шаблонам. Частичный сбой отдает 500, но созданные платежи
// остаются.
func (h *PaymentsHandler) ProcessRecurring(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, sweepTimeout)
	defer cancel()

	created, err := h.sweeper.Trigger(reqCtx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, &ProcessRecurringResponse{Created: created})
}

func (h *PaymentsHandler) loadOwnedUpcoming(c *gin.Context) (*service.UpcomingPaymentView, bool) {
	shopID := getShopIDFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.GetUpcomingPayment(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return nil, false
	}
	if view.ShopID != shopID {
		abortNotInShop(c, "upcoming payment", id)
		return nil, false
	}
	return view, true
}
