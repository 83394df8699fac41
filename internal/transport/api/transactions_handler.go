package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/internal/service"
)

const maxDescriptionBytes = 512

type TransactionsHandler struct {
	svs LedgerServicer
}

func NewTransactionsHandler(svs LedgerServicer) *TransactionsHandler {
	return &TransactionsHandler{
		svs: svs,
	}
}

type CreateTransactionParams struct {
	Description string          `json:"description" binding:"required,max_bytes=512"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"        binding:"omitempty,datetime=2006-01-02"`
	Type        string          `json:"type"        binding:"required,txn_type"`
	Category    string          `json:"category"    binding:"txn_category"`
	IsRecurring bool            `json:"is_recurring"`
	Frequency   string          `json:"frequency"   binding:"required_if=IsRecurring true,frequency"`
	NextDate    string          `json:"next_date"   binding:"omitempty,datetime=2006-01-02"`
}

func (h *TransactionsHandler) Create(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	var params CreateTransactionParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	in := service.CreateTransactionInput{
		ShopID:      shopID,
		Description: params.Description,
		Amount:      params.Amount,
		Type:        domain.TransactionType(params.Type),
		Category:    domain.TransactionCategory(params.Category),
		IsRecurring: params.IsRecurring,
		NextDate:    parseOptionalDate(params.NextDate),
	}
	if date := parseOptionalDate(params.Date); date != nil {
		in.Date = *date
	} else {
		in.Date = time.Now()
	}
	if params.Frequency != "" {
		frequency := domain.Frequency(params.Frequency)
		in.Frequency = &frequency
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.CreateTransaction(reqCtx, in)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransactionResponse(view))
}

// Index журнал магазина. Необязательные фильтры: from, to (YYYY-MM-DD, включительно), type.
func (h *TransactionsHandler) Index(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	from, fromOK := parseDateQuery(c, "from")
	if !fromOK {
		return
	}
	to, toOK := parseDateQuery(c, "to")
	if !toOK {
		return
	}
	filter := repoargs.TransactionFilter{ShopID: shopID, From: from, To: endOfDay(to)}
	if rawType := c.Query("type"); rawType != "" {
		txType := domain.TransactionType(rawType)
		filter.Type = &txType
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	views, err := h.svs.ListTransactions(reqCtx, filter)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponses(views))
}

func (h *TransactionsHandler) Show(c *gin.Context) {
	view, ok := h.loadOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(view))
}

// Delete административное удаление записи журнала.
func (h *TransactionsHandler) Delete(c *gin.Context) {
	view, ok := h.loadOwned(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.svs.DeleteTransaction(reqCtx, view.ID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Count    int             `json:"count"`
}

type CategorySummaryResponse struct {
	ShopID       int64                   `json:"shop_id"`
	TotalIncome  decimal.Decimal         `json:"total_income"`
	TotalExpense decimal.Decimal         `json:"total_expense"`
	Categories   []CategoryTotalResponse `json:"categories"`
}

func (h *TransactionsHandler) Summary(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	from, fromOK := parseDateQuery(c, "from")
	if !fromOK {
		return
	}
	to, toOK := parseDateQuery(c, "to")
	if !toOK {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	summary, err := h.svs.GetCategorySummary(reqCtx, shopID, from, endOfDay(to))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := CategorySummaryResponse{
		ShopID:       summary.ShopID,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Categories:   make([]CategoryTotalResponse, len(summary.Categories)),
	}
	for i, total := range summary.Categories {
		response.Categories[i] = CategoryTotalResponse{
			Category: string(total.Category),
			Income:   total.Income,
			Expense:  total.Expense,
			Count:    total.Count,
		}
	}
	c.JSON(http.StatusOK, &response)
}

func (h *TransactionsHandler) Monthly(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	months, err := h.svs.GetMonthlyTotals(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMonthlyTotalResponses(months))
}

// loadOwned загружает запись журнала из пути и проверяет, что она принадлежит магазину запроса.
func (h *TransactionsHandler) loadOwned(c *gin.Context) (*service.TransactionView, bool) {
	shopID := getShopIDFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := h.svs.GetTransaction(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return nil, false
	}
	if view.ShopID != shopID {
		abortNotInShop(c, "transaction", id)
		return nil, false
	}
	return view, true
}

// endOfDay дата "по" из запроса включает весь день.
func endOfDay(day *time.Time) *time.Time {
	if day == nil {
		return nil
	}
	end := day.Add(24*time.Hour - time.Nanosecond)
	return &end
}
