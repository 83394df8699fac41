package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

type BalanceHandler struct {
	svs BalanceServicer
}

func NewBalanceHandler(svs BalanceServicer) *BalanceHandler {
	return &BalanceHandler{
		svs: svs,
	}
}

type ShopBalanceResponse struct {
	ShopID      int64           `json:"shop_id"`
	Opened      bool            `json:"opened"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	CardBalance decimal.Decimal `json:"card_balance"`
	BankBalance decimal.Decimal `json:"bank_balance"`
	OpeningCash decimal.Decimal `json:"opening_cash"`
	OpeningCard decimal.Decimal `json:"opening_card"`
	OpeningBank decimal.Decimal `json:"opening_bank"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

func newShopBalanceResponse(v *service.ShopBalanceView) ShopBalanceResponse {
	response := ShopBalanceResponse{
		ShopID:      v.ShopID,
		Opened:      v.Exists,
		CashBalance: v.CashBalance,
		CardBalance: v.CardBalance,
		BankBalance: v.BankBalance,
		OpeningCash: v.OpeningCash,
		OpeningCard: v.OpeningCard,
		OpeningBank: v.OpeningBank,
	}
	if !v.UpdatedAt.IsZero() {
		response.UpdatedAt = v.UpdatedAt.Format(time.RFC3339)
	}
	return response
}

type DiscrepancyResponse struct {
	SubBalance string          `json:"sub_balance"`
	Cached     decimal.Decimal `json:"cached"`
	Opening    decimal.Decimal `json:"opening"`
	Calculated decimal.Decimal `json:"calculated"`
	Difference decimal.Decimal `json:"difference"`
}

type ShopBalanceReportResponse struct {
	Balance          ShopBalanceResponse        `json:"balance"`
	Payments         []PaymentResponse          `json:"payments"`
	CalculatedTotals map[string]decimal.Decimal `json:"calculated_totals"`
	Discrepancies    []DiscrepancyResponse      `json:"discrepancies"`
}

func (b *BalanceHandler) Show(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	report, err := b.svs.GetShopBalance(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	totals := make(map[string]decimal.Decimal, len(report.CalculatedTotals))
	for method, total := range report.CalculatedTotals {
		totals[string(method)] = total
	}
	discrepancies := make([]DiscrepancyResponse, len(report.Discrepancies))
	for i, d := range report.Discrepancies {
		discrepancies[i] = DiscrepancyResponse{
			SubBalance: string(d.SubBalance),
			Cached:     d.Cached,
			Opening:    d.Opening,
			Calculated: d.Calculated,
			Difference: d.Difference,
		}
	}

	c.JSON(http.StatusOK, &ShopBalanceReportResponse{
		Balance:          newShopBalanceResponse(&report.Balance),
		Payments:         newPaymentResponses(report.Payments),
		CalculatedTotals: totals,
		Discrepancies:    discrepancies,
	})
}

type OpenBalanceParams struct {
	CashBalance decimal.Decimal `json:"cash_balance"`
	CardBalance decimal.Decimal `json:"card_balance"`
	BankBalance decimal.Decimal `json:"bank_balance"`
}

// Open заводит кешированный баланс магазина с начальными остатками. Повторное открытие - 422.
func (b *BalanceHandler) Open(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	var params OpenBalanceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	view, err := b.svs.OpenShopBalance(reqCtx, shopID, params.CashBalance, params.CardBalance, params.BankBalance)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newShopBalanceResponse(view))
}
