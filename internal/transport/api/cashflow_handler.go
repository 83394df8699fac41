package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

type CashFlowHandler struct {
	report  CashFlowServicer
	wallets WalletServicer
}

func NewCashFlowHandler(report CashFlowServicer, wallets WalletServicer) *CashFlowHandler {
	return &CashFlowHandler{
		report:  report,
		wallets: wallets,
	}
}

type CustomerDueResponse struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	WalletID     int64           `json:"wallet_id"`
	DueAmount    decimal.Decimal `json:"due_amount"`
}

type CustomerDuesResponse struct {
	TotalDues decimal.Decimal       `json:"total_dues"`
	Count     int                   `json:"count"`
	Dues      []CustomerDueResponse `json:"dues"`
}

func newCustomerDuesResponse(dues *service.CustomerDues) CustomerDuesResponse {
	response := CustomerDuesResponse{
		TotalDues: dues.TotalDues,
		Count:     dues.Count,
		Dues:      make([]CustomerDueResponse, len(dues.Dues)),
	}
	for i, due := range dues.Dues {
		response.Dues[i] = CustomerDueResponse{
			CustomerID:   due.CustomerID,
			CustomerName: due.CustomerName,
			WalletID:     due.WalletID,
			DueAmount:    due.DueAmount,
		}
	}
	return response
}

type TypeTotalResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type MonthlyTotalResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func newMonthlyTotalResponses(months []service.MonthlyTotal) []MonthlyTotalResponse {
	response := make([]MonthlyTotalResponse, len(months))
	for i, m := range months {
		response[i] = MonthlyTotalResponse{
			Month:   m.Month,
			Income:  m.Income,
			Expense: m.Expense,
			Net:     m.Net,
		}
	}
	return response
}

// GrowthRateResponse при available=false процент не отдается, а reason объясняет почему.
type GrowthRateResponse struct {
	Available bool                `json:"available"`
	Percent   decimal.NullDecimal `json:"percent"`
	Reason    string              `json:"reason,omitempty"`
}

type CashFlowResponse struct {
	ShopID         int64               `json:"shop_id"`
	GeneratedAt    string              `json:"generated_at"`
	CurrentBalance decimal.Decimal     `json:"current_balance"`
	Balance        ShopBalanceResponse `json:"balance"`

	MonthIncome   decimal.Decimal `json:"month_income"`
	MonthExpense  decimal.Decimal `json:"month_expense"`
	MonthProgress decimal.Decimal `json:"month_progress"`

	Transactions []TransactionResponse        `json:"transactions"`
	ByType       map[string]TypeTotalResponse `json:"by_type"`
	ByMonth      []MonthlyTotalResponse       `json:"by_month"`

	CustomerDues CustomerDuesResponse `json:"customer_dues"`

	UpcomingPayments      []UpcomingPaymentResponse `json:"upcoming_payments"`
	TotalUpcomingPayments decimal.Decimal           `json:"total_upcoming_payments"`

	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	AdjustedBalance  decimal.Decimal `json:"adjusted_balance"`
	HealthStatus     string          `json:"health_status"`

	IncomeGrowth  GrowthRateResponse `json:"income_growth"`
	ExpenseGrowth GrowthRateResponse `json:"expense_growth"`
}

func (h *CashFlowHandler) Show(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, ReportServiceTimeout)
	defer cancel()

	report, err := h.report.GetComprehensiveCashFlow(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	byType := make(map[string]TypeTotalResponse, len(report.ByType))
	for t, total := range report.ByType {
		byType[string(t)] = TypeTotalResponse{Total: total.Total, Count: total.Count}
	}

	c.JSON(http.StatusOK, &CashFlowResponse{
		ShopID:                report.ShopID,
		GeneratedAt:           report.GeneratedAt.Format(time.RFC3339),
		CurrentBalance:        report.CurrentBalance,
		Balance:               newShopBalanceResponse(&report.Balance),
		MonthIncome:           report.MonthIncome,
		MonthExpense:          report.MonthExpense,
		MonthProgress:         report.MonthProgress,
		Transactions:          newTransactionResponses(report.Transactions),
		ByType:                byType,
		ByMonth:               newMonthlyTotalResponses(report.ByMonth),
		CustomerDues:          newCustomerDuesResponse(&report.CustomerDues),
		UpcomingPayments:      newUpcomingPaymentResponses(report.UpcomingPayments),
		TotalUpcomingPayments: report.TotalUpcomingPayments,
		ProjectedBalance:      report.ProjectedBalance,
		AdjustedBalance:       report.AdjustedBalance,
		HealthStatus:          string(report.HealthStatus),
		IncomeGrowth:          GrowthRateResponse(report.IncomeGrowth),
		ExpenseGrowth:         GrowthRateResponse(report.ExpenseGrowth),
	})
}

func (h *CashFlowHandler) Dues(c *gin.Context) {
	shopID := getShopIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	dues, err := h.wallets.GetCustomerDuesAsAssets(reqCtx, shopID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCustomerDuesResponse(dues))
}
