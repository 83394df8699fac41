package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

const defaultFanOutLimit = 4

// WalletLedger ведет кошельки покупателей. Баланс кошелька - проекция истории его транзакций и пересчитывается
// целиком при каждой записи.
type WalletLedger struct {
	uow          uow.UOW
	codec        AmountCodec
	access       AccessProvider
	sync         *CashFlowSync
	walletRepo   WalletRepository
	walletTxRepo WalletTransactionRepository
	orderRepo    OrderRepository
	fanOutLimit  int
	now          func() time.Time
	l            *logrus.Entry
}

func NewWalletLedger(
	u uow.UOW,
	codec AmountCodec,
	access AccessProvider,
	sync *CashFlowSync,
	l *logrus.Logger,
) (*WalletLedger, error) {
	walletRepo, err := uow.GetRepositoryAs[WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	walletTxRepo, err := uow.GetRepositoryAs[WalletTransactionRepository](
		u, uow.RepositoryName(repoargs.WalletTransactionRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &WalletLedger{
		uow:          u,
		codec:        codec,
		access:       access,
		sync:         sync,
		walletRepo:   walletRepo,
		walletTxRepo: walletTxRepo,
		orderRepo:    orderRepo,
		fanOutLimit:  defaultFanOutLimit,
		now:          time.Now,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "wallet_ledger",
		}),
	}, nil
}

type OrderHistory struct {
	ShopID       int64
	Wallet       *WalletView
	Transactions []WalletTransactionView
	Orders       []OrderView
}

func emptyOrderHistory(shopID int64) *OrderHistory {
	return &OrderHistory{
		ShopID:       shopID,
		Transactions: []WalletTransactionView{},
		Orders:       []OrderView{},
	}
}

// ShopOrderHistory результат по одному магазину в мультимагазинном запросе. При Failed история пуста.
type ShopOrderHistory struct {
	ShopID  int64
	History *OrderHistory
	Failed  bool
	Error   string
}

// GetOrderHistory возвращает кошелек покупателя в магазине, его транзакции и завершенные заказы с
// разложенным по корзинам влиянием на кошелек. Отсутствие кошелька не ошибка: возвращается пустая история.
func (w *WalletLedger) GetOrderHistory(ctx context.Context, customerID, shopID int64) (*OrderHistory, error) {
	history := emptyOrderHistory(shopID)

	wallet, walletErr := w.walletRepo.Get(ctx, customerID, shopID)
	if walletErr != nil {
		if errors.Is(walletErr, domain.ErrRecordNotFound) {
			return history, nil
		}
		return nil, fmt.Errorf("order history: %w", walletErr)
	}

	txs, txsErr := w.walletTxRepo.ListByWallet(ctx, customerID, shopID)
	if txsErr != nil {
		return nil, fmt.Errorf("order history: %w", txsErr)
	}
	orders, ordersErr := w.orderRepo.ListCompletedByCustomerShop(ctx, customerID, shopID)
	if ordersErr != nil {
		return nil, fmt.Errorf("order history: %w", ordersErr)
	}

	var batch amountBatch

	walletView := &WalletView{
		ID:         wallet.ID,
		CustomerID: wallet.CustomerID,
		ShopID:     wallet.ShopID,
		UpdatedAt:  wallet.UpdatedAt,
	}
	batch.add(wallet.Balance, &walletView.Balance)
	batch.add(wallet.LoyaltyPoints, &walletView.LoyaltyPoints)

	history.Transactions = make([]WalletTransactionView, len(txs))
	for i, t := range txs {
		history.Transactions[i] = WalletTransactionView{
			ID:        t.ID,
			CreatedAt: t.CreatedAt,
			OrderID:   t.OrderID,
			Type:      t.Type,
		}
		batch.add(t.Amount, &history.Transactions[i].Amount)
	}

	history.Orders = make([]OrderView, len(orders))
	for i := range orders {
		prepareOrderView(&history.Orders[i], &orders[i], &batch)
	}

	batch.resolve(ctx, w.codec)

	modifications := modificationsByOrder(history.Transactions)
	for i := range history.Orders {
		history.Orders[i].WalletModifications = modifications[history.Orders[i].ID]
	}
	history.Wallet = walletView

	return history, nil
}

// prepareOrderView заполняет представление заказа и ставит его суммы в очередь на расшифровку. Срезы позиций и
// оплат выделяются заранее, чтобы адреса сумм не менялись до resolve.
func prepareOrderView(view *OrderView, order *domain.Order, batch *amountBatch) {
	view.ID = order.ID
	view.CreatedAt = order.CreatedAt
	view.OrderNumber = order.OrderNumber
	view.Status = order.Status
	batch.add(order.Subtotal, &view.Subtotal)
	batch.add(order.Discount, &view.Discount)
	batch.add(order.Total, &view.Total)
	batch.add(order.Paid, &view.Paid)
	batch.add(order.PaymentDue, &view.PaymentDue)

	view.Items = make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		view.Items[i] = OrderItemView{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			WarrantyMonths: item.WarrantyMonths,
		}
		batch.add(item.OriginalPrice, &view.Items[i].OriginalPrice)
		batch.add(item.SellingPrice, &view.Items[i].SellingPrice)
	}

	view.Payments = make([]PaymentView, len(order.Payments))
	for i, p := range order.Payments {
		view.Payments[i] = PaymentView{
			ID:        p.ID,
			CreatedAt: p.CreatedAt,
			OrderID:   p.OrderID,
			Method:    p.Method,
		}
		batch.add(p.Amount, &view.Payments[i].Amount)
	}
}

// modificationsByOrder раскладывает транзакции кошелька, привязанные к заказам, по четырем корзинам.
func modificationsByOrder(txs []WalletTransactionView) map[int64]WalletModifications {
	result := make(map[int64]WalletModifications)
	for _, t := range txs {
		if t.OrderID == nil {
			continue
		}
		m := result[*t.OrderID]
		switch t.Type {
		case domain.WalletTxOrderPayment:
			m.WalletUsed = m.WalletUsed.Add(t.Amount)
		case domain.WalletTxDuePayment:
			m.DuePaid = m.DuePaid.Add(t.Amount)
		case domain.WalletTxExtraPayment:
			m.ExtraAdded = m.ExtraAdded.Add(t.Amount)
		case domain.WalletTxLoyaltyPoints:
			m.LoyaltyGained = m.LoyaltyGained.Add(t.Amount)
		}
		result[*t.OrderID] = m
	}
	return result
}

// GetHistoryForAllShops собирает историю покупателя по всем видимым запрашивающему магазинам. Магазины
// обрабатываются параллельно и независимо: сбой одного магазина помечается в его результате и не влияет на
// остальные.
func (w *WalletLedger) GetHistoryForAllShops(
	ctx context.Context,
	requesterID, customerID int64,
) ([]ShopOrderHistory, error) {
	shopIDs, shopsErr := w.visibleShops(ctx, requesterID, customerID)
	if shopsErr != nil {
		return nil, fmt.Errorf("history for all shops: %w", shopsErr)
	}

	results := make([]ShopOrderHistory, len(shopIDs))

	g := new(errgroup.Group)
	g.SetLimit(w.fanOutLimit)

	for i, shopID := range shopIDs {
		g.Go(func() error {
			history, err := w.GetOrderHistory(ctx, customerID, shopID)
			if err != nil {
				w.l.WithError(err).WithFields(logrus.Fields{
					"shop_id":     shopID,
					"customer_id": customerID,
				}).Error("order history for shop failed")
				results[i] = ShopOrderHistory{
					ShopID:  shopID,
					History: emptyOrderHistory(shopID),
					Failed:  true,
					Error:   "order history is unavailable for this shop",
				}
				return nil
			}
			results[i] = ShopOrderHistory{ShopID: shopID, History: history}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// visibleShops покупатель видит магазины, где у него есть заказы или кошелек, остальные - магазины,
// в которых состоят.
func (w *WalletLedger) visibleShops(ctx context.Context, requesterID, customerID int64) ([]int64, error) {
	if requesterID != customerID {
		shops, err := w.access.ListShops(ctx, requesterID)
		if err != nil {
			return nil, fmt.Errorf("list member shops: %w", err)
		}
		return uniqueSorted(shops), nil
	}

	orderShops, err := w.orderRepo.ShopIDsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	walletShops, err := w.walletRepo.ShopIDsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return uniqueSorted(append(orderShops, walletShops...)), nil
}

func uniqueSorted(ids []int64) []int64 {
	result := slices.Clone(ids)
	slices.Sort(result)
	return slices.Compact(result)
}

// OrderWalletEffects влияние завершенного заказа на кошелек. Все суммы неотрицательные.
type OrderWalletEffects struct {
	OrderID       int64
	CustomerID    int64
	ShopID        int64
	WalletUsed    decimal.Decimal
	DuePaid       decimal.Decimal
	ExtraAdded    decimal.Decimal
	LoyaltyGained decimal.Decimal
}

type walletEntry struct {
	Type   domain.WalletTransactionType
	Amount decimal.Decimal
}

func (e OrderWalletEffects) validate() error {
	if e.OrderID <= 0 || e.CustomerID <= 0 || e.ShopID <= 0 {
		return domain.NewValidationError("order, customer and shop ids are required")
	}
	for name, v := range map[string]decimal.Decimal{
		"wallet used":    e.WalletUsed,
		"due paid":       e.DuePaid,
		"extra added":    e.ExtraAdded,
		"loyalty gained": e.LoyaltyGained,
	} {
		if v.IsNegative() {
			return domain.NewValidationError("%s must not be negative", name)
		}
	}
	return nil
}

func (e OrderWalletEffects) entries() []walletEntry {
	all := []walletEntry{
		{Type: domain.WalletTxOrderPayment, Amount: e.WalletUsed},
		{Type: domain.WalletTxDuePayment, Amount: e.DuePaid},
		{Type: domain.WalletTxExtraPayment, Amount: e.ExtraAdded},
		{Type: domain.WalletTxLoyaltyPoints, Amount: e.LoyaltyGained},
	}
	result := make([]walletEntry, 0, len(all))
	for _, entry := range all {
		if !entry.Amount.IsZero() {
			result = append(result, entry)
		}
	}
	return result
}

// RecordOrderWalletEffects добавляет транзакции кошелька по заказу и пересчитывает баланс. Кошелек создается при
// первом обращении. Возвращает nil, если заказ не затрагивает кошелек.
func (w *WalletLedger) RecordOrderWalletEffects(ctx context.Context, effects OrderWalletEffects) (*WalletView, error) {
	if err := effects.validate(); err != nil {
		return nil, err
	}
	entries := effects.entries()
	if len(entries) == 0 {
		return nil, nil //nolint:nilnil
	}

	var view *WalletView
	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		view, err = w.RecordOrderWalletEffectsTx(c, tx, effects)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("record order wallet effects: %w", txErr)
	}
	return view, nil
}

// RecordOrderWalletEffectsTx то же, что RecordOrderWalletEffects, внутри уже открытой транзакции.
func (w *WalletLedger) RecordOrderWalletEffectsTx(
	ctx context.Context,
	tx uow.TX,
	effects OrderWalletEffects,
) (*WalletView, error) {
	if err := effects.validate(); err != nil {
		return nil, err
	}
	entries := effects.entries()
	if len(entries) == 0 {
		return nil, nil //nolint:nilnil
	}
	orderID := effects.OrderID
	return w.appendAndRecompute(ctx, tx, effects.CustomerID, effects.ShopID, &orderID, entries, true)
}

// PayDue принимает оплату долга покупателем вне заказа. Кошелек должен существовать. После фиксации транзакции
// запись попадает в журнал магазина через побочный канал.
func (w *WalletLedger) PayDue(
	ctx context.Context,
	customerID, shopID int64,
	amount decimal.Decimal,
	date time.Time,
) (*WalletView, error) {
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("due payment amount must be positive")
	}

	var view *WalletView
	txErr := w.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		view, err = w.appendAndRecompute(c, tx, customerID, shopID, nil,
			[]walletEntry{{Type: domain.WalletTxDuePayment, Amount: amount}}, false)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("pay due: %w", txErr)
	}

	if date.IsZero() {
		date = w.now()
	}
	w.sync.SyncDuePayment(ctx, DuePaymentEvent{
		CustomerID: customerID,
		ShopID:     shopID,
		Amount:     amount,
		Date:       date,
	})

	return view, nil
}

// appendAndRecompute под блокировкой строки кошелька добавляет транзакции и пересчитывает кешированный баланс
// по всей истории.
func (w *WalletLedger) appendAndRecompute(
	ctx context.Context,
	tx uow.TX,
	customerID, shopID int64,
	orderID *int64,
	entries []walletEntry,
	createIfMissing bool,
) (*WalletView, error) {
	walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	walletTxRepo, err := uow.GetAs[WalletTransactionRepository](
		tx, uow.RepositoryName(repoargs.WalletTransactionRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var wallet *domain.CustomerWallet
	if createIfMissing {
		wallet, err = walletRepo.GetOrCreateForUpdate(ctx, customerID, shopID)
	} else {
		wallet, err = walletRepo.GetForUpdate(ctx, customerID, shopID)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("customer wallet", customerID)
		}
	}
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	creates := make([]repoargs.WalletTransactionCreate, len(entries))
	for i, entry := range entries {
		stored, encErr := w.codec.Encrypt(ctx, entry.Amount)
		if encErr != nil {
			return nil, fmt.Errorf("encrypt wallet transaction: %w", encErr)
		}
		creates[i] = repoargs.WalletTransactionCreate{
			CustomerID: customerID,
			ShopID:     shopID,
			OrderID:    orderID,
			Type:       entry.Type,
			Amount:     stored,
		}
	}

	var batchErr error
	walletTxRepo.BatchCreate(ctx, creates, func(_ int, err error) {
		if err != nil {
			batchErr = err
		}
	})
	if batchErr != nil {
		return nil, batchErr
	}

	history, err := walletTxRepo.ListByWallet(ctx, customerID, shopID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	balance, points, err := w.projectWallet(ctx, history)
	if err != nil {
		return nil, err
	}

	storedBalance, err := w.codec.Encrypt(ctx, balance)
	if err != nil {
		return nil, fmt.Errorf("encrypt wallet balance: %w", err)
	}
	storedPoints, err := w.codec.Encrypt(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("encrypt loyalty points: %w", err)
	}

	if updErr := walletRepo.UpdateBalance(ctx, repoargs.WalletBalanceUpdate{
		ID:            wallet.ID,
		Balance:       storedBalance,
		LoyaltyPoints: storedPoints,
	}); updErr != nil {
		return nil, updErr //nolint:wrapcheck
	}

	return &WalletView{
		ID:            wallet.ID,
		CustomerID:    customerID,
		ShopID:        shopID,
		Balance:       balance,
		LoyaltyPoints: points,
		UpdatedAt:     w.now(),
	}, nil
}

// projectWallet сворачивает историю кошелька в денежный баланс и баллы. Нерасшифрованная запись истории
// прерывает пересчет: кэш кошелька должен совпадать с суммой истории.
func (w *WalletLedger) projectWallet(
	ctx context.Context,
	history []domain.WalletTransaction,
) (decimal.Decimal, decimal.Decimal, error) {
	stored := make([]domain.EncryptedAmount, len(history))
	for i, t := range history {
		stored[i] = t.Amount
	}
	amounts, err := w.codec.DecryptAllStrict(ctx, stored)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("decrypt wallet history: %w", err)
	}

	balance := decimal.Zero
	points := decimal.Zero
	for i, t := range history {
		if t.Type == domain.WalletTxLoyaltyPoints {
			points = points.Add(amounts[i])
			continue
		}
		balance = balance.Add(amounts[i].Mul(decimal.NewFromInt(int64(t.Type.BalanceSign()))))
	}
	return balance, points, nil
}

type CustomerDue struct {
	CustomerID   int64
	CustomerName string
	WalletID     int64
	DueAmount    decimal.Decimal
}

type CustomerDues struct {
	TotalDues decimal.Decimal
	Dues      []CustomerDue
	Count     int
}

// GetCustomerDuesAsAssets отрицательные балансы кошельков магазина как дебиторская задолженность.
func (w *WalletLedger) GetCustomerDuesAsAssets(ctx context.Context, shopID int64) (*CustomerDues, error) {
	wallets, err := w.walletRepo.ListByShopWithCustomer(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("customer dues: %w", err)
	}

	stored := make([]domain.EncryptedAmount, len(wallets))
	for i, wallet := range wallets {
		stored[i] = wallet.Balance
	}
	balances := w.codec.DecryptAll(ctx, stored)

	result := &CustomerDues{TotalDues: decimal.Zero, Dues: []CustomerDue{}}
	for i, wallet := range wallets {
		if !balances[i].IsNegative() {
			continue
		}
		due := balances[i].Neg()
		result.Dues = append(result.Dues, CustomerDue{
			CustomerID:   wallet.CustomerID,
			CustomerName: wallet.CustomerName,
			WalletID:     wallet.ID,
			DueAmount:    due,
		})
		result.TotalDues = result.TotalDues.Add(due)
	}
	result.Count = len(result.Dues)
	return result, nil
}
