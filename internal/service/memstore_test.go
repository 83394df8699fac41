package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// memStore хранилище в памяти для проверки транзакционных свойств сервисов. Do сериализует транзакции и при
// ошибке восстанавливает снимок данных, сделанный на входе.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	seq          int64
	shopBalances map[int64]domain.ShopBalance
	transactions map[int64]domain.Transaction
	recurring    map[int64]domain.RecurringPayment
	upcoming     map[int64]domain.UpcomingPayment
	wallets      map[int64]domain.CustomerWallet
	walletTxs    []domain.WalletTransaction
	orders       []domain.Order
	customers    map[int64]string
	events       map[uuid.UUID]struct{}

	// failOn ошибки, которые вернет операция с данным ключом.
	failOn map[string]error
}

type memSnapshot struct {
	seq          int64
	shopBalances map[int64]domain.ShopBalance
	transactions map[int64]domain.Transaction
	recurring    map[int64]domain.RecurringPayment
	upcoming     map[int64]domain.UpcomingPayment
	wallets      map[int64]domain.CustomerWallet
	walletTxs    []domain.WalletTransaction
	events       map[uuid.UUID]struct{}
}

func newMemStore() *memStore {
	return &memStore{
		shopBalances: make(map[int64]domain.ShopBalance),
		transactions: make(map[int64]domain.Transaction),
		recurring:    make(map[int64]domain.RecurringPayment),
		upcoming:     make(map[int64]domain.UpcomingPayment),
		wallets:      make(map[int64]domain.CustomerWallet),
		customers:    make(map[int64]string),
		events:       make(map[uuid.UUID]struct{}),
		failOn:       make(map[string]error),
	}
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return memSnapshot{
		seq:          s.seq,
		shopBalances: maps.Clone(s.shopBalances),
		transactions: maps.Clone(s.transactions),
		recurring:    maps.Clone(s.recurring),
		upcoming:     maps.Clone(s.upcoming),
		wallets:      maps.Clone(s.wallets),
		walletTxs:    slices.Clone(s.walletTxs),
		events:       maps.Clone(s.events),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.shopBalances = snap.shopBalances
	s.transactions = snap.transactions
	s.recurring = snap.recurring
	s.upcoming = snap.upcoming
	s.wallets = snap.wallets
	s.walletTxs = snap.walletTxs
	s.events = snap.events
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) setFailure(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failOn, op)
		return
	}
	s.failOn[op] = err
}

// fail вызывается под s.mu.
func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

func (s *memStore) repo(name uow.RepositoryName) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.ShopBalanceRepoName:
		return &memShopBalanceRepo{s: s}, nil
	case repoargs.TransactionRepoName:
		return &memTransactionRepo{s: s}, nil
	case repoargs.RecurringPaymentRepoName:
		return &memRecurringRepo{s: s}, nil
	case repoargs.UpcomingPaymentRepoName:
		return &memUpcomingRepo{s: s}, nil
	case repoargs.WalletRepoName:
		return &memWalletRepo{s: s}, nil
	case repoargs.WalletTransactionRepoName:
		return &memWalletTxRepo{s: s}, nil
	case repoargs.OrderRepoName:
		return &memOrderRepo{s: s}, nil
	case repoargs.PaymentRepoName:
		return &memPaymentRepo{s: s}, nil
	case repoargs.ProcessedEventRepoName:
		return &memEventRepo{s: s}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}

// memUOW реализация uow.UOW поверх memStore.
type memUOW struct {
	s *memStore
}

func (u *memUOW) Register(uow.RepositoryName, uow.RepositoryFactory) error {
	return nil
}

func (u *memUOW) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return u.s.repo(name)
}

func (u *memUOW) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	u.s.txMu.Lock()
	defer u.s.txMu.Unlock()

	snap := u.s.snapshot()
	if err := fn(ctx, &memTX{s: u.s}); err != nil {
		u.s.restore(snap)
		return err
	}
	return nil
}

type memTX struct {
	s *memStore
}

func (t *memTX) Get(name uow.RepositoryName) (uow.Repository, error) {
	return t.s.repo(name)
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("[memstore/%s] %w", fmt.Sprintf(format, args...), domain.ErrRecordNotFound)
}

// ---- shop balances

type memShopBalanceRepo struct{ s *memStore }

func (r *memShopBalanceRepo) GetByShopID(_ context.Context, shopID int64) (*domain.ShopBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("shop_balance.Get"); err != nil {
		return nil, err
	}
	b, ok := r.s.shopBalances[shopID]
	if !ok {
		return nil, notFound("shop balance %d", shopID)
	}
	return &b, nil
}

func (r *memShopBalanceRepo) GetByShopIDForUpdate(ctx context.Context, shopID int64) (*domain.ShopBalance, error) {
	return r.GetByShopID(ctx, shopID)
}

func (r *memShopBalanceRepo) Create(_ context.Context, args repoargs.ShopBalanceCreate) (*domain.ShopBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shopBalances[args.ShopID]; ok {
		return nil, fmt.Errorf("shop balance %d: %w", args.ShopID, domain.ErrDuplicateKey)
	}
	now := time.Now()
	b := domain.ShopBalance{
		ID:          r.s.nextID(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ShopID:      args.ShopID,
		CashBalance: args.CashBalance,
		CardBalance: args.CardBalance,
		BankBalance: args.BankBalance,
		OpeningCash: args.CashBalance,
		OpeningCard: args.CardBalance,
		OpeningBank: args.BankBalance,
	}
	r.s.shopBalances[args.ShopID] = b
	return &b, nil
}

func (r *memShopBalanceRepo) Update(_ context.Context, args repoargs.ShopBalanceUpdate) (*domain.ShopBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("shop_balance.Update"); err != nil {
		return nil, err
	}
	b, ok := r.s.shopBalances[args.ShopID]
	if !ok {
		return nil, notFound("shop balance %d", args.ShopID)
	}
	b.CashBalance, b.CardBalance, b.BankBalance = args.CashBalance, args.CardBalance, args.BankBalance
	b.UpdatedAt = time.Now()
	r.s.shopBalances[args.ShopID] = b
	return &b, nil
}

// ---- transactions

type memTransactionRepo struct{ s *memStore }

func (r *memTransactionRepo) Create(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("transaction.Create"); err != nil {
		return nil, err
	}
	now := time.Now()
	t := domain.Transaction{
		ID:          r.s.nextID(),
		CreatedAt:   now,
		UpdatedAt:   now,
		ShopID:      args.ShopID,
		Description: args.Description,
		Amount:      args.Amount,
		Date:        args.Date,
		Type:        args.Type,
		Category:    args.Category,
		IsRecurring: args.IsRecurring,
	}
	r.s.transactions[t.ID] = t
	return &t, nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, notFound("transaction %d", id)
	}
	return &t, nil
}

func (r *memTransactionRepo) List(_ context.Context, f repoargs.TransactionFilter) ([]domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("transaction.List"); err != nil {
		return nil, err
	}
	result := make([]domain.Transaction, 0)
	for _, t := range r.s.transactions {
		if t.ShopID != f.ShopID ||
			(f.From != nil && t.Date.Before(*f.From)) ||
			(f.To != nil && t.Date.After(*f.To)) ||
			(f.Type != nil && t.Type != *f.Type) {
			continue
		}
		result = append(result, t)
	}
	slices.SortFunc(result, func(a, b domain.Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return result, nil
}

func (r *memTransactionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[id]; !ok {
		return notFound("transaction %d", id)
	}
	delete(r.s.transactions, id)
	return nil
}

func (s *memStore) transactionsOf(shopID int64) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Transaction, 0)
	for _, t := range s.transactions {
		if t.ShopID == shopID {
			result = append(result, t)
		}
	}
	slices.SortFunc(result, func(a, b domain.Transaction) int { return int(a.ID - b.ID) })
	return result
}

// ---- recurring payments

type memRecurringRepo struct{ s *memStore }

func (r *memRecurringRepo) Create(
	_ context.Context,
	args repoargs.RecurringPaymentCreate,
) (*domain.RecurringPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("recurring.Create"); err != nil {
		return nil, err
	}
	now := time.Now()
	p := domain.RecurringPayment{
		ID:            r.s.nextID(),
		CreatedAt:     now,
		UpdatedAt:     now,
		ShopID:        args.ShopID,
		TransactionID: args.TransactionID,
		Description:   args.Description,
		Amount:        args.Amount,
		Frequency:     args.Frequency,
		NextDate:      args.NextDate,
		Category:      args.Category,
	}
	r.s.recurring[p.ID] = p
	return &p, nil
}

func (r *memRecurringRepo) GetByID(_ context.Context, id int64) (*domain.RecurringPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.recurring[id]
	if !ok {
		return nil, notFound("recurring payment %d", id)
	}
	return &p, nil
}

func (r *memRecurringRepo) ListByShop(_ context.Context, shopID int64) ([]domain.RecurringPayment, error) {
	return r.list(func(p domain.RecurringPayment) bool { return p.ShopID == shopID }), nil
}

func (r *memRecurringRepo) ListDue(_ context.Context, today time.Time) ([]domain.RecurringPayment, error) {
	return r.list(func(p domain.RecurringPayment) bool { return !p.NextDate.After(today) }), nil
}

func (r *memRecurringRepo) list(keep func(domain.RecurringPayment) bool) []domain.RecurringPayment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.RecurringPayment, 0)
	for _, p := range r.s.recurring {
		if keep(p) {
			result = append(result, p)
		}
	}
	slices.SortFunc(result, func(a, b domain.RecurringPayment) int {
		if c := a.NextDate.Compare(b.NextDate); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return result
}

func (r *memRecurringRepo) AdvanceNextDate(_ context.Context, id int64, expected, next time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("recurring.Advance"); err != nil {
		return false, err
	}
	p, ok := r.s.recurring[id]
	if !ok || !p.NextDate.Equal(expected) {
		return false, nil
	}
	p.NextDate = next
	r.s.recurring[id] = p
	return true, nil
}

func (r *memRecurringRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recurring[id]; !ok {
		return notFound("recurring payment %d", id)
	}
	delete(r.s.recurring, id)
	for upID, up := range r.s.upcoming {
		if up.RecurringPaymentID != nil && *up.RecurringPaymentID == id {
			up.RecurringPaymentID = nil
			r.s.upcoming[upID] = up
		}
	}
	return nil
}

// ---- upcoming payments

type memUpcomingRepo struct{ s *memStore }

func (r *memUpcomingRepo) Create(
	_ context.Context,
	args repoargs.UpcomingPaymentCreate,
) (*domain.UpcomingPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("upcoming.Create"); err != nil {
		return nil, err
	}
	if args.RecurringPaymentID != nil {
		if _, ok := r.s.recurring[*args.RecurringPaymentID]; !ok {
			return nil, notFound("recurring payment %d", *args.RecurringPaymentID)
		}
	}
	now := time.Now()
	p := domain.UpcomingPayment{
		ID:                 r.s.nextID(),
		CreatedAt:          now,
		UpdatedAt:          now,
		ShopID:             args.ShopID,
		RecurringPaymentID: args.RecurringPaymentID,
		Description:        args.Description,
		Amount:             args.Amount,
		DueDate:            args.DueDate,
		PaymentType:        args.PaymentType,
		IsPriority:         args.IsPriority,
		Category:           args.Category,
	}
	r.s.upcoming[p.ID] = p
	return &p, nil
}

func (r *memUpcomingRepo) GetByID(_ context.Context, id int64) (*domain.UpcomingPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.upcoming[id]
	if !ok {
		return nil, notFound("upcoming payment %d", id)
	}
	return &p, nil
}

func (r *memUpcomingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.UpcomingPayment, error) {
	return r.GetByID(ctx, id)
}

func (r *memUpcomingRepo) ListByShop(_ context.Context, shopID int64) ([]domain.UpcomingPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("upcoming.List"); err != nil {
		return nil, err
	}
	result := make([]domain.UpcomingPayment, 0)
	for _, p := range r.s.upcoming {
		if p.ShopID == shopID {
			result = append(result, p)
		}
	}
	slices.SortFunc(result, func(a, b domain.UpcomingPayment) int {
		if a.IsPriority != b.IsPriority {
			if a.IsPriority {
				return -1
			}
			return 1
		}
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	return result, nil
}

func (r *memUpcomingRepo) Update(
	_ context.Context,
	id int64,
	args repoargs.UpcomingPaymentUpdate,
) (*domain.UpcomingPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.upcoming[id]
	if !ok {
		return nil, notFound("upcoming payment %d", id)
	}
	p.Description = args.Description
	p.Amount = args.Amount
	p.DueDate = args.DueDate
	p.PaymentType = args.PaymentType
	p.IsPriority = args.IsPriority
	p.Category = args.Category
	p.UpdatedAt = time.Now()
	r.s.upcoming[id] = p
	return &p, nil
}

func (r *memUpcomingRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("upcoming.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.upcoming[id]; !ok {
		return notFound("upcoming payment %d", id)
	}
	delete(r.s.upcoming, id)
	return nil
}

// ---- wallets

type memWalletRepo struct{ s *memStore }

func (r *memWalletRepo) find(customerID, shopID int64) (domain.CustomerWallet, bool) {
	for _, w := range r.s.wallets {
		if w.CustomerID == customerID && w.ShopID == shopID {
			return w, true
		}
	}
	return domain.CustomerWallet{}, false
}

func (r *memWalletRepo) Get(_ context.Context, customerID, shopID int64) (*domain.CustomerWallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.find(customerID, shopID)
	if !ok {
		return nil, notFound("wallet of customer %d in shop %d", customerID, shopID)
	}
	return &w, nil
}

func (r *memWalletRepo) GetForUpdate(ctx context.Context, customerID, shopID int64) (*domain.CustomerWallet, error) {
	return r.Get(ctx, customerID, shopID)
}

func (r *memWalletRepo) GetOrCreateForUpdate(
	_ context.Context,
	customerID, shopID int64,
) (*domain.CustomerWallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.find(customerID, shopID); ok {
		return &w, nil
	}
	now := time.Now()
	w := domain.CustomerWallet{
		ID:            r.s.nextID(),
		CreatedAt:     now,
		UpdatedAt:     now,
		CustomerID:    customerID,
		ShopID:        shopID,
		Balance:       "0",
		LoyaltyPoints: "0",
	}
	r.s.wallets[w.ID] = w
	return &w, nil
}

func (r *memWalletRepo) UpdateBalance(_ context.Context, args repoargs.WalletBalanceUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("wallet.UpdateBalance"); err != nil {
		return err
	}
	w, ok := r.s.wallets[args.ID]
	if !ok {
		return notFound("wallet %d", args.ID)
	}
	w.Balance, w.LoyaltyPoints, w.UpdatedAt = args.Balance, args.LoyaltyPoints, time.Now()
	r.s.wallets[args.ID] = w
	return nil
}

func (r *memWalletRepo) ListByShopWithCustomer(_ context.Context, shopID int64) ([]domain.WalletWithCustomer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.WalletWithCustomer, 0)
	for _, w := range r.s.wallets {
		if w.ShopID == shopID {
			result = append(result, domain.WalletWithCustomer{CustomerWallet: w, CustomerName: r.s.customers[w.CustomerID]})
		}
	}
	slices.SortFunc(result, func(a, b domain.WalletWithCustomer) int { return int(a.ID - b.ID) })
	return result, nil
}

func (r *memWalletRepo) ShopIDsByCustomer(_ context.Context, customerID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for _, w := range r.s.wallets {
		if w.CustomerID == customerID {
			ids = append(ids, w.ShopID)
		}
	}
	return ids, nil
}

func (s *memStore) shopBalanceOf(shopID int64) domain.ShopBalance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shopBalances[shopID]
}

func (s *memStore) walletOf(customerID, shopID int64) (domain.CustomerWallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&memWalletRepo{s: s}).find(customerID, shopID)
}

// ---- wallet transactions

type memWalletTxRepo struct{ s *memStore }

func (r *memWalletTxRepo) BatchCreate(
	_ context.Context,
	transactions []repoargs.WalletTransactionCreate,
	fn repoargs.BatchExecQueryRow,
) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, args := range transactions {
		if err := r.s.fail("wallet_tx.Create"); err != nil {
			fn(i, err)
			continue
		}
		r.s.walletTxs = append(r.s.walletTxs, domain.WalletTransaction{
			ID:         r.s.nextID(),
			CreatedAt:  time.Now(),
			CustomerID: args.CustomerID,
			ShopID:     args.ShopID,
			OrderID:    args.OrderID,
			Type:       args.Type,
			Amount:     args.Amount,
		})
		fn(i, nil)
	}
}

func (r *memWalletTxRepo) ListByWallet(_ context.Context, customerID, shopID int64) ([]domain.WalletTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.WalletTransaction, 0)
	for _, t := range r.s.walletTxs {
		if t.CustomerID == customerID && t.ShopID == shopID {
			result = append(result, t)
		}
	}
	return result, nil
}

// ---- orders and payments

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) ListCompletedByCustomerShop(
	_ context.Context,
	customerID, shopID int64,
) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(fmt.Sprintf("order.ListCompleted:%d", shopID)); err != nil {
		return nil, err
	}
	result := make([]domain.Order, 0)
	for _, o := range r.s.orders {
		if o.CustomerID == customerID && o.ShopID == shopID && o.Status == domain.OrderStatusCompleted {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *memOrderRepo) ShopIDsByCustomer(_ context.Context, customerID int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for _, o := range r.s.orders {
		if o.CustomerID == customerID {
			ids = append(ids, o.ShopID)
		}
	}
	return ids, nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) ListByShop(_ context.Context, shopID int64) ([]domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]domain.Payment, 0)
	for _, o := range r.s.orders {
		if o.ShopID == shopID {
			result = append(result, o.Payments...)
		}
	}
	return result, nil
}

func (s *memStore) addOrder(o domain.Order) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.nextID()
	for i := range o.Payments {
		o.Payments[i].ID = s.nextID()
		o.Payments[i].OrderID = o.ID
	}
	for i := range o.Items {
		o.Items[i].ID = s.nextID()
		o.Items[i].OrderID = o.ID
	}
	s.orders = append(s.orders, o)
	return o
}

// ---- processed events

type memEventRepo struct{ s *memStore }

func (r *memEventRepo) MarkProcessed(_ context.Context, eventID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[eventID]; ok {
		return false, nil
	}
	r.s.events[eventID] = struct{}{}
	return true, nil
}
