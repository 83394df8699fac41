package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

type AppServices struct {
	Wallets    *WalletLedger
	Balances   *ShopBalanceReconciler
	Ledger     *TransactionLedger
	Scheduler  *PaymentScheduler
	CashFlow   *CashFlowReporter
	Sync       *CashFlowSync
	Settlement *Settlement
}

type Options struct {
	Logger     *logrus.Logger
	Tolerance  decimal.Decimal
	Categories CategoryTable
}

func Factory(unitOfWork uow.UOW, codec AmountCodec, access AccessProvider, opts Options) (*AppServices, error) {
	balances, balancesErr := NewShopBalanceReconciler(unitOfWork, codec, opts.Tolerance, opts.Logger)
	if balancesErr != nil {
		return nil, fmt.Errorf("service factory: %w", balancesErr)
	}

	sync := NewCashFlowSync(unitOfWork, codec, balances, opts.Logger)

	wallets, walletsErr := NewWalletLedger(unitOfWork, codec, access, sync, opts.Logger)
	if walletsErr != nil {
		return nil, fmt.Errorf("service factory: %w", walletsErr)
	}

	ledger, ledgerErr := NewTransactionLedger(unitOfWork, codec, opts.Logger)
	if ledgerErr != nil {
		return nil, fmt.Errorf("service factory: %w", ledgerErr)
	}

	scheduler, schedulerErr := NewPaymentScheduler(unitOfWork, codec, opts.Categories, opts.Logger)
	if schedulerErr != nil {
		return nil, fmt.Errorf("service factory: %w", schedulerErr)
	}

	return &AppServices{
		Wallets:    wallets,
		Balances:   balances,
		Ledger:     ledger,
		Scheduler:  scheduler,
		CashFlow:   NewCashFlowReporter(balances, ledger, wallets, scheduler, opts.Logger),
		Sync:       sync,
		Settlement: NewSettlement(unitOfWork, wallets, sync, opts.Logger),
	}, nil
}
