package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

// errAlreadyAdvanced шаблон сдвинут параллельным обходом между выборкой и обновлением.
var errAlreadyAdvanced = errors.New("recurring payment already advanced")

// PaymentScheduler превращает шаблоны повторяющихся платежей в предстоящие платежи и переводит оплаченные
// предстоящие платежи в журнал.
type PaymentScheduler struct {
	uow           uow.UOW
	codec         AmountCodec
	categories    CategoryTable
	recurringRepo RecurringPaymentRepository
	upcomingRepo  UpcomingPaymentRepository
	now           func() time.Time
	l             *logrus.Entry
}

func NewPaymentScheduler(
	u uow.UOW,
	codec AmountCodec,
	categories CategoryTable,
	l *logrus.Logger,
) (*PaymentScheduler, error) {
	if err := categories.Validate(); err != nil {
		return nil, err
	}
	recurringRepo, err := uow.GetRepositoryAs[RecurringPaymentRepository](
		u, uow.RepositoryName(repoargs.RecurringPaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	upcomingRepo, err := uow.GetRepositoryAs[UpcomingPaymentRepository](
		u, uow.RepositoryName(repoargs.UpcomingPaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &PaymentScheduler{
		uow:           u,
		codec:         codec,
		categories:    categories,
		recurringRepo: recurringRepo,
		upcomingRepo:  upcomingRepo,
		now:           time.Now,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "payment_scheduler",
		}),
	}, nil
}

// ProcessRecurringPayments создает по одному предстоящему платежу для каждого наступившего шаблона и сдвигает
// его next_date на один период. Каждый шаблон обрабатывается в своей транзакции, сбой одного не останавливает
// остальные. Возвращает число сдвинутых шаблонов и объединенную ошибку сбоев.
func (s *PaymentScheduler) ProcessRecurringPayments(ctx context.Context, today time.Time) (int, error) {
	if today.IsZero() {
		today = s.now()
	}
	today = truncateDay(today)

	due, err := s.recurringRepo.ListDue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("process recurring payments: %w", err)
	}

	var (
		advanced int
		errs     []error
	)
	for i := range due {
		p := &due[i]
		fireErr := s.fire(ctx, p)
		switch {
		case fireErr == nil:
			advanced++
		case errors.Is(fireErr, errAlreadyAdvanced):
			s.l.WithField("recurring_payment_id", p.ID).Debug("recurring payment skipped, already advanced")
		default:
			s.l.WithError(fireErr).WithField("recurring_payment_id", p.ID).Error("recurring payment sweep failed")
			errs = append(errs, fmt.Errorf("recurring payment %d: %w", p.ID, fireErr))
		}
	}

	if advanced > 0 || len(errs) > 0 {
		s.l.WithFields(logrus.Fields{
			"due":      len(due),
			"advanced": advanced,
			"failed":   len(errs),
		}).Info("recurring payments processed")
	}
	return advanced, errors.Join(errs...)
}

// fire сдвигает next_date условным обновлением и создает предстоящий платеж на прежнюю дату.
func (s *PaymentScheduler) fire(ctx context.Context, p *domain.RecurringPayment) error {
	return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error { //nolint:wrapcheck
		recurringRepo, err := uow.GetAs[RecurringPaymentRepository](
			tx, uow.RepositoryName(repoargs.RecurringPaymentRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		upcomingRepo, err := uow.GetAs[UpcomingPaymentRepository](
			tx, uow.RepositoryName(repoargs.UpcomingPaymentRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		next := NextOccurrence(p.NextDate, p.Frequency)
		ok, err := recurringRepo.AdvanceNextDate(c, p.ID, p.NextDate, next)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if !ok {
			return errAlreadyAdvanced
		}

		_, err = upcomingRepo.Create(c, repoargs.UpcomingPaymentCreate{
			ShopID:             p.ShopID,
			RecurringPaymentID: &p.ID,
			Description:        p.Description,
			Amount:             p.Amount,
			DueDate:            p.NextDate,
			PaymentType:        domain.PaymentTypeRecurring,
			Category:           p.Category,
		})
		return err //nolint:wrapcheck
	})
}

func (s *PaymentScheduler) ListRecurringPayments(ctx context.Context, shopID int64) ([]RecurringPaymentView, error) {
	rows, err := s.recurringRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list recurring payments: %w", err)
	}
	stored := make([]domain.EncryptedAmount, len(rows))
	for i := range rows {
		stored[i] = rows[i].Amount
	}
	amounts := s.codec.DecryptAll(ctx, stored)

	views := make([]RecurringPaymentView, len(rows))
	for i := range rows {
		views[i] = newRecurringPaymentView(&rows[i], amounts[i])
	}
	return views, nil
}

func (s *PaymentScheduler) GetRecurringPayment(ctx context.Context, id int64) (*RecurringPaymentView, error) {
	p, err := s.recurringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("recurring payment", id)
		}
		return nil, fmt.Errorf("get recurring payment: %w", err)
	}
	view := newRecurringPaymentView(p, s.codec.Decrypt(ctx, p.Amount))
	return &view, nil
}

// DeleteRecurringPayment явное удаление шаблона. Уже созданные предстоящие платежи остаются.
func (s *PaymentScheduler) DeleteRecurringPayment(ctx context.Context, id int64) error {
	if err := s.recurringRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NewNotFoundError("recurring payment", id)
		}
		return fmt.Errorf("delete recurring payment: %w", err)
	}
	return nil
}

type CreateUpcomingPaymentInput struct {
	ShopID             int64
	RecurringPaymentID *int64
	Description        string
	Amount             decimal.Decimal
	DueDate            time.Time
	PaymentType        domain.PaymentType
	IsPriority         bool
	Category           domain.TransactionCategory
}

func validateUpcoming(
	description string,
	amount decimal.Decimal,
	dueDate time.Time,
	paymentType domain.PaymentType,
	category domain.TransactionCategory,
) error {
	if strings.TrimSpace(description) == "" {
		return domain.NewValidationError("description is required")
	}
	if !amount.IsPositive() {
		return domain.NewValidationError("amount must be positive")
	}
	if dueDate.IsZero() {
		return domain.NewValidationError("due date is required")
	}
	if !paymentType.Valid() {
		return domain.NewValidationError("unknown payment type %q", paymentType)
	}
	if category != "" && !category.Valid() {
		return domain.NewValidationError("unknown transaction category %q", category)
	}
	return nil
}

func (s *PaymentScheduler) CreateUpcomingPayment(
	ctx context.Context,
	in CreateUpcomingPaymentInput,
) (*UpcomingPaymentView, error) {
	if in.ShopID <= 0 {
		return nil, domain.NewValidationError("shop id is required")
	}
	if err := validateUpcoming(in.Description, in.Amount, in.DueDate, in.PaymentType, in.Category); err != nil {
		return nil, err
	}

	stored, err := s.codec.Encrypt(ctx, in.Amount)
	if err != nil {
		return nil, fmt.Errorf("create upcoming payment: %w", err)
	}
	created, err := s.upcomingRepo.Create(ctx, repoargs.UpcomingPaymentCreate{
		ShopID:             in.ShopID,
		RecurringPaymentID: in.RecurringPaymentID,
		Description:        strings.TrimSpace(in.Description),
		Amount:             stored,
		DueDate:            truncateDay(in.DueDate),
		PaymentType:        in.PaymentType,
		IsPriority:         in.IsPriority,
		Category:           in.Category,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) && in.RecurringPaymentID != nil {
			return nil, domain.NewNotFoundError("recurring payment", *in.RecurringPaymentID)
		}
		return nil, fmt.Errorf("create upcoming payment: %w", err)
	}
	view := newUpcomingPaymentView(created, in.Amount)
	return &view, nil
}

func (s *PaymentScheduler) GetUpcomingPayment(ctx context.Context, id int64) (*UpcomingPaymentView, error) {
	p, err := s.upcomingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("upcoming payment", id)
		}
		return nil, fmt.Errorf("get upcoming payment: %w", err)
	}
	view := newUpcomingPaymentView(p, s.codec.Decrypt(ctx, p.Amount))
	return &view, nil
}

// ListUpcomingPayments предстоящие платежи магазина: сначала приоритетные, затем по дате.
func (s *PaymentScheduler) ListUpcomingPayments(ctx context.Context, shopID int64) ([]UpcomingPaymentView, error) {
	rows, err := s.upcomingRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list upcoming payments: %w", err)
	}
	stored := make([]domain.EncryptedAmount, len(rows))
	for i := range rows {
		stored[i] = rows[i].Amount
	}
	amounts := s.codec.DecryptAll(ctx, stored)

	views := make([]UpcomingPaymentView, len(rows))
	for i := range rows {
		views[i] = newUpcomingPaymentView(&rows[i], amounts[i])
	}
	return views, nil
}

// UpdateUpcomingPaymentInput частичное обновление: nil поля не меняются.
type UpdateUpcomingPaymentInput struct {
	Description *string
	Amount      *decimal.Decimal
	DueDate     *time.Time
	PaymentType *domain.PaymentType
	IsPriority  *bool
	Category    *domain.TransactionCategory
}

func (s *PaymentScheduler) UpdateUpcomingPayment(
	ctx context.Context,
	id int64,
	in UpdateUpcomingPaymentInput,
) (*UpcomingPaymentView, error) {
	var view UpcomingPaymentView
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[UpcomingPaymentRepository](tx, uow.RepositoryName(repoargs.UpcomingPaymentRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		current, err := repo.GetByIDForUpdate(c, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewNotFoundError("upcoming payment", id)
			}
			return err //nolint:wrapcheck
		}

		update := repoargs.UpcomingPaymentUpdate{
			Description: current.Description,
			Amount:      current.Amount,
			DueDate:     current.DueDate,
			PaymentType: current.PaymentType,
			IsPriority:  current.IsPriority,
			Category:    current.Category,
		}
		if in.Description != nil {
			update.Description = strings.TrimSpace(*in.Description)
		}
		// без новой суммы проверяется хранимая, и она должна честно расшифроваться
		var amount decimal.Decimal
		if in.Amount != nil {
			amount = *in.Amount
		} else if amount, err = s.codec.DecryptStrict(c, current.Amount); err != nil {
			return fmt.Errorf("decrypt amount: %w", err)
		}
		if in.DueDate != nil {
			update.DueDate = truncateDay(*in.DueDate)
		}
		if in.PaymentType != nil {
			update.PaymentType = *in.PaymentType
		}
		if in.IsPriority != nil {
			update.IsPriority = *in.IsPriority
		}
		if in.Category != nil {
			update.Category = *in.Category
		}

		if err = validateUpcoming(update.Description, amount, update.DueDate, update.PaymentType, update.Category); err != nil {
			return err
		}
		if in.Amount != nil {
			if update.Amount, err = s.codec.Encrypt(c, amount); err != nil {
				return fmt.Errorf("encrypt amount: %w", err)
			}
		}

		updated, err := repo.Update(c, id, update)
		if err != nil {
			return err //nolint:wrapcheck
		}
		view = newUpcomingPaymentView(updated, amount)
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("update upcoming payment: %w", txErr)
	}
	return &view, nil
}

func (s *PaymentScheduler) DeleteUpcomingPayment(ctx context.Context, id int64) error {
	if err := s.upcomingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NewNotFoundError("upcoming payment", id)
		}
		return fmt.Errorf("delete upcoming payment: %w", err)
	}
	return nil
}

type MarkAsPaidResult struct {
	Transaction TransactionView
	// Next следующий предстоящий платеж. Nil для разового платежа.
	Next *UpcomingPaymentView
}

// MarkAsPaid переводит предстоящий платеж в журнал как расход. Для повторяющегося платежа создается следующий
// платеж через период связанного шаблона (месяц, если шаблона нет). Запись в журнал, создание следующего
// платежа и удаление оплаченного выполняются в одной транзакции.
func (s *PaymentScheduler) MarkAsPaid(ctx context.Context, id int64, paidAt time.Time) (*MarkAsPaidResult, error) {
	if paidAt.IsZero() {
		paidAt = s.now()
	}

	var result MarkAsPaidResult
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		upcomingRepo, err := uow.GetAs[UpcomingPaymentRepository](
			tx, uow.RepositoryName(repoargs.UpcomingPaymentRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		txRepo, err := uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		payment, err := upcomingRepo.GetByIDForUpdate(c, id)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return domain.NewNotFoundError("upcoming payment", id)
			}
			return err //nolint:wrapcheck
		}
		amount := s.codec.Decrypt(c, payment.Amount)
		isRecurring := payment.PaymentType == domain.PaymentTypeRecurring

		created, err := txRepo.Create(c, repoargs.TransactionCreate{
			ShopID:      payment.ShopID,
			Description: payment.Description,
			Amount:      payment.Amount,
			Date:        paidAt,
			Type:        domain.TransactionTypeExpense,
			Category:    s.categories.Resolve(payment),
			IsRecurring: isRecurring,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		result.Transaction = newTransactionView(created, amount)
		result.Transaction.RecurringPaymentID = payment.RecurringPaymentID

		if isRecurring {
			next, nextErr := s.createNextUpcomingTx(c, tx, payment)
			if nextErr != nil {
				return nextErr
			}
			view := newUpcomingPaymentView(next, amount)
			result.Next = &view
		}

		return upcomingRepo.Delete(c, payment.ID) //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("mark upcoming payment %d as paid: %w", id, txErr)
	}

	s.l.WithFields(logrus.Fields{
		"upcoming_payment_id": id,
		"transaction_id":      result.Transaction.ID,
		"shop_id":             result.Transaction.ShopID,
	}).Info("upcoming payment marked as paid")
	return &result, nil
}

func (s *PaymentScheduler) createNextUpcomingTx(
	ctx context.Context,
	tx uow.TX,
	payment *domain.UpcomingPayment,
) (*domain.UpcomingPayment, error) {
	upcomingRepo, err := uow.GetAs[UpcomingPaymentRepository](tx, uow.RepositoryName(repoargs.UpcomingPaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	frequency := domain.FrequencyMonthly
	recurringID := payment.RecurringPaymentID
	if recurringID != nil {
		recurringRepo, repoErr := uow.GetAs[RecurringPaymentRepository](
			tx, uow.RepositoryName(repoargs.RecurringPaymentRepoName))
		if repoErr != nil {
			return nil, repoErr //nolint:wrapcheck
		}
		template, getErr := recurringRepo.GetByID(ctx, *recurringID)
		switch {
		case getErr == nil:
			frequency = template.Frequency
		case errors.Is(getErr, domain.ErrRecordNotFound):
			// шаблон удален, ссылку не переносим
			recurringID = nil
		default:
			return nil, getErr //nolint:wrapcheck
		}
	}

	return upcomingRepo.Create(ctx, repoargs.UpcomingPaymentCreate{ //nolint:wrapcheck
		ShopID:             payment.ShopID,
		RecurringPaymentID: recurringID,
		Description:        payment.Description,
		Amount:             payment.Amount,
		DueDate:            NextOccurrence(payment.DueDate, frequency),
		PaymentType:        payment.PaymentType,
		IsPriority:         payment.IsPriority,
		Category:           payment.Category,
	})
}
