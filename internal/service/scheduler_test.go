package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/repository/repoargs"
)

type PaymentSchedulerTestSuite struct {
	suite.Suite
	h         *harness
	scheduler *PaymentScheduler
}

func TestPaymentSchedulerSuite(t *testing.T) {
	suite.Run(t, new(PaymentSchedulerTestSuite))
}

func (s *PaymentSchedulerTestSuite) SetupTest() {
	s.h = newHarness(s.T())
	s.scheduler = s.h.services.Scheduler
}

func (s *PaymentSchedulerTestSuite) addRecurring(nextDate time.Time, freq domain.Frequency) domain.RecurringPayment {
	p, err := (&memRecurringRepo{s: s.h.store}).Create(s.T().Context(), repoargs.RecurringPaymentCreate{
		ShopID:      1,
		Description: "Rent",
		Amount:      stored("1500"),
		Frequency:   freq,
		NextDate:    nextDate,
		Category:    domain.CategoryShopRent,
	})
	s.Require().NoError(err)
	return *p
}

func (s *PaymentSchedulerTestSuite) upcoming() []UpcomingPaymentView {
	list, err := s.scheduler.ListUpcomingPayments(s.T().Context(), 1)
	s.Require().NoError(err)
	return list
}

func (s *PaymentSchedulerTestSuite) TestProcessRecurringPayments_Idempotent() {
	today := date(2024, 5, 10)
	template := s.addRecurring(today, domain.FrequencyMonthly)
	s.addRecurring(date(2024, 6, 1), domain.FrequencyMonthly)

	count, err := s.scheduler.ProcessRecurringPayments(s.T().Context(), today.Add(15*time.Hour))
	s.Require().NoError(err)
	s.Equal(1, count)

	list := s.upcoming()
	s.Require().Len(list, 1)
	s.Equal(today, list[0].DueDate)
	s.Equal(domain.PaymentTypeRecurring, list[0].PaymentType)
	s.Equal(template.ID, *list[0].RecurringPaymentID)
	s.Equal(domain.CategoryShopRent, list[0].Category)
	requireDecimal(s.T(), "1500", list[0].Amount)
	s.Equal(date(2024, 6, 10), s.h.store.recurring[template.ID].NextDate)

	count, err = s.scheduler.ProcessRecurringPayments(s.T().Context(), today)
	s.Require().NoError(err)
	s.Zero(count)
	s.Len(s.upcoming(), 1)
}

func (s *PaymentSchedulerTestSuite) TestProcessRecurringPayments_OneAdvancePerSweep() {
	template := s.addRecurring(date(2024, 1, 31), domain.FrequencyMonthly)
	today := date(2024, 4, 15)

	for want, next := range []time.Time{date(2024, 2, 29), date(2024, 3, 29), date(2024, 4, 29)} {
		count, err := s.scheduler.ProcessRecurringPayments(s.T().Context(), today)
		s.Require().NoError(err)
		s.Equal(1, count)
		s.Equal(next, s.h.store.recurring[template.ID].NextDate)
		s.Len(s.upcoming(), want+1)
	}

	count, err := s.scheduler.ProcessRecurringPayments(s.T().Context(), today)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PaymentSchedulerTestSuite) TestProcessRecurringPayments_FailureRollsBack() {
	template := s.addRecurring(date(2024, 5, 1), domain.FrequencyWeekly)
	s.h.store.setFailure("upcoming.Create", errors.New("insert failed"))

	count, err := s.scheduler.ProcessRecurringPayments(s.T().Context(), date(2024, 5, 1))
	s.Require().Error(err)
	s.Zero(count)
	s.Equal(date(2024, 5, 1), s.h.store.recurring[template.ID].NextDate)

	s.h.store.setFailure("upcoming.Create", nil)
	count, err = s.scheduler.ProcessRecurringPayments(s.T().Context(), date(2024, 5, 1))
	s.Require().NoError(err)
	s.Equal(1, count)
	s.Equal(date(2024, 5, 8), s.h.store.recurring[template.ID].NextDate)
}

func (s *PaymentSchedulerTestSuite) TestMarkAsPaid_Atomic() {
	created, err := s.scheduler.CreateUpcomingPayment(s.T().Context(), CreateUpcomingPaymentInput{
		ShopID:      1,
		Description: "Electricity",
		Amount:      amount("80"),
		DueDate:     date(2024, 1, 31),
		PaymentType: domain.PaymentTypeRecurring,
	})
	s.Require().NoError(err)

	s.h.store.setFailure("upcoming.Delete", errors.New("lock timeout"))
	_, err = s.scheduler.MarkAsPaid(s.T().Context(), created.ID, date(2024, 2, 1))
	s.Require().Error(err)

	list := s.upcoming()
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)
	s.Empty(s.h.store.transactionsOf(1))

	s.h.store.setFailure("upcoming.Delete", nil)
	result, err := s.scheduler.MarkAsPaid(s.T().Context(), created.ID, date(2024, 2, 1))
	s.Require().NoError(err)

	txs := s.h.store.transactionsOf(1)
	s.Require().Len(txs, 1)
	s.Equal(domain.TransactionTypeExpense, txs[0].Type)
	s.Equal(domain.CategoryUtilities, txs[0].Category)
	s.True(txs[0].IsRecurring)
	requireDecimal(s.T(), "80", result.Transaction.Amount)

	s.Require().NotNil(result.Next)
	s.Equal(date(2024, 2, 29), result.Next.DueDate)
	list = s.upcoming()
	s.Require().Len(list, 1)
	s.Equal(result.Next.ID, list[0].ID)
}

func (s *PaymentSchedulerTestSuite) TestMarkAsPaid_UsesTemplateFrequency() {
	template := s.addRecurring(date(2024, 3, 1), domain.FrequencyWeekly)
	_, err := s.scheduler.ProcessRecurringPayments(s.T().Context(), date(2024, 3, 1))
	s.Require().NoError(err)
	list := s.upcoming()
	s.Require().Len(list, 1)

	result, err := s.scheduler.MarkAsPaid(s.T().Context(), list[0].ID, date(2024, 3, 2))
	s.Require().NoError(err)
	s.Require().NotNil(result.Next)
	s.Equal(date(2024, 3, 8), result.Next.DueDate)
	s.Equal(template.ID, *result.Next.RecurringPaymentID)
	// явная категория шаблона важнее таблицы
	s.Equal(domain.CategoryShopRent, result.Transaction.Category)
}

func (s *PaymentSchedulerTestSuite) TestMarkAsPaid_OneTime() {
	created, err := s.scheduler.CreateUpcomingPayment(s.T().Context(), CreateUpcomingPaymentInput{
		ShopID:      1,
		Description: "Deposit",
		Amount:      amount("300"),
		DueDate:     date(2024, 7, 1),
		PaymentType: domain.PaymentTypeOneTime,
		IsPriority:  true,
	})
	s.Require().NoError(err)

	result, err := s.scheduler.MarkAsPaid(s.T().Context(), created.ID, time.Time{})
	s.Require().NoError(err)
	s.Nil(result.Next)
	s.Equal(domain.CategoryShopRent, result.Transaction.Category)
	s.False(result.Transaction.IsRecurring)
	s.Empty(s.upcoming())
}

func (s *PaymentSchedulerTestSuite) TestMarkAsPaid_NotFound() {
	_, err := s.scheduler.MarkAsPaid(s.T().Context(), 404, time.Now())

	var notFound *domain.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("upcoming payment", notFound.Entity)
	s.Empty(s.h.store.transactionsOf(1))
}

func (s *PaymentSchedulerTestSuite) TestUpcomingPayment_CRUD() {
	created, err := s.scheduler.CreateUpcomingPayment(s.T().Context(), CreateUpcomingPaymentInput{
		ShopID:      1,
		Description: "  Internet ",
		Amount:      amount("25"),
		DueDate:     time.Date(2024, 8, 5, 16, 0, 0, 0, time.UTC),
		PaymentType: domain.PaymentTypeRecurring,
	})
	s.Require().NoError(err)
	s.Equal("Internet", created.Description)
	s.Equal(date(2024, 8, 5), created.DueDate)

	newAmount := amount("27.5")
	priority := true
	updated, err := s.scheduler.UpdateUpcomingPayment(s.T().Context(), created.ID, UpdateUpcomingPaymentInput{
		Amount:     &newAmount,
		IsPriority: &priority,
	})
	s.Require().NoError(err)
	requireDecimal(s.T(), "27.5", updated.Amount)
	s.True(updated.IsPriority)
	s.Equal("Internet", updated.Description)

	got, err := s.scheduler.GetUpcomingPayment(s.T().Context(), created.ID)
	s.Require().NoError(err)
	requireDecimal(s.T(), "27.5", got.Amount)

	badType := domain.PaymentType("WEEKLY")
	_, err = s.scheduler.UpdateUpcomingPayment(s.T().Context(), created.ID, UpdateUpcomingPaymentInput{
		PaymentType: &badType,
	})
	s.Require().ErrorIs(err, domain.ErrValidation)

	s.Require().NoError(s.scheduler.DeleteUpcomingPayment(s.T().Context(), created.ID))
	s.Require().ErrorIs(s.scheduler.DeleteUpcomingPayment(s.T().Context(), created.ID), domain.ErrRecordNotFound)

	_, err = s.scheduler.GetUpcomingPayment(s.T().Context(), created.ID)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *PaymentSchedulerTestSuite) TestCreateUpcomingPayment_Validation() {
	valid := CreateUpcomingPaymentInput{
		ShopID:      1,
		Description: "Water",
		Amount:      amount("10"),
		DueDate:     date(2024, 1, 1),
		PaymentType: domain.PaymentTypeOneTime,
	}

	cases := map[string]func(in *CreateUpcomingPaymentInput){
		"no shop":          func(in *CreateUpcomingPaymentInput) { in.ShopID = 0 },
		"blank":            func(in *CreateUpcomingPaymentInput) { in.Description = " " },
		"zero amount":      func(in *CreateUpcomingPaymentInput) { in.Amount = amount("0") },
		"no due date":      func(in *CreateUpcomingPaymentInput) { in.DueDate = time.Time{} },
		"bad payment type": func(in *CreateUpcomingPaymentInput) { in.PaymentType = "SOMETIMES" },
		"bad category":     func(in *CreateUpcomingPaymentInput) { in.Category = "FUN" },
	}
	for name, mutate := range cases {
		in := valid
		mutate(&in)
		_, err := s.scheduler.CreateUpcomingPayment(s.T().Context(), in)
		s.Require().ErrorIsf(err, domain.ErrValidation, name)
	}

	missing := int64(999)
	in := valid
	in.RecurringPaymentID = &missing
	_, err := s.scheduler.CreateUpcomingPayment(s.T().Context(), in)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *PaymentSchedulerTestSuite) TestRecurringPayments_ListAndDelete() {
	first := s.addRecurring(date(2024, 2, 1), domain.FrequencyMonthly)
	s.addRecurring(date(2024, 1, 1), domain.FrequencyAnnually)

	list, err := s.scheduler.ListRecurringPayments(s.T().Context(), 1)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(date(2024, 1, 1), list[0].NextDate)
	requireDecimal(s.T(), "1500", list[1].Amount)

	got, getErr := s.scheduler.GetRecurringPayment(s.T().Context(), first.ID)
	s.Require().NoError(getErr)
	s.Equal(domain.FrequencyMonthly, got.Frequency)
	requireDecimal(s.T(), "1500", got.Amount)

	s.Require().NoError(s.scheduler.DeleteRecurringPayment(s.T().Context(), first.ID))
	var notFound *domain.NotFoundError
	s.Require().ErrorAs(s.scheduler.DeleteRecurringPayment(s.T().Context(), first.ID), &notFound)
	s.Equal("recurring payment", notFound.Entity)

	_, getErr = s.scheduler.GetRecurringPayment(s.T().Context(), first.ID)
	s.Require().ErrorAs(getErr, &notFound)
}
