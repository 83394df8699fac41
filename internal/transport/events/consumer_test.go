package events

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/service"
	"github.com/fsdevblog/pos-ledger/internal/transport/events/mocks"
)

const deliveryTag = uint64(7)

type ConsumerTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	handler  *mocks.MockSettlementHandler
	ack      *mocks.MockAcknowledger
	hook     *test.Hook
	consumer *Consumer
	now      time.Time
}

func TestConsumerSuite(t *testing.T) {
	suite.Run(t, new(ConsumerTestSuite))
}

func (s *ConsumerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.handler = mocks.NewMockSettlementHandler(s.mockCtrl)
	s.ack = mocks.NewMockAcknowledger(s.mockCtrl)

	var logger *logrus.Logger
	logger, s.hook = test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s.now = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	s.consumer = New(Config{Queue: "ledger.events", Workers: 2}, s.handler, logger)
	s.consumer.now = func() time.Time { return s.now }
}

func (s *ConsumerTestSuite) delivery(body string) amqp.Delivery {
	return amqp.Delivery{Acknowledger: s.ack, DeliveryTag: deliveryTag, Body: []byte(body)}
}

func (s *ConsumerTestSuite) TestOrderCompleted() {
	eventID := uuid.New()
	body := fmt.Sprintf(`{"event_id":%q,"type":"order.completed","data":{
		"order_id":15,"order_number":"A-15","shop_id":3,"customer_id":42,
		"payments":[{"method":"CASH","amount":"70"},{"method":"CARD","amount":30}],
		"wallet_used":"0","due_paid":"10","extra_added":"0","loyalty_gained":"5"}}`, eventID)

	s.handler.EXPECT().
		ApplyCompletedOrder(gomock.Any(), eventID, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, order service.CompletedOrder) (*service.SettlementResult, error) {
			s.Equal(int64(15), order.OrderID)
			s.Equal(int64(3), order.ShopID)
			s.Require().NotNil(order.CustomerID)
			s.Equal(int64(42), *order.CustomerID)
			s.Equal(s.now, order.CompletedAt)
			s.Require().Len(order.Payments, 2)
			s.Equal(domain.PaymentMethodCash, order.Payments[0].Method)
			s.True(order.Payments[1].Amount.Equal(decimal.NewFromInt(30)))
			s.True(order.DuePaid.Equal(decimal.NewFromInt(10)))
			return &service.SettlementResult{}, nil
		})
	s.ack.EXPECT().Ack(deliveryTag, false).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))
}

func (s *ConsumerTestSuite) TestDuePaid() {
	eventID := uuid.New()
	body := fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{
		"customer_id":42,"shop_id":3,"amount":"25.50","paid_at":"2025-03-01T12:00:00Z"}}`, eventID)

	s.handler.EXPECT().
		ApplyDuePaid(gomock.Any(), eventID, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, event service.DuePaid) (*service.SettlementResult, error) {
			s.Equal(int64(42), event.CustomerID)
			s.True(event.Amount.Equal(decimal.RequireFromString("25.50")))
			s.Equal(time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC), event.PaidAt.UTC())
			return &service.SettlementResult{}, nil
		})
	s.ack.EXPECT().Ack(deliveryTag, false).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))
}

func (s *ConsumerTestSuite) TestDuplicateIsAcknowledged() {
	eventID := uuid.New()
	body := fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{"customer_id":1,"shop_id":1,"amount":"5"}}`,
		eventID)

	s.handler.EXPECT().ApplyDuePaid(gomock.Any(), eventID, gomock.Any()).
		Return(&service.SettlementResult{Duplicate: true}, nil)
	s.ack.EXPECT().Ack(deliveryTag, false).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))

	var found bool
	for _, e := range s.hook.AllEntries() {
		if e.Message == "duplicate event acknowledged" {
			found = true
		}
	}
	s.True(found)
}

func (s *ConsumerTestSuite) TestRejectedWithoutRequeue() {
	validID := uuid.New().String()
	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{"event_id":`},
		{name: "bad event id", body: `{"event_id":"42","type":"due.paid","data":{}}`},
		{name: "unknown type", body: fmt.Sprintf(`{"event_id":%q,"type":"order.cancelled","data":{}}`, validID)},
		{
			name: "bad amount",
			body: fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{"customer_id":1,"shop_id":1,"amount":"x"}}`,
				validID),
		},
		{
			name: "unknown payment method",
			body: fmt.Sprintf(`{"event_id":%q,"type":"order.completed","data":{"order_id":1,"shop_id":1,
				"payments":[{"method":"CHEQUE","amount":"1"}]}}`, validID),
		},
		{
			name: "missing customer",
			body: fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{"shop_id":1,"amount":"1"}}`, validID),
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			s.ack.EXPECT().Nack(deliveryTag, false, false).Return(nil)
			s.consumer.processMessage(s.T().Context(), s.delivery(t.body))
		})
	}
}

func (s *ConsumerTestSuite) TestRejectedEventLogsMetadataOnly() {
	eventID := uuid.New().String()
	body := fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{"customer_id":90210,"shop_id":1,"amount":"x"}}`,
		eventID)
	s.ack.EXPECT().Nack(deliveryTag, false, false).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))

	entry := s.hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal(logrus.ErrorLevel, entry.Level)
	s.Equal("rejecting event", entry.Message)
	s.Equal(eventID, entry.Data["event_id"])
	s.Equal(TypeDuePaid, entry.Data["type"])
	s.Equal(len(body), entry.Data["body_size"])
	s.NotContains(entry.Data, "body")
	line, err := entry.String()
	s.Require().NoError(err)
	s.NotContains(line, "90210")
}

func (s *ConsumerTestSuite) TestValidationErrorRejected() {
	body := fmt.Sprintf(`{"event_id":%q,"type":"due.paid","data":{"customer_id":1,"shop_id":1,"amount":"0"}}`,
		uuid.New())

	s.handler.EXPECT().ApplyDuePaid(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewValidationError("due payment amount must be positive"))
	s.ack.EXPECT().Nack(deliveryTag, false, false).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))
}

func (s *ConsumerTestSuite) TestTransientErrorRequeued() {
	body := fmt.Sprintf(`{"event_id":%q,"type":"order.completed","data":{"order_id":1,"shop_id":1}}`, uuid.New())

	s.handler.EXPECT().ApplyCompletedOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("apply completed order 1: %w", errors.New("connection reset")))
	s.ack.EXPECT().Nack(deliveryTag, false, true).Return(nil)

	s.consumer.processMessage(s.T().Context(), s.delivery(body))

	s.Require().NotNil(s.hook.LastEntry())
	s.Equal(logrus.ErrorLevel, s.hook.LastEntry().Level)
}
