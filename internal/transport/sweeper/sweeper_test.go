package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/pos-ledger/internal/transport/sweeper/mocks"
)

type SweeperTestSuite struct {
	suite.Suite
	processor *mocks.MockRecurringProcessor
	logger    *logrus.Logger
	hook      *test.Hook
	today     time.Time
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

func (s *SweeperTestSuite) SetupTest() {
	s.processor = mocks.NewMockRecurringProcessor(gomock.NewController(s.T()))
	s.logger, s.hook = test.NewNullLogger()
	s.today = time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
}

func (s *SweeperTestSuite) newSweeper(interval time.Duration) *Sweeper {
	sw := New(s.processor, interval, s.logger)
	sw.now = func() time.Time { return s.today }
	return sw
}

func (s *SweeperTestSuite) TestTrigger() {
	sw := s.newSweeper(0)
	s.processor.EXPECT().ProcessRecurringPayments(gomock.Any(), s.today).Return(3, nil)

	created, err := sw.Trigger(s.T().Context())
	s.Require().NoError(err)
	s.Equal(3, created)
}

func (s *SweeperTestSuite) TestTrigger_PartialFailure() {
	sw := s.newSweeper(0)
	s.processor.EXPECT().ProcessRecurringPayments(gomock.Any(), s.today).Return(1, errors.New("template 5: boom"))

	created, err := sw.Trigger(s.T().Context())
	s.Require().Error(err)
	s.Equal(1, created)
}

func (s *SweeperTestSuite) TestTrigger_ConcurrentCallsShareOnePass() {
	sw := s.newSweeper(0)
	started := make(chan struct{})
	release := make(chan struct{})
	s.processor.EXPECT().ProcessRecurringPayments(gomock.Any(), s.today).
		DoAndReturn(func(context.Context, time.Time) (int, error) {
			close(started)
			<-release
			return 2, nil
		}).
		Times(1)

	results := make([]int, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], _ = sw.Trigger(s.T().Context())
	}()
	<-started
	go func() {
		defer wg.Done()
		results[1], _ = sw.Trigger(s.T().Context())
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal([]int{2, 2}, results)
}

func (s *SweeperTestSuite) TestRun_Disabled() {
	sw := s.newSweeper(0)
	sw.Run(s.T().Context())

	s.Require().NotNil(s.hook.LastEntry())
	s.Equal("periodic sweep disabled", s.hook.LastEntry().Message)
}

func (s *SweeperTestSuite) TestRun_SweepsUntilCancelled() {
	sw := s.newSweeper(time.Hour)
	ctx, cancel := context.WithCancel(s.T().Context())
	s.processor.EXPECT().ProcessRecurringPayments(gomock.Any(), s.today).
		DoAndReturn(func(context.Context, time.Time) (int, error) {
			cancel()
			return 0, errors.New("db down")
		})

	sw.Run(ctx)

	s.Require().NotNil(s.hook.LastEntry())
	s.Equal(logrus.ErrorLevel, s.hook.LastEntry().Level)
}
