// Package sweeper периодический запуск обработки повторяющихся платежей внутри процесса.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=sweeper.go -destination=mocks/mocks.go -package=mocks

type RecurringProcessor interface {
	ProcessRecurringPayments(ctx context.Context, today time.Time) (int, error)
}

const sweepKey = "recurring"

// Sweeper одновременно выполняется не более одного прохода: ручной запуск во время прохода по таймеру
// получает его результат.
type Sweeper struct {
	processor RecurringProcessor
	interval  time.Duration
	group     singleflight.Group
	l         *logrus.Entry
	now       func() time.Time
}

func New(processor RecurringProcessor, interval time.Duration, l *logrus.Logger) *Sweeper {
	return &Sweeper{
		processor: processor,
		interval:  interval,
		l: l.WithFields(logrus.Fields{
			"component": "transport",
			"module":    "sweeper",
		}),
		now: time.Now,
	}
}

// Trigger число созданных предстоящих платежей.
func (s *Sweeper) Trigger(ctx context.Context) (int, error) {
	res, err, shared := s.group.Do(sweepKey, func() (any, error) {
		// проход не должен прерываться отменой запроса, который его начал
		return s.processor.ProcessRecurringPayments(context.WithoutCancel(ctx), s.now())
	})
	if shared {
		s.l.Debug("sweep shared with running pass")
	}
	created, _ := res.(int)
	if err != nil {
		return created, fmt.Errorf("sweep: %w", err)
	}
	return created, nil
}

// Run запускает проходы с заданным интервалом до отмены контекста. Нулевой интервал отключает таймер.
func (s *Sweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.l.Info("periodic sweep disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	created, err := s.Trigger(ctx)
	if err != nil {
		s.l.WithError(err).WithField("created", created).Error("recurring payments sweep failed")
		return
	}
	s.l.WithField("created", created).Info("recurring payments sweep finished")
}
