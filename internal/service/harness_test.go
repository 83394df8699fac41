package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/pos-ledger/internal/amountcodec"
	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/service/mocks"
)

// harness сервисы поверх хранилища в памяти и кодека в режиме открытого текста.
type harness struct {
	store    *memStore
	uow      *memUOW
	codec    *amountcodec.Codec
	logger   *logrus.Logger
	hook     *test.Hook
	access   *mocks.MockAccessProvider
	services *AppServices
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithCodec(t, func(l *logrus.Logger) *amountcodec.Codec {
		return amountcodec.New(nil, amountcodec.Options{}, l)
	})
}

func newHarnessWithCodec(t *testing.T, codecFn func(l *logrus.Logger) *amountcodec.Codec) *harness {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store := newMemStore()
	u := &memUOW{s: store}
	codec := codecFn(logger)
	access := mocks.NewMockAccessProvider(gomock.NewController(t))

	categories, err := ParseCategoryTable(DefaultCategoryTable)
	require.NoError(t, err)

	services, err := Factory(u, codec, access, Options{
		Logger:     logger,
		Tolerance:  DefaultReconcileTolerance,
		Categories: categories,
	})
	require.NoError(t, err)

	return &harness{
		store:    store,
		uow:      u,
		codec:    codec,
		logger:   logger,
		hook:     hook,
		access:   access,
		services: services,
	}
}

// flakyEnvelope обратимый конвертный шифр, расшифровку которого можно временно сломать.
type flakyEnvelope struct {
	decryptDown atomic.Bool
}

func (e *flakyEnvelope) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	return append([]byte("kms:"), plaintext...), nil
}

func (e *flakyEnvelope) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	if e.decryptDown.Load() {
		return nil, errors.New("kms: service unavailable")
	}
	return bytes.TrimPrefix(ciphertext, []byte("kms:")), nil
}

func newEnvelopeHarness(t *testing.T) (*harness, *flakyEnvelope) {
	t.Helper()
	envelope := &flakyEnvelope{}
	h := newHarnessWithCodec(t, func(l *logrus.Logger) *amountcodec.Codec {
		return amountcodec.New(envelope, amountcodec.Options{KeyID: "test-key"}, l)
	})
	return h, envelope
}

// entries записи лога уровня level, сообщение которых содержит msgPart.
func (h *harness) entries(level logrus.Level, msgPart string) []logrus.Entry {
	var result []logrus.Entry
	for _, e := range h.hook.AllEntries() {
		if e.Level == level && strings.Contains(e.Message, msgPart) {
			result = append(result, *e)
		}
	}
	return result
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stored(s string) domain.EncryptedAmount {
	return domain.EncryptedAmount(s)
}

// requireDecimal сравнивает значения, а не представления (10 и 10.00 равны).
func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, amount(want).Equal(got), "want %s, got %s", want, got)
}
