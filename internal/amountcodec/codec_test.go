package amountcodec

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/pos-ledger/internal/amountcodec/mocks"
	"github.com/fsdevblog/pos-ledger/internal/domain"
)

var fakeKMSPrefix = []byte("kms:")

type CodecTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockEnvelope *mocks.MockEnvelopeService
	logger       *logrus.Logger
	hook         *test.Hook
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockEnvelope = mocks.NewMockEnvelopeService(s.mockCtrl)
	s.logger, s.hook = test.NewNullLogger()
}

func (s *CodecTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CodecTestSuite) newCodec(opts Options) *Codec {
	return New(s.mockEnvelope, opts, s.logger)
}

// expectReversibleEnvelope настраивает мок сервиса шифрования как обратимое преобразование.
func (s *CodecTestSuite) expectReversibleEnvelope() {
	s.mockEnvelope.EXPECT().Encrypt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plaintext []byte) ([]byte, error) {
			return append(append([]byte{}, fakeKMSPrefix...), plaintext...), nil
		}).AnyTimes()
	s.mockEnvelope.EXPECT().Decrypt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ciphertext []byte) ([]byte, error) {
			if !bytes.HasPrefix(ciphertext, fakeKMSPrefix) {
				return nil, errors.New("invalid ciphertext")
			}
			return ciphertext[len(fakeKMSPrefix):], nil
		}).AnyTimes()
}

func (s *CodecTestSuite) hasEntry(level logrus.Level, msgPart string) bool {
	for _, entry := range s.hook.AllEntries() {
		if entry.Level == level && strings.Contains(entry.Message, msgPart) {
			return true
		}
	}
	return false
}

func (s *CodecTestSuite) TestDecrypt_ZeroAndEmpty() {
	// Моки не настроены - любой вызов сервиса шифрования провалит тест.
	codec := s.newCodec(Options{KeyID: "key-1"})

	s.True(codec.Decrypt(s.T().Context(), "").IsZero())
	s.True(s.hasEntry(logrus.WarnLevel, "empty value"))

	s.hook.Reset()
	s.True(codec.Decrypt(s.T().Context(), "0").IsZero())
	s.Empty(s.hook.AllEntries())
}

func (s *CodecTestSuite) TestRoundTrip_Envelope() {
	s.expectReversibleEnvelope()
	codec := s.newCodec(Options{KeyID: "key-1"})

	for range 50 {
		amount := decimal.NewFromFloat(gofakeit.Float64Range(-100000, 100000)).Round(2)

		stored, err := codec.Encrypt(s.T().Context(), amount)
		s.Require().NoError(err)
		if !amount.IsZero() {
			s.NotEqual(amount.String(), string(stored))
		}

		got := codec.Decrypt(s.T().Context(), stored)
		s.Truef(amount.Equal(got), "want %s, got %s", amount, got)
	}
}

func (s *CodecTestSuite) TestRoundTrip_LocalFallback() {
	// Сервис шифрования недоступен на запись. Расшифровка локального формата к сервису не обращается.
	s.mockEnvelope.EXPECT().Encrypt(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("kms unavailable")).AnyTimes()
	s.mockEnvelope.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Times(0)

	codec := s.newCodec(Options{KeyID: "key-1", InsecureLocalFallback: true})

	for range 50 {
		amount := decimal.NewFromFloat(gofakeit.Float64Range(0.01, 100000)).Round(2)

		stored, err := codec.Encrypt(s.T().Context(), amount)
		s.Require().NoError(err)
		s.True(strings.HasPrefix(string(stored), "local:"))

		got := codec.Decrypt(s.T().Context(), stored)
		s.Truef(amount.Equal(got), "want %s, got %s", amount, got)
	}
}

func (s *CodecTestSuite) TestEncrypt_NoFallback() {
	s.mockEnvelope.EXPECT().Encrypt(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("kms unavailable"))

	codec := s.newCodec(Options{KeyID: "key-1"})

	_, err := codec.Encrypt(s.T().Context(), decimal.NewFromInt(10))
	s.Require().Error(err)

	stored, zeroErr := codec.Encrypt(s.T().Context(), decimal.Zero)
	s.Require().NoError(zeroErr)
	s.Equal(domain.EncryptedAmount("0"), stored)
}

func (s *CodecTestSuite) TestDecrypt_LocalFallbackDisabled() {
	local, err := encryptLocal("42.50")
	s.Require().NoError(err)

	codec := s.newCodec(Options{KeyID: "key-1"})

	s.Equal(local, codec.DecryptString(s.T().Context(), domain.EncryptedAmount(local)))
	s.True(codec.Decrypt(s.T().Context(), domain.EncryptedAmount(local)).IsZero())
	s.True(s.hasEntry(logrus.ErrorLevel, "insecure local fallback is disabled"))
}

func (s *CodecTestSuite) TestDecrypt_PlaintextMode() {
	codec := New(nil, Options{}, s.logger)

	s.True(decimal.RequireFromString("123.45").Equal(codec.Decrypt(s.T().Context(), "123.45")))
	s.True(decimal.RequireFromString("-50").Equal(codec.Decrypt(s.T().Context(), "-50")))

	s.True(codec.Decrypt(s.T().Context(), "not-a-number").IsZero())
	s.True(s.hasEntry(logrus.WarnLevel, "not a number"))

	stored, err := codec.Encrypt(s.T().Context(), decimal.RequireFromString("99.9"))
	s.Require().NoError(err)
	s.Equal(domain.EncryptedAmount("99.9"), stored)
}

func (s *CodecTestSuite) TestDecrypt_EnvelopeFailure() {
	s.mockEnvelope.EXPECT().Decrypt(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("access denied"))

	codec := s.newCodec(Options{KeyID: "key-1"})
	stored := domain.EncryptedAmount("c29tZS1jaXBoZXJ0ZXh0")

	s.Equal(string(stored), codec.DecryptString(s.T().Context(), stored))
	s.True(s.hasEntry(logrus.ErrorLevel, "returning stored value"))
}

func (s *CodecTestSuite) TestDecrypt_MalformedBase64() {
	// Битый base64 отсекается до обращения к сервису.
	s.mockEnvelope.EXPECT().Decrypt(gomock.Any(), gomock.Any()).Times(0)

	codec := s.newCodec(Options{KeyID: "key-1"})

	s.Equal("%%%", codec.DecryptString(s.T().Context(), "%%%"))
	s.True(codec.Decrypt(s.T().Context(), "%%%").IsZero())
}

func (s *CodecTestSuite) TestDecryptAll_IsolatesFailures() {
	s.expectReversibleEnvelope()
	codec := s.newCodec(Options{KeyID: "key-1", Concurrency: 2})

	first, err := codec.Encrypt(s.T().Context(), decimal.NewFromInt(100))
	s.Require().NoError(err)
	second, err := codec.Encrypt(s.T().Context(), decimal.RequireFromString("0.5"))
	s.Require().NoError(err)

	// "Ym9ndXM=" - валидный base64, но не шифротекст мока.
	results := codec.DecryptAll(s.T().Context(), []domain.EncryptedAmount{first, "Ym9ndXM=", "", second, "0"})

	s.Require().Len(results, 5)
	s.True(decimal.NewFromInt(100).Equal(results[0]))
	s.True(results[1].IsZero())
	s.True(results[2].IsZero())
	s.True(decimal.RequireFromString("0.5").Equal(results[3]))
	s.True(results[4].IsZero())
}

func (s *CodecTestSuite) TestDecryptStrict_EnvelopeFailure() {
	s.mockEnvelope.EXPECT().Decrypt(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("throttled"))

	codec := s.newCodec(Options{KeyID: "key-1"})

	value, err := codec.DecryptStrict(s.T().Context(), "c29tZS1jaXBoZXJ0ZXh0")
	s.Require().ErrorIs(err, ErrUndecryptable)
	s.True(value.IsZero())
	s.True(s.hasEntry(logrus.ErrorLevel, "strict decrypt failed"))
}

func (s *CodecTestSuite) TestDecryptStrict_ZeroAndPlaintext() {
	// Ноль и пустое значение к сервису не обращаются.
	codec := s.newCodec(Options{KeyID: "key-1"})

	for _, stored := range []domain.EncryptedAmount{"", "0"} {
		value, err := codec.DecryptStrict(s.T().Context(), stored)
		s.Require().NoError(err)
		s.True(value.IsZero())
	}

	plain := New(nil, Options{}, s.logger)
	value, err := plain.DecryptStrict(s.T().Context(), "-12.5")
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("-12.5").Equal(value))

	_, err = plain.DecryptStrict(s.T().Context(), "not-a-number")
	s.Require().ErrorIs(err, ErrUndecryptable)
}

func (s *CodecTestSuite) TestDecryptStrict_LocalFallback() {
	local, err := encryptLocal("42.50")
	s.Require().NoError(err)

	_, err = s.newCodec(Options{KeyID: "key-1"}).DecryptStrict(s.T().Context(), domain.EncryptedAmount(local))
	s.Require().ErrorIs(err, ErrUndecryptable)

	value, err := s.newCodec(Options{KeyID: "key-1", InsecureLocalFallback: true}).
		DecryptStrict(s.T().Context(), domain.EncryptedAmount(local))
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("42.5").Equal(value))
}

func (s *CodecTestSuite) TestDecryptAllStrict() {
	s.expectReversibleEnvelope()
	codec := s.newCodec(Options{KeyID: "key-1", Concurrency: 2})

	first, err := codec.Encrypt(s.T().Context(), decimal.NewFromInt(100))
	s.Require().NoError(err)
	second, err := codec.Encrypt(s.T().Context(), decimal.RequireFromString("0.5"))
	s.Require().NoError(err)

	values, err := codec.DecryptAllStrict(s.T().Context(), []domain.EncryptedAmount{first, "0", second})
	s.Require().NoError(err)
	s.Require().Len(values, 3)
	s.True(decimal.NewFromInt(100).Equal(values[0]))
	s.True(values[1].IsZero())
	s.True(decimal.RequireFromString("0.5").Equal(values[2]))

	// Одно нерасшифровываемое значение проваливает всю пачку.
	_, err = codec.DecryptAllStrict(s.T().Context(), []domain.EncryptedAmount{first, "Ym9ndXM=", second})
	s.Require().ErrorIs(err, ErrUndecryptable)
}

func TestLocalCipher(t *testing.T) {
	encrypted, err := encryptLocal("1000.01")
	require.NoError(t, err)
	require.Len(t, strings.Split(encrypted, ":"), 4)

	plain, err := decryptLocal(encrypted)
	require.NoError(t, err)
	require.Equal(t, "1000.01", plain)

	_, err = decryptLocal("local:zz:zz:zz")
	require.Error(t, err)

	_, err = decryptLocal("local:only-two")
	require.ErrorIs(t, err, errMalformedLocal)
}
