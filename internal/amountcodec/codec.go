// Package amountcodec шифрует и расшифровывает денежные суммы и баллы лояльности, хранимые в БД.
//
// Расшифровка никогда не возвращает ошибку: любой сбой логируется и разрешается в значение "по возможности"
// (исходную строку или ноль), чтобы агрегирующий код не обрабатывал отсутствующие значения. Записи, которые
// пересчитывают хранимое значение из прочитанного, используют DecryptStrict.
package amountcodec

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

//go:generate mockgen -source=codec.go -destination=mocks/mocks.go -package=mocks

const (
	zeroValue = "0"

	defaultCallTimeout = 5 * time.Second
	defaultConcurrency = 8

	// logPrefixLen сколько символов хранимого значения попадает в лог. Полный шифротекст не логируем.
	logPrefixLen = 12
)

// ErrUndecryptable хранимое значение не удалось расшифровать в число.
var ErrUndecryptable = errors.New("amount cannot be decrypted")

// EnvelopeService внешний сервис конвертного шифрования.
type EnvelopeService interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

type Options struct {
	// KeyID ключ конвертного шифрования. Пустое значение включает режим открытого текста.
	KeyID string
	// InsecureLocalFallback разрешает локальный шифр, который хранит ключ рядом с шифротекстом.
	InsecureLocalFallback bool
	// CallTimeout ограничение на один вызов сервиса шифрования.
	CallTimeout time.Duration
	// Concurrency максимум одновременных расшифровок в DecryptAll.
	Concurrency int
}

type Codec struct {
	envelope      EnvelopeService
	plaintextMode bool
	insecureLocal bool
	callTimeout   time.Duration
	concurrency   int
	l             *logrus.Entry
}

// New создает кодек. envelope может быть nil только в режиме открытого текста (пустой opts.KeyID).
func New(envelope EnvelopeService, opts Options, l *logrus.Logger) *Codec {
	callTimeout := opts.CallTimeout
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Codec{
		envelope:      envelope,
		plaintextMode: opts.KeyID == "" || envelope == nil,
		insecureLocal: opts.InsecureLocalFallback,
		callTimeout:   callTimeout,
		concurrency:   concurrency,
		l: l.WithFields(logrus.Fields{
			"component": "amountcodec",
			"module":    "codec",
		}),
	}
}

// Decrypt расшифровывает хранимое значение и разбирает его как десятичное число. Если результат не является
// числом (например, расшифровка не удалась и вернулся шифротекст), возвращается ноль.
func (c *Codec) Decrypt(ctx context.Context, stored domain.EncryptedAmount) decimal.Decimal {
	plain := c.DecryptString(ctx, stored)
	value, err := decimal.NewFromString(strings.TrimSpace(plain))
	if err != nil {
		c.entry(stored).WithError(err).Warn("decrypted value is not a number, using zero")
		return decimal.Zero
	}
	return value
}

// DecryptString возвращает открытый текст хранимого значения. Порядок разрешения:
//  1. пустое значение - "0" с предупреждением;
//  2. "0" - как есть, без обращения к шифрам;
//  3. режим открытого текста - значение как есть;
//  4. значение с маркером локального шифра - локальная расшифровка;
//  5. иначе сервис конвертного шифрования (base64);
//  6. при ошибке сервиса - локальная расшифровка, если в значении есть маркер, иначе исходная строка.
func (c *Codec) DecryptString(ctx context.Context, stored domain.EncryptedAmount) string {
	raw := string(stored)

	switch {
	case raw == "":
		c.l.Warn("decrypting empty value, using zero")
		return zeroValue
	case raw == zeroValue:
		return zeroValue
	case c.plaintextMode:
		return raw
	case isLocalCiphertext(raw):
		return c.decryptLocal(stored, raw)
	}

	plain, err := c.decryptEnvelope(ctx, raw)
	if err == nil {
		return plain
	}

	if idx := strings.Index(raw, localMarker+localSeparator); idx >= 0 {
		c.entry(stored).WithError(err).Warn("envelope decrypt failed, retrying with local fallback")
		return c.decryptLocal(stored, raw[idx:])
	}

	c.entry(stored).WithError(err).Error("envelope decrypt failed, returning stored value")
	return raw
}

// DecryptAll расшифровывает набор значений параллельно. Порядок результата совпадает с порядком входа,
// ошибка одного элемента не влияет на остальные.
func (c *Codec) DecryptAll(ctx context.Context, stored []domain.EncryptedAmount) []decimal.Decimal {
	return decryptBatch(ctx, c, stored, c.concurrency)
}

// DecryptStrict расшифровка для путей чтение-изменение-запись: любой сбой возвращается ошибкой
// ErrUndecryptable вместо нуля.
func (c *Codec) DecryptStrict(ctx context.Context, stored domain.EncryptedAmount) (decimal.Decimal, error) {
	plain, err := c.decryptStrictString(ctx, stored)
	if err != nil {
		c.entry(stored).WithError(err).Error("strict decrypt failed")
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(strings.TrimSpace(plain))
	if err != nil {
		return decimal.Zero, errors.Wrap(ErrUndecryptable, "decrypted value is not a number")
	}
	return value, nil
}

// DecryptAllStrict как DecryptStrict для набора значений. Первая ошибка прерывает пачку.
func (c *Codec) DecryptAllStrict(ctx context.Context, stored []domain.EncryptedAmount) ([]decimal.Decimal, error) {
	return decryptBatchStrict(ctx, c, stored, c.concurrency)
}

func (c *Codec) decryptStrictString(ctx context.Context, stored domain.EncryptedAmount) (string, error) {
	raw := string(stored)

	switch {
	case raw == "", raw == zeroValue:
		return zeroValue, nil
	case c.plaintextMode:
		return raw, nil
	case isLocalCiphertext(raw):
		return c.decryptLocalStrict(raw)
	}

	plain, err := c.decryptEnvelope(ctx, raw)
	if err == nil {
		return plain, nil
	}
	if idx := strings.Index(raw, localMarker+localSeparator); idx >= 0 && c.insecureLocal {
		return c.decryptLocalStrict(raw[idx:])
	}
	return "", errors.Wrap(ErrUndecryptable, err.Error())
}

func (c *Codec) decryptLocalStrict(raw string) (string, error) {
	if !c.insecureLocal {
		return "", errors.Wrap(ErrUndecryptable, "insecure local fallback is disabled")
	}
	plain, err := decryptLocal(raw)
	if err != nil {
		return "", errors.Wrap(ErrUndecryptable, err.Error())
	}
	return plain, nil
}

// Encrypt шифрует сумму для хранения. Ноль хранится как "0", в режиме открытого текста - строка числа.
func (c *Codec) Encrypt(ctx context.Context, amount decimal.Decimal) (domain.EncryptedAmount, error) {
	if amount.IsZero() {
		return zeroValue, nil
	}
	plain := amount.String()
	if c.plaintextMode {
		return domain.EncryptedAmount(plain), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	ciphertext, err := c.envelope.Encrypt(callCtx, []byte(plain))
	if err == nil {
		return domain.EncryptedAmount(base64.StdEncoding.EncodeToString(ciphertext)), nil
	}

	if !c.insecureLocal {
		return "", errors.Wrap(err, "envelope encrypt")
	}

	c.l.WithError(err).Warn("envelope encrypt failed, using insecure local fallback")
	local, localErr := encryptLocal(plain)
	if localErr != nil {
		return "", errors.Wrap(localErr, "local encrypt")
	}
	return domain.EncryptedAmount(local), nil
}

func (c *Codec) decryptEnvelope(ctx context.Context, raw string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", errors.Wrap(err, "base64 decode")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	plaintext, err := c.envelope.Decrypt(callCtx, ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "envelope decrypt")
	}
	return string(plaintext), nil
}

func (c *Codec) decryptLocal(stored domain.EncryptedAmount, raw string) string {
	if !c.insecureLocal {
		c.entry(stored).Error("local fallback ciphertext found but insecure local fallback is disabled")
		return string(stored)
	}
	plain, err := decryptLocal(raw)
	if err != nil {
		c.entry(stored).WithError(err).Error("local decrypt failed, returning stored value")
		return string(stored)
	}
	return plain
}

func (c *Codec) entry(stored domain.EncryptedAmount) *logrus.Entry {
	prefix := string(stored)
	if len(prefix) > logPrefixLen {
		prefix = prefix[:logPrefixLen] + "..."
	}
	return c.l.WithField("stored_prefix", prefix)
}
