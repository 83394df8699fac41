package api

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

// validateMaxBytes в отличии от тэга max который проверяет длину рун, - проверят длину байт в поле.
func validateMaxBytes(fl validator.FieldLevel) bool {
	param := fl.Param() // получаем значение из тега
	maxBytes, err := strconv.Atoi(param)
	if err != nil {
		return false
	}

	// нужно убедится что значение поля - строка.
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return len([]byte(str)) <= maxBytes
}

// enumValidator проверяет строковое перечисление домена. Пустое значение пропускается, обязательность
// задается тегом required.
func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || valid(value)
	}
}

var registerOnce sync.Once

func registerValidators() error {
	var regErr error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			regErr = fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
			return
		}
		validations := map[string]validator.Func{
			"max_bytes": validateMaxBytes,
			"txn_type": enumValidator(func(s string) bool {
				return domain.TransactionType(s).Valid()
			}),
			"txn_category": enumValidator(func(s string) bool {
				return domain.TransactionCategory(s).Valid()
			}),
			"frequency": enumValidator(func(s string) bool {
				return domain.Frequency(s).Valid()
			}),
			"payment_type": enumValidator(func(s string) bool {
				return domain.PaymentType(s).Valid()
			}),
			"payment_method": enumValidator(func(s string) bool {
				return domain.PaymentMethod(s).Valid()
			}),
		}
		for tag, fn := range validations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				regErr = fmt.Errorf("validator registration: %s", err.Error())
				return
			}
		}
	})
	return regErr
}
