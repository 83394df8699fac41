package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/pos-ledger/internal/domain"
	"github.com/fsdevblog/pos-ledger/internal/transport/api/middlewares"
)

const dateLayout = time.DateOnly

// getUserIDFromContext берет из контекста gin ID текущего пользователя. ID устанавливается в
// middlewares.AuthRequired. Если значения в контексте нет - вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentUserIDKey)
}

// getShopIDFromContext ID магазина, к которому middlewares.ShopAccess уже проверил доступ.
func getShopIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentShopIDKey)
}

// parseIDParam читает положительный идентификатор из пути. При ошибке запрос уже прерван с 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s", name)).SetType(gin.ErrorTypePublic)
		return 0, false
	}
	return id, true
}

// parseDateQuery читает необязательную дату формата YYYY-MM-DD из строки запроса.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid %s date, expected YYYY-MM-DD", name)).
			SetType(gin.ErrorTypePublic)
		return nil, false
	}
	return &parsed, true
}

// parseOptionalDate разбирает дату из тела запроса. Формат уже проверен тегом datetime.
func parseOptionalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// abortWithServiceError переводит ошибку сервисного слоя в статус ответа.
func abortWithServiceError(c *gin.Context, err error) {
	var (
		notFound   *domain.NotFoundError
		validation *domain.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		_ = c.AbortWithError(http.StatusNotFound, notFound).SetType(gin.ErrorTypePublic)
	case errors.As(err, &validation):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New(validation.Msg)).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrRecordNotFound):
		_ = c.AbortWithError(http.StatusNotFound, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrAccessDenied):
		_ = c.AbortWithError(http.StatusForbidden, err).SetType(gin.ErrorTypePrivate)
	case errors.Is(err, domain.ErrDuplicateKey):
		_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePrivate)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

// abortNotInShop сущность из другого магазина неотличима от несуществующей.
func abortNotInShop(c *gin.Context, entity string, id int64) {
	abortWithServiceError(c, domain.NewNotFoundError(entity, id))
}
