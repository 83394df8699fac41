package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CurrentShopIDKey = "currentShopID"
	ShopIDParam      = "shopID"
)

const accessCheckTimeout = 3 * time.Second

var ErrShopAccessDenied = errors.New("no access to shop")

//go:generate mockgen -source=shop_access.go -destination=../mocks/access_mocks.go -package=mocks
type ShopAccessChecker interface {
	HasAccess(ctx context.Context, userID, shopID int64) (bool, error)
}

// ShopAccess проверяет, что текущий пользователь состоит в магазине из пути запроса. Должен стоять после
// AuthRequired. Записывает id магазина в контекст (поле CurrentShopIDKey).
func ShopAccess(checker ShopAccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopID, parseErr := strconv.ParseInt(c.Param(ShopIDParam), 10, 64)
		if parseErr != nil || shopID <= 0 {
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("invalid shop id")).SetType(gin.ErrorTypePublic)
			return
		}

		userID := c.GetInt64(CurrentUserIDKey)

		reqCtx, cancel := context.WithTimeout(c, accessCheckTimeout)
		defer cancel()

		ok, err := checker.HasAccess(reqCtx, userID, shopID)
		if err != nil {
			_ = c.AbortWithError(http.StatusBadGateway, fmt.Errorf("checking shop access: %w", err)).
				SetType(gin.ErrorTypePrivate)
			return
		}
		if !ok {
			_ = c.AbortWithError(http.StatusForbidden, ErrShopAccessDenied).SetType(gin.ErrorTypePublic)
			return
		}

		c.Set(CurrentShopIDKey, shopID)
		c.Next()
	}
}
