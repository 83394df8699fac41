package middlewares

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/pos-ledger/internal/transport/api/tokens"
)

var (
	ErrTokenNotExist = errors.New("token not exist")
	ErrRoleRequired  = errors.New("insufficient role")
)

const (
	CurrentUserIDKey    = "currentUserID"
	CurrentUserRolesKey = "currentUserRoles"
)

const bearerPrefix = "Bearer "

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его. Если токен не передан, вернется
// ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.UserClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(tokenHeader, bearerPrefix) {
		return nil, ErrTokenNotExist
	}

	claims, err := tokens.ValidateUserJWT(strings.TrimPrefix(tokenHeader, bearerPrefix), jwtTokenSecret)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return claims, nil
}

// AuthRequired проверяет, что запрос авторизован. Записывает в контекст (поле CurrentUserIDKey) id пользователя,
// в CurrentUserRolesKey - его роли.
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		c.Set(CurrentUserIDKey, claims.ID)
		c.Set(CurrentUserRolesKey, claims.Roles)
		c.Next()
	}
}

// RoleRequired пропускает только пользователей с ролью role. Должен стоять после AuthRequired.
func RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(c.GetStringSlice(CurrentUserRolesKey), role) {
			_ = c.AbortWithError(http.StatusForbidden, ErrRoleRequired).SetType(gin.ErrorTypePublic)
			return
		}
		c.Next()
	}
}
