// Package authsvc клиент сервиса авторизации POS: членство пользователей в магазинах.
package authsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	RouteUserShops  = "/api/users/%d/shops"
	RouteMembership = "/api/users/%d/shops/%d"
)

// Константы минимального и максимально значения в заголовке Retry-After.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60
)

const defaultRequestTimeout = 5 * time.Second

type membershipResponse struct {
	Member bool `json:"member"`
}

type shopsResponse struct {
	ShopIDs []int64 `json:"shop_ids"`
}

// HTTPClient реализация проверки доступа через HTTP API сервиса авторизации. Одновременные запросы списка
// магазинов одного пользователя склеиваются в один.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
	l          *logrus.Entry
}

func New(baseURL string, l *logrus.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		l: l.WithFields(logrus.Fields{
			"component": "transport",
			"module":    "authsvc",
		}),
	}
}

// HasAccess проверяет членство пользователя в магазине. 404 от сервиса означает отсутствие членства.
func (c *HTTPClient) HasAccess(ctx context.Context, userID, shopID int64) (bool, error) {
	if userID <= 0 || shopID <= 0 {
		return false, nil
	}

	var response membershipResponse
	status, err := c.getJSON(ctx, fmt.Sprintf(RouteMembership, userID, shopID), &response)
	if err != nil {
		return false, fmt.Errorf("has access: %w", err)
	}
	if status == http.StatusNotFound {
		return false, nil
	}
	return response.Member, nil
}

// ListShops магазины, в которых состоит пользователь.
func (c *HTTPClient) ListShops(ctx context.Context, userID int64) ([]int64, error) {
	shops, err, shared := c.group.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		var response shopsResponse
		status, err := c.getJSON(ctx, fmt.Sprintf(RouteUserShops, userID), &response)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound || response.ShopIDs == nil {
			return []int64{}, nil
		}
		return response.ShopIDs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	if shared {
		c.l.WithField("user_id", userID).Debug("shops lookup shared")
	}
	ids, _ := shops.([]int64)
	// срез общий для склеенных вызовов
	return append([]int64(nil), ids...), nil
}

// getJSON выполняет GET и разбирает тело успешного ответа в dst. 404 возвращается статусом без ошибки.
// При ответе сервера со статусом отличным от http.StatusOK, возвращает ошибку StatusCodeError, или
// TooManyRequestError в случае http.StatusTooManyRequests.
//
//nolint:nonamedreturns
func (c *HTTPClient) getJSON(ctx context.Context, path string, dst any) (status int, err error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if reqErr != nil {
		return 0, fmt.Errorf("create request: %w", reqErr)
	}
	req.Header.Set("Accept", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return 0, fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return resp.StatusCode, nil
	case http.StatusTooManyRequests:
		return resp.StatusCode, NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	default:
		return resp.StatusCode, NewStatusCodeError(resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", readErr)
	}
	if jsonErr := json.Unmarshal(body, dst); jsonErr != nil {
		return resp.StatusCode, fmt.Errorf("parse response: %w", jsonErr)
	}
	return resp.StatusCode, nil
}

// parseRetryAfter в случае ошибки или значения вне [1, 120] секунд возвращает 60 секунд.
func parseRetryAfter(header string) time.Duration {
	minValue := decimal.NewFromInt(minRetryAfter)
	maxValue := decimal.NewFromInt(maxRetryAfter)

	retryAfter, parseErr := decimal.NewFromString(header)
	if parseErr != nil || retryAfter.LessThan(minValue) || retryAfter.GreaterThan(maxValue) {
		retryAfter = decimal.NewFromInt(defaultRetryAfter)
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
