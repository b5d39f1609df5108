package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/infrastructure/i18n"
)

const rateLimitPrefix = "backoffice:ratelimit:"

// NewRateLimitStore usa o redis quando há cliente; senão um store em memória (uma instância só)
func NewRateLimitStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: time.Minute,
		}), nil
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}
	return store, nil
}

// RateLimit limita requisições por IP no formato ulule ("20-M", "5-S"...)
func RateLimit(store limiter.Store, formatted string, logger ports.Logger) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": translate(c, "error.rate_limited.detail", "Too many requests, please try again later"),
			})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error("rate limiter failed", "path", c.Request.URL.Path, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}),
	), nil
}

// translate usa o serviço i18n do contexto quando o DetectLanguage já rodou
func translate(c *gin.Context, key, fallback string) string {
	service, ok := c.Value(I18nServiceContextKey).(*i18n.Service)
	if !ok {
		return fallback
	}
	lang, _ := c.Value(LanguageContextKey).(string)
	if !service.Has(lang, key) {
		return fallback
	}
	return service.T(lang, key)
}
