package middlewares

import (
	"fmt"
	"hms/src/lib/logger"
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "hms_rate_limiter"

// NewRateLimiter limits requests per client IP. rate uses the limiter format,
// e.g. "100-M". Counters live in redis when rdb is non-nil and in process
// otherwise.
func NewRateLimiter(rate string, rdb *redis.Client) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", rate, err)
	}
	var store limiter.Store
	if rdb != nil {
		store, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			MaxRetry:        3,
			CleanUpInterval: r.Period,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
	} else {
		store = memorystore.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: r.Period,
		})
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, r),
		ginmiddleware.WithLimitReachedHandler(func(ctx *gin.Context) {
			ctx.JSON(http.StatusTooManyRequests, types.Response{Success: false, Error: "Too many requests"})
		}),
		ginmiddleware.WithErrorHandler(func(ctx *gin.Context, err error) {
			logger.Log.Errorf("Rate limiter error: %s", err.Error())
			ctx.Next()
		}),
	), nil
}
