package ratelimit

import (
	"time"

	"codeberg.org/bookshelf/server/internal/errors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewCredentialLimiter returns a per-IP rate limit middleware for the
// credential endpoints (register/login), where brute forcing is the
// concern. State lives in process memory; limits reset on restart.
func NewCredentialLimiter(requests int64, window time.Duration) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: window,
		Limit:  requests,
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "too many attempts, try again later")
		}),
	)
}
