package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SpookyGroup/Spectre-Aegis/internal/metrics"
	"github.com/SpookyGroup/Spectre-Aegis/internal/ratelimit"
)

// RateLimit enforces the per-IP fixed-window limit. Limiter backend failures
// fail open: dropping traffic because Redis is down would take the relay out
// with it.
func RateLimit(limiter ratelimit.Limiter, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.WithError(err).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}

		if !decision.Allowed {
			metrics.RateLimitRejections.Inc()
			c.Header("Retry-After", strconv.Itoa(int(decision.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
