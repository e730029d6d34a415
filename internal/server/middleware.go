package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bharatstack/gstbill/internal/merchantctx"
)

const (
	HeaderMerchant  = "X-Merchant-ID"
	HeaderRequestID = "X-Request-ID"
)

// RequestID propagates the caller's request ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Set("request_id", id)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
			log.Warn("request failed", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

// MerchantScope resolves the acting merchant from the X-Merchant-ID
// header and injects it into the request context. Every route behind it
// operates on that merchant's data only.
func MerchantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderMerchant))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		merchantID, err := snowflake.ParseString(raw)
		if err != nil || merchantID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := merchantctx.WithMerchantID(c.Request.Context(), merchantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
